package services

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/malusev998/currency-converter"
)

// Warmer fills a shared cache with the rate tables of several bases.
type Warmer struct {
	Settings currency.Settings
	Fetcher  currency.Fetcher
	Cache    currency.Cache
	Logger   logrus.FieldLogger
}

// Warm fetches every base concurrently, one Converter per base, and returns
// the tables keyed by the requested base. The first error cancels the rest.
func (w Warmer) Warm(ctx context.Context, bases []string) (map[string]currency.RateTable, error) {
	if w.Cache == nil {
		return nil, &currency.ConfigurationError{Field: "cache", Message: "warming requires a shared cache"}
	}

	var mutex sync.Mutex

	data := make(map[string]currency.RateTable, len(bases))
	group, ctx := errgroup.WithContext(ctx)

	for _, base := range bases {
		base := base

		group.Go(func() error {
			converter := NewConverter(ConverterConfig{
				Settings: w.Settings,
				Fetcher:  w.Fetcher,
				Cache:    w.Cache,
				Logger:   w.Logger,
			})

			table, err := converter.GetRates(ctx, base)
			if err != nil {
				return err
			}

			mutex.Lock()
			data[base] = table
			mutex.Unlock()

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return data, nil
}
