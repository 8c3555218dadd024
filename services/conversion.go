package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/malusev998/currency-converter"
	"github.com/malusev998/currency-converter/fetchers"
	"github.com/malusev998/currency-converter/storage"
)

type (
	// Overrides replace single settings for one converter. Nil fields keep
	// the configured value.
	Overrides struct {
		APISource    *currency.Provider
		UseHTTPS     *bool
		EnableCache  *bool
		CacheMinutes *int
	}

	ConverterConfig struct {
		Settings  currency.Settings
		Overrides Overrides
		Fetcher   currency.Fetcher
		Cache     currency.Cache
		Logger    logrus.FieldLogger
		// Timeout is used only when Fetcher is nil.
		Timeout time.Duration
	}

	// Converter holds at most one rate table at a time. It is not safe for
	// concurrent use.
	Converter struct {
		settings currency.Settings
		fetcher  currency.Fetcher
		cache    currency.Cache
		logger   logrus.FieldLogger

		base      string
		rates     currency.RateTable
		loaded    bool
		url       string
		fromCache bool
		timestamp int64
	}
)

func (o Overrides) Apply(settings currency.Settings) currency.Settings {
	if o.APISource != nil {
		settings.APISource = *o.APISource
	}

	if o.UseHTTPS != nil {
		settings.UseHTTPS = *o.UseHTTPS
	}

	if o.EnableCache != nil {
		settings.EnableCache = *o.EnableCache
	}

	if o.CacheMinutes != nil {
		settings.CacheMinutes = *o.CacheMinutes
	}

	return settings
}

func NewConverter(config ConverterConfig) *Converter {
	settings := config.Overrides.Apply(config.Settings)

	logger := config.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	fetcher := config.Fetcher
	if fetcher == nil {
		var transportLogger logrus.FieldLogger

		if settings.EnableLog {
			transportLogger = logger
		}

		fetcher = fetchers.NewHTTPFetcher(settings.APISource, config.Timeout, transportLogger)
	}

	cache := config.Cache
	if cache == nil {
		cache = storage.NewMemoryStorage()
	}

	return &Converter{
		settings: settings,
		fetcher:  fetcher,
		cache:    cache,
		logger:   logger,
	}
}

func (c *Converter) debugf(format string, args ...interface{}) {
	if c.settings.EnableLog {
		c.logger.Debugf(format, args...)
	}
}

// GetRates returns the rate table for base, from the cache when possible.
// An empty base, or any base on the openexchange free plan, means USD.
func (c *Converter) GetRates(ctx context.Context, base string) (currency.RateTable, error) {
	adapter, err := fetchers.NewAdapter(c.settings)
	if err != nil {
		return currency.RateTable{}, err
	}

	if base == "" || c.settings.ForcedBase() {
		base = currency.USD
	}

	if !c.settings.EnableCache {
		table, url, err := c.fetch(ctx, adapter, base)
		if err != nil {
			return currency.RateTable{}, err
		}

		c.commit(base, table, false, url)

		return table, nil
	}

	key := c.settings.CacheKey(base)

	table, hit, err := c.cached(ctx, key)
	if err != nil {
		return currency.RateTable{}, err
	}

	if hit {
		c.debugf("Got currency rates from cache: %s", key)
		c.commit(base, table, true, "")

		return table, nil
	}

	table, url, err := c.fetch(ctx, adapter, base)
	if err != nil {
		return currency.RateTable{}, err
	}

	if ttl := time.Duration(c.settings.CacheMinutes) * time.Minute; ttl > 0 {
		if _, err := c.cache.AddIfAbsent(ctx, key, table, ttl); err != nil {
			return currency.RateTable{}, cacheError("add", key, err)
		}

		c.debugf("Added new currency rates to cache: %s - for %d min.", key, c.settings.CacheMinutes)
	}

	c.commit(base, table, false, url)

	return table, nil
}

func (c *Converter) cached(ctx context.Context, key string) (currency.RateTable, bool, error) {
	has, err := c.cache.Has(ctx, key)
	if err != nil {
		return currency.RateTable{}, false, cacheError("has", key, err)
	}

	if !has {
		return currency.RateTable{}, false, nil
	}

	table, err := c.cache.Get(ctx, key)
	if errors.Is(err, currency.ErrCacheMiss) {
		// expired between Has and Get
		return currency.RateTable{}, false, nil
	}

	if err != nil {
		return currency.RateTable{}, false, cacheError("get", key, err)
	}

	return table, true, nil
}

func (c *Converter) fetch(ctx context.Context, adapter currency.Adapter, base string) (currency.RateTable, string, error) {
	url := adapter.URL(base)

	body, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		if errors.Is(err, currency.ErrUpstream) {
			return currency.RateTable{}, url, err
		}

		return currency.RateTable{}, url, &currency.UpstreamError{Provider: adapter.Provider(), URL: url, Err: err}
	}

	table, err := adapter.Normalize(body, base)

	return table, url, err
}

// commit replaces the held table. An empty url keeps the last request URL.
func (c *Converter) commit(base string, table currency.RateTable, fromCache bool, url string) {
	c.base = base
	c.rates = table
	c.loaded = true
	c.fromCache = fromCache
	c.timestamp = table.Timestamp

	if url != "" {
		c.url = url
	}
}

// Convert converts amount from one currency to another. A zero amount
// returns zero without touching the network or the cache.
func (c *Converter) Convert(ctx context.Context, from, to string, amount float64) (float64, error) {
	return c.ConvertRound(ctx, from, to, amount, 0)
}

// ConvertRound is Convert followed by rounding half away from zero to
// places decimals. Zero places leaves the result unrounded.
func (c *Converter) ConvertRound(ctx context.Context, from, to string, amount float64, places int32) (float64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, &currency.InvalidAmountError{Amount: amount}
	}

	if amount == 0 {
		return 0, nil
	}

	freeTier := c.settings.ForcedBase()

	base := from
	if freeTier {
		base = currency.USD
	}

	table := c.rates
	if !c.loaded || c.base != base {
		var err error

		if table, err = c.GetRates(ctx, from); err != nil {
			return 0, err
		}
	}

	result, err := calculate(table, from, to, decimal.NewFromFloat(amount), freeTier)
	if err != nil {
		return 0, err
	}

	if places != 0 {
		result = result.Round(places)
	}

	value, _ := result.Float64()

	return value, nil
}

// divisionPrecision keeps significant digits when tiny amounts are divided
// by large rates.
const divisionPrecision = 32

func calculate(table currency.RateTable, from, to string, amount decimal.Decimal, freeTier bool) (decimal.Decimal, error) {
	switch {
	case freeTier && from == currency.USD:
		fromRate, _, err := rates(table, from, to)
		if err != nil {
			return decimal.Zero, err
		}

		return amount.DivRound(fromRate, divisionPrecision), nil
	case freeTier && to == currency.USD:
		// Suspected upstream bug: this reuses the from == USD formula and
		// ignores rates[to]. Kept for compatibility.
		fromRate, _, err := rates(table, from, to)
		if err != nil {
			return decimal.Zero, err
		}

		return amount.DivRound(fromRate, divisionPrecision), nil
	case freeTier:
		fromRate, toRate, err := rates(table, from, to)
		if err != nil {
			return decimal.Zero, err
		}

		return toRate.Mul(amount.DivRound(fromRate, divisionPrecision)), nil
	default:
		toRate, err := rate(table, to)
		if err != nil {
			return decimal.Zero, err
		}

		return amount.Mul(toRate), nil
	}
}

func rates(table currency.RateTable, from, to string) (decimal.Decimal, decimal.Decimal, error) {
	fromRate, err := rate(table, from)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	toRate, err := rate(table, to)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return fromRate, toRate, nil
}

func rate(table currency.RateTable, code string) (decimal.Decimal, error) {
	value, ok := table.Rate(code)
	if !ok || value <= 0 || math.IsInf(value, 0) || math.IsNaN(value) {
		return decimal.Zero, &currency.RateNotFoundError{Currency: code, Base: table.Base}
	}

	return decimal.NewFromFloat(value), nil
}

func (c *Converter) Meta() currency.Meta {
	settings := c.settings
	settings.Yahoo.Currencies = append([]string(nil), c.settings.Yahoo.Currencies...)

	return currency.Meta{
		Settings:  settings,
		Timestamp: c.timestamp,
		URL:       c.url,
		Base:      c.base,
		FromCache: c.fromCache,
	}
}

func cacheError(op, key string, err error) error {
	if errors.Is(err, currency.ErrCache) {
		return err
	}

	return &currency.CacheError{Key: key, Op: op, Err: err}
}
