package currency

import (
	"context"
	"time"
)

type (
	// Fetcher issues a GET request and returns the raw body.
	Fetcher interface {
		Fetch(ctx context.Context, url string) ([]byte, error)
	}

	// Adapter knows how to address one upstream provider and how to turn
	// its response into a RateTable.
	Adapter interface {
		Provider() Provider
		URL(base string) string
		Normalize(body []byte, base string) (RateTable, error)
	}

	// Cache stores rate tables with an expiry. AddIfAbsent must be atomic:
	// an existing, unexpired entry is never overwritten.
	Cache interface {
		Has(ctx context.Context, key string) (bool, error)
		Get(ctx context.Context, key string) (RateTable, error)
		AddIfAbsent(ctx context.Context, key string, table RateTable, ttl time.Duration) (bool, error)
	}

	Storage interface {
		Cache
		Migrate(ctx context.Context) error
		Close() error
		GetStorageProviderName() string
	}
)
