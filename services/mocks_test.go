package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/malusev998/currency-converter"
)

type (
	MockFetcher struct {
		mock.Mock
	}

	MockCache struct {
		mock.Mock
	}
)

func (m *MockFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	args := m.Called(ctx, url)

	body := args.Get(0)
	if body == nil {
		return nil, args.Error(1)
	}

	return body.([]byte), args.Error(1)
}

func (m *MockCache) Has(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)

	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Get(ctx context.Context, key string) (currency.RateTable, error) {
	args := m.Called(ctx, key)

	return args.Get(0).(currency.RateTable), args.Error(1)
}

func (m *MockCache) AddIfAbsent(ctx context.Context, key string, table currency.RateTable, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, table, ttl)

	return args.Bool(0), args.Error(1)
}
