package storage_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/malusev998/currency-converter"
	"github.com/malusev998/currency-converter/storage"
)

func TestRedisStorage(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR is not set")
	}

	asserts := require.New(t)
	ctx := context.Background()

	st, err := storage.NewStorage(storage.Redis, storage.RedisConfig{
		BaseConfig: storage.BaseConfig{Ctx: ctx},
		Addr:       addr,
		Prefix:     "cconverter_test:" + uuid.New().String() + ":",
	})
	asserts.NoError(err)
	defer st.Close()

	table := currency.RateTable{Base: "USD", Timestamp: 10, Rates: map[string]float64{"EUR": 0.9}}

	has, err := st.Has(ctx, "openexchangeUSD")
	asserts.NoError(err)
	asserts.False(has)

	added, err := st.AddIfAbsent(ctx, "openexchangeUSD", table, time.Minute)
	asserts.NoError(err)
	asserts.True(added)

	added, err = st.AddIfAbsent(ctx, "openexchangeUSD", currency.RateTable{Base: "EUR"}, time.Minute)
	asserts.NoError(err)
	asserts.False(added)

	stored, err := st.Get(ctx, "openexchangeUSD")
	asserts.NoError(err)
	asserts.Equal(table, stored)
}
