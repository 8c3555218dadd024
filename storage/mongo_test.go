package storage_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/malusev998/currency-converter"
	"github.com/malusev998/currency-converter/storage"
)

func TestMongoStorage(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI is not set")
	}

	asserts := require.New(t)
	ctx := context.Background()

	st, err := storage.NewStorage(storage.MongoDB, storage.MongoDBConfig{
		BaseConfig:       storage.BaseConfig{Ctx: ctx, Migrate: true},
		ConnectionString: uri,
		Database:         "cconverter_test",
		Collection:       "rates_" + uuid.New().String(),
	})
	asserts.NoError(err)
	defer st.Close()

	table := currency.RateTable{Base: "USD", Timestamp: 10, Rates: map[string]float64{"EUR": 0.9}}

	_, err = st.Get(ctx, "yahooUSD")
	asserts.True(errors.Is(err, currency.ErrCacheMiss))

	added, err := st.AddIfAbsent(ctx, "yahooUSD", table, time.Minute)
	asserts.NoError(err)
	asserts.True(added)

	added, err = st.AddIfAbsent(ctx, "yahooUSD", table, time.Minute)
	asserts.NoError(err)
	asserts.False(added)

	has, err := st.Has(ctx, "yahooUSD")
	asserts.NoError(err)
	asserts.True(has)

	stored, err := st.Get(ctx, "yahooUSD")
	asserts.NoError(err)
	asserts.Equal(table, stored)
}
