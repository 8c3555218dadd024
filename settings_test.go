package currency_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malusev998/currency-converter"
)

func TestSettings_ForcedBase(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)

	settings := currency.DefaultSettings()
	asserts.True(settings.ForcedBase())

	settings.OpenExchange.UseRealBase = true
	asserts.False(settings.ForcedBase())

	settings.OpenExchange.UseRealBase = false
	settings.APISource = currency.YahooProvider
	asserts.False(settings.ForcedBase())
}

func TestSettings_CacheKeyAndScheme(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)

	settings := currency.DefaultSettings()
	asserts.Equal("openexchangeUSD", settings.CacheKey("USD"))
	asserts.Equal("https", settings.Scheme())

	settings.APISource = currency.YahooProvider
	settings.UseHTTPS = false
	asserts.Equal("yahooeur", settings.CacheKey("eur"))
	asserts.Equal("http", settings.Scheme())
}

func TestRateTable_CloneDoesNotShareRates(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)

	table := currency.RateTable{Base: "USD", Timestamp: 10, Rates: map[string]float64{"EUR": 0.9}}
	clone := table.Clone()
	clone.Rates["EUR"] = 1.1

	asserts.Equal(0.9, table.Rates["EUR"])
	asserts.Equal("USD", clone.Base)
	asserts.Equal(int64(10), clone.Timestamp)
}
