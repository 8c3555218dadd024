package fetchers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malusev998/currency-converter"
)

func TestNewOpenExchangeAdapter(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)

	settings := currency.DefaultSettings()

	_, err := NewOpenExchangeAdapter(settings)
	asserts.True(errors.Is(err, currency.ErrConfiguration))

	settings.OpenExchange.AppID = "abc123"
	adapter, err := NewOpenExchangeAdapter(settings)
	asserts.NoError(err)
	asserts.Equal("https://openexchangerates.org/api/latest.json?app_id=abc123&base=EUR", adapter.URL("EUR"))

	settings.UseHTTPS = false
	settings.OpenExchange.Host = "127.0.0.1:8080"
	adapter, err = NewOpenExchangeAdapter(settings)
	asserts.NoError(err)
	asserts.Equal("http://127.0.0.1:8080/api/latest.json?app_id=abc123&base=USD", adapter.URL("USD"))
}

func TestOpenExchangeAdapter_Normalize(t *testing.T) {
	t.Parallel()
	adapter := OpenExchangeAdapter{Scheme: "https", Host: OpenExchangeHost, AppID: "abc"}

	t.Run("AttachesRequestedBase", func(t *testing.T) {
		asserts := require.New(t)
		body := []byte(`{"disclaimer":"...","timestamp":1449877801,"base":"USD","rates":{"EUR":0.9,"JPY":110.5,"USD":1}}`)

		table, err := adapter.Normalize(body, "USD")

		asserts.NoError(err)
		asserts.Equal("USD", table.Base)
		asserts.Equal(int64(1449877801), table.Timestamp)
		asserts.Equal(map[string]float64{"EUR": 0.9, "JPY": 110.5, "USD": 1}, table.Rates)
	})

	values := []struct {
		name string
		body string
	}{
		{"InvalidJSON", `{"rates":`},
		{"MissingRates", `{"timestamp":1449877801}`},
		{"MissingTimestamp", `{"rates":{"EUR":0.9}}`},
		{"UpstreamError", `{"error":true,"status":401,"message":"invalid_app_id","description":"Invalid App ID provided."}`},
	}

	for _, value := range values {
		value := value
		t.Run(value.name, func(t *testing.T) {
			asserts := require.New(t)

			table, err := adapter.Normalize([]byte(value.body), "USD")

			asserts.Empty(table.Rates)
			asserts.True(errors.Is(err, currency.ErrUpstream))
		})
	}
}
