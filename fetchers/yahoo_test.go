package fetchers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malusev998/currency-converter"
)

const yahooBody = `{
  "query": {
    "count": 2,
    "created": "2015-12-11T23:50:01Z",
    "lang": "en-US",
    "results": {
      "rate": [
        {"id": "USDEUR", "Name": "USD/EUR", "Rate": "0.9107", "Ask": "0.9110", "Bid": "0.9107"},
        {"id": "USDJPY", "Name": "USD/JPY", "Rate": "121.0100", "Ask": "121.0500", "Bid": "121.0100"}
      ]
    }
  }
}`

func TestNewYahooAdapter(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)

	settings := currency.DefaultSettings()
	settings.Yahoo.Currencies = nil

	_, err := NewYahooAdapter(settings)
	asserts.True(errors.Is(err, currency.ErrConfiguration))

	settings.Yahoo.Currencies = []string{"EUR", "JPY"}
	settings.UseHTTPS = false
	adapter, err := NewYahooAdapter(settings)
	asserts.NoError(err)
	asserts.Equal(
		"http://query.yahooapis.com/v1/public/yql?q=select%20*%20from%20yahoo.finance.xchange%20where%20pair%20in%20(%22USDEUR%2CUSDJPY%2C%22)&format=json&env=store%3A%2F%2Fdatatables.org%2Falltableswithkeys",
		adapter.URL("USD"),
	)
}

func TestYahooAdapter_Normalize(t *testing.T) {
	t.Parallel()
	adapter := YahooAdapter{Scheme: "https", Host: YahooHost, Currencies: []string{"EUR", "JPY"}}

	t.Run("StripsBaseFromName", func(t *testing.T) {
		asserts := require.New(t)

		table, err := adapter.Normalize([]byte(yahooBody), "USD")

		asserts.NoError(err)
		asserts.Equal("USD", table.Base)
		asserts.Equal(int64(1449877801), table.Timestamp)
		asserts.Equal(map[string]float64{"EUR": 0.911, "JPY": 121.05}, table.Rates)
	})

	t.Run("SingleRowObject", func(t *testing.T) {
		asserts := require.New(t)
		body := `{"query":{"created":"2015-12-11T23:50:01Z","results":{"rate":{"Name":"EURUSD","Ask":"1.0981"}}}}`

		table, err := adapter.Normalize([]byte(body), "EUR")

		asserts.NoError(err)
		asserts.Equal(map[string]float64{"USD": 1.0981}, table.Rates)
	})

	t.Run("SkipsUnusableAsk", func(t *testing.T) {
		asserts := require.New(t)
		body := `{"query":{"created":"2015-12-11T23:50:01Z","results":{"rate":[
			{"Name":"USD/EUR","Ask":"0.9110"},
			{"Name":"USD/XYZ","Ask":"N/A"},
			{"Name":"USD/ABC","Ask":"NaN"},
			{"Name":"USD/DEF","Ask":"+Inf"}
		]}}}`

		table, err := adapter.Normalize([]byte(body), "USD")

		asserts.NoError(err)
		asserts.Equal(map[string]float64{"EUR": 0.911}, table.Rates)
	})

	values := []struct {
		name string
		body string
	}{
		{"InvalidJSON", `{"query":`},
		{"MissingQuery", `{}`},
		{"MissingResults", `{"query":{"created":"2015-12-11T23:50:01Z","results":null}}`},
		{"MissingRate", `{"query":{"created":"2015-12-11T23:50:01Z","results":{}}}`},
		{"InvalidCreated", `{"query":{"created":"yesterday","results":{"rate":[]}}}`},
		{"InvalidAsk", `{"query":{"created":"2015-12-11T23:50:01Z","results":{"rate":[{"Name":"USD/EUR","Ask":"N/A"}]}}}`},
		{"OnlyInfiniteAsk", `{"query":{"created":"2015-12-11T23:50:01Z","results":{"rate":[{"Name":"USD/EUR","Ask":"Inf"}]}}}`},
	}

	for _, value := range values {
		value := value
		t.Run(value.name, func(t *testing.T) {
			asserts := require.New(t)

			_, err := adapter.Normalize([]byte(value.body), "USD")

			asserts.True(errors.Is(err, currency.ErrUpstream))
		})
	}
}
