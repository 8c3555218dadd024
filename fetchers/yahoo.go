package fetchers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/malusev998/currency-converter"
)

const (
	yahooQueryPrefix = "/v1/public/yql?q=select%20*%20from%20yahoo.finance.xchange%20where%20pair%20in%20(%22"
	yahooQuerySuffix = "%22)&format=json&env=store%3A%2F%2Fdatatables.org%2Falltableswithkeys"
)

type (
	YahooAdapter struct {
		Scheme     string
		Host       string
		Currencies []string
	}

	yahooRow struct {
		Name string `json:"Name"`
		Ask  string `json:"Ask"`
	}

	yahooResponse struct {
		Query *struct {
			Created string `json:"created"`
			Results *struct {
				Rate json.RawMessage `json:"rate"`
			} `json:"results"`
		} `json:"query"`
	}
)

func NewYahooAdapter(settings currency.Settings) (YahooAdapter, error) {
	if len(settings.Yahoo.Currencies) == 0 {
		return YahooAdapter{}, &currency.ConfigurationError{
			Field:   "yahoo.currencies",
			Message: "at least one currency is required for the yahoo provider",
		}
	}

	return YahooAdapter{
		Scheme:     settings.Scheme(),
		Host:       host(settings.Yahoo.Host, YahooHost),
		Currencies: settings.Yahoo.Currencies,
	}, nil
}

func (y YahooAdapter) Provider() currency.Provider {
	return currency.YahooProvider
}

// URL batches every configured currency into a single pair list, each
// entry being base+target followed by an encoded comma.
func (y YahooAdapter) URL(base string) string {
	var builder strings.Builder

	builder.WriteString(y.Scheme)
	builder.WriteString("://")
	builder.WriteString(y.Host)
	builder.WriteString(yahooQueryPrefix)

	for _, c := range y.Currencies {
		builder.WriteString(base)
		builder.WriteString(c)
		builder.WriteString("%2C")
	}

	builder.WriteString(yahooQuerySuffix)

	return builder.String()
}

func (y YahooAdapter) Normalize(body []byte, base string) (currency.RateTable, error) {
	var data yahooResponse

	if err := json.Unmarshal(body, &data); err != nil {
		return currency.RateTable{}, y.invalid(err)
	}

	if data.Query == nil || data.Query.Results == nil {
		return currency.RateTable{}, y.invalid(errors.New("response has no query results"))
	}

	created, err := time.Parse(time.RFC3339, data.Query.Created)
	if err != nil {
		return currency.RateTable{}, y.invalid(fmt.Errorf("invalid created time: %w", err))
	}

	rows, err := y.rows(data.Query.Results.Rate)
	if err != nil {
		return currency.RateTable{}, y.invalid(err)
	}

	rates := make(map[string]float64, len(rows))

	// yahoo answers "N/A" for pairs it does not know; those rows are left
	// out so lookups for them fail with a missing rate.
	for _, row := range rows {
		target := strings.TrimPrefix(strings.TrimPrefix(row.Name, base), "/")

		rate, err := strconv.ParseFloat(strings.TrimSpace(row.Ask), 64)
		if err != nil || math.IsNaN(rate) || math.IsInf(rate, 0) {
			continue
		}

		rates[target] = rate
	}

	if len(rows) > 0 && len(rates) == 0 {
		return currency.RateTable{}, y.invalid(fmt.Errorf("no usable ask in %d rows", len(rows)))
	}

	return currency.RateTable{
		Base:      base,
		Timestamp: created.Unix(),
		Rates:     rates,
	}, nil
}

// rows accepts both a list of rows and the bare object yahoo sends when
// only one pair was requested.
func (y YahooAdapter) rows(raw json.RawMessage) ([]yahooRow, error) {
	raw = bytes.TrimSpace(raw)

	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, errors.New("response has no rates")
	}

	if raw[0] == '{' {
		var row yahooRow

		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, err
		}

		return []yahooRow{row}, nil
	}

	var rows []yahooRow

	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}

	return rows, nil
}

func (y YahooAdapter) invalid(err error) error {
	return &currency.UpstreamError{Provider: currency.YahooProvider, Err: err}
}
