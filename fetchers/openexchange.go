package fetchers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/malusev998/currency-converter"
)

type (
	OpenExchangeAdapter struct {
		Scheme string
		Host   string
		AppID  string
	}

	openExchangeResponse struct {
		Timestamp   *int64             `json:"timestamp"`
		Rates       map[string]float64 `json:"rates"`
		Error       bool               `json:"error"`
		Message     string             `json:"message"`
		Description string             `json:"description"`
	}
)

func NewOpenExchangeAdapter(settings currency.Settings) (OpenExchangeAdapter, error) {
	if settings.OpenExchange.AppID == "" {
		return OpenExchangeAdapter{}, &currency.ConfigurationError{
			Field:   "openexchange.app_id",
			Message: "an app id is required for openexchangerates.org",
		}
	}

	return OpenExchangeAdapter{
		Scheme: settings.Scheme(),
		Host:   host(settings.OpenExchange.Host, OpenExchangeHost),
		AppID:  settings.OpenExchange.AppID,
	}, nil
}

func (o OpenExchangeAdapter) Provider() currency.Provider {
	return currency.OpenExchangeProvider
}

func (o OpenExchangeAdapter) URL(base string) string {
	return fmt.Sprintf(
		"%s://%s/api/latest.json?app_id=%s&base=%s",
		o.Scheme,
		o.Host,
		url.QueryEscape(o.AppID),
		url.QueryEscape(base),
	)
}

func (o OpenExchangeAdapter) Normalize(body []byte, base string) (currency.RateTable, error) {
	var data openExchangeResponse

	if err := json.Unmarshal(body, &data); err != nil {
		return currency.RateTable{}, o.invalid(err)
	}

	if data.Error {
		return currency.RateTable{}, o.invalid(fmt.Errorf("%s: %s", data.Message, data.Description))
	}

	if data.Rates == nil {
		return currency.RateTable{}, o.invalid(errors.New("response has no rates"))
	}

	if data.Timestamp == nil {
		return currency.RateTable{}, o.invalid(errors.New("response has no timestamp"))
	}

	return currency.RateTable{
		Base:      base,
		Timestamp: *data.Timestamp,
		Rates:     data.Rates,
	}, nil
}

func (o OpenExchangeAdapter) invalid(err error) error {
	return &currency.UpstreamError{Provider: currency.OpenExchangeProvider, Err: err}
}
