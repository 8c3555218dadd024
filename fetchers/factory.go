package fetchers

import (
	"fmt"

	"github.com/malusev998/currency-converter"
)

type AdapterConstructor func(settings currency.Settings) (currency.Adapter, error)

var adapters = map[currency.Provider]AdapterConstructor{
	currency.OpenExchangeProvider: func(settings currency.Settings) (currency.Adapter, error) {
		adapter, err := NewOpenExchangeAdapter(settings)
		if err != nil {
			return nil, err
		}

		return adapter, nil
	},
	currency.YahooProvider: func(settings currency.Settings) (currency.Adapter, error) {
		adapter, err := NewYahooAdapter(settings)
		if err != nil {
			return nil, err
		}

		return adapter, nil
	},
}

// NewAdapter builds the adapter for settings.APISource.
func NewAdapter(settings currency.Settings) (currency.Adapter, error) {
	constructor, ok := adapters[settings.APISource]
	if !ok {
		return nil, &currency.ConfigurationError{
			Field:   "api_source",
			Message: fmt.Sprintf("unknown provider %q", settings.APISource),
		}
	}

	return constructor(settings)
}
