package currency_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malusev998/currency-converter"
)

func TestConvertToProvidersFromStringSlice(t *testing.T) {
	assert := require.New(t)

	values := []struct {
		value    []string
		expected interface{}
		err      error
	}{
		{[]string{"openexchange", "yahoo"}, []currency.Provider{currency.OpenExchangeProvider, currency.YahooProvider}, nil},
		{[]string{"OpenExchangeRates", "YAHOO"}, []currency.Provider{currency.OpenExchangeProvider, currency.YahooProvider}, nil},
		{[]string{"not-valid-value"}, []currency.Provider(nil), errors.New("value not-valid-value is not valid Provider")},
	}
	for _, value := range values {
		providers, err := currency.ConvertToProvidersFromStringSlice(value.value)
		assert.Equal(value.expected, providers)
		assert.Equal(value.err, err)
	}
}

func TestConvertToProviderFromString(t *testing.T) {
	assert := require.New(t)
	values := []struct {
		value    string
		expected interface{}
		err      error
	}{
		{"openexchange", currency.OpenExchangeProvider, nil},
		{"yahoo", currency.YahooProvider, nil},
		{"", currency.EmptyProvider, errors.New("value  is not valid Provider")},
		{"not-valid-value", currency.EmptyProvider, errors.New("value not-valid-value is not valid Provider")},
	}

	for _, value := range values {
		provider, err := currency.ConvertToProviderFromString(value.value)
		assert.Equal(value.expected, provider)
		assert.Equal(value.err, err)
	}
}

func TestProvider_UnmarshalText(t *testing.T) {
	assert := require.New(t)

	var p currency.Provider
	assert.NoError(p.UnmarshalText([]byte("Yahoo")))
	assert.Equal(currency.YahooProvider, p)

	assert.Error(p.UnmarshalText([]byte("bloomberg")))
	assert.Equal(currency.YahooProvider, p)
}
