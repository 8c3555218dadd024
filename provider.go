package currency

import (
	"fmt"
	"strings"
)

type Provider string

const (
	OpenExchangeProvider Provider = "openexchange"
	YahooProvider        Provider = "yahoo"
	EmptyProvider        Provider = ""
)

func ConvertToProvidersFromStringSlice(strings []string) ([]Provider, error) {
	providers := make([]Provider, 0, len(strings))

	for _, str := range strings {
		provider, err := ConvertToProviderFromString(str)
		if err != nil {
			return nil, err
		}

		providers = append(providers, provider)
	}

	return providers, nil
}

func ConvertToProviderFromString(str string) (Provider, error) {
	switch strings.ToLower(str) {
	case "openexchange", "openexchangerates":
		return OpenExchangeProvider, nil
	case "yahoo":
		return YahooProvider, nil
	}

	return EmptyProvider, fmt.Errorf("value %s is not valid Provider", str)
}

func (p Provider) String() string {
	return string(p)
}

func (p *Provider) UnmarshalText(text []byte) error {
	provider, err := ConvertToProviderFromString(string(text))
	if err != nil {
		return err
	}

	*p = provider

	return nil
}

func (p Provider) MarshalText() ([]byte, error) {
	return []byte(p), nil
}
