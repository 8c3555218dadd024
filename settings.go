package currency

const (
	DefaultCacheMinutes = 60
	USD                 = "USD"
)

type (
	OpenExchangeSettings struct {
		AppID string `json:"-"`
		// UseRealBase is false on the free plan: the upstream only serves
		// USD based tables whatever base is requested.
		UseRealBase bool   `json:"useRealBase"`
		Host        string `json:"host,omitempty"`
	}

	YahooSettings struct {
		Currencies []string `json:"currencies"`
		Host       string   `json:"host,omitempty"`
	}

	Settings struct {
		APISource    Provider             `json:"apiSource"`
		UseHTTPS     bool                 `json:"useHttps"`
		EnableCache  bool                 `json:"enableCache"`
		CacheMinutes int                  `json:"cacheMinutes"`
		EnableLog    bool                 `json:"enableLog"`
		OpenExchange OpenExchangeSettings `json:"openExchange"`
		Yahoo        YahooSettings        `json:"yahoo"`
	}
)

func DefaultSettings() Settings {
	return Settings{
		APISource:    OpenExchangeProvider,
		UseHTTPS:     true,
		EnableCache:  true,
		CacheMinutes: DefaultCacheMinutes,
		Yahoo: YahooSettings{
			Currencies: []string{"USD", "EUR", "GBP", "JPY", "CHF", "CAD", "AUD", "NOK", "SEK", "DKK"},
		},
	}
}

// ForcedBase reports whether the configured upstream can only return USD
// based tables.
func (s Settings) ForcedBase() bool {
	return !s.OpenExchange.UseRealBase && s.APISource == OpenExchangeProvider
}

func (s Settings) Scheme() string {
	if s.UseHTTPS {
		return "https"
	}

	return "http"
}

// CacheKey is the provider name followed by the base, without a separator.
func (s Settings) CacheKey(base string) string {
	return string(s.APISource) + base
}
