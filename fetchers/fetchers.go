package fetchers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/malusev998/currency-converter"
)

const (
	OpenExchangeHost = "openexchangerates.org"
	YahooHost        = "query.yahooapis.com"

	DefaultTimeout = 10 * time.Second
)

var (
	ErrClient  = errors.New("client error")
	ErrServer  = errors.New("server error")
	ErrUnknown = errors.New("unknown error")
)

type (
	HTTPFetcher struct {
		client   *http.Client
		provider currency.Provider
	}

	LoggingRoundTripper struct {
		Wrapped http.RoundTripper
		Logger  logrus.FieldLogger
	}
)

func (lrt LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	res, err := lrt.Wrapped.RoundTrip(req)

	entry := lrt.Logger.WithFields(logrus.Fields{
		"method":   req.Method,
		"host":     req.URL.Host,
		"path":     req.URL.Path,
		"duration": time.Since(start),
	})

	if err != nil {
		entry.WithError(err).Warn("upstream request failed")
		return nil, err
	}

	entry.WithField("status", res.StatusCode).Debug("upstream request")

	return res, nil
}

// NewHTTPFetcher returns a Fetcher backed by net/http. The provider is only
// used to label errors.
func NewHTTPFetcher(provider currency.Provider, timeout time.Duration, logger logrus.FieldLogger) HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := http.DefaultTransport

	if logger != nil {
		transport = LoggingRoundTripper{Wrapped: transport, Logger: logger}
	}

	return HTTPFetcher{
		provider: provider,
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (h HTTPFetcher) handleHTTPStatusCodeError(res *http.Response) error {
	if res.StatusCode >= http.StatusOK && res.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	switch {
	case res.StatusCode >= http.StatusBadRequest && res.StatusCode < http.StatusInternalServerError:
		return ErrClient
	case res.StatusCode >= http.StatusInternalServerError:
		return ErrServer
	default:
		return ErrUnknown
	}
}

func (h HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &currency.UpstreamError{Provider: h.provider, URL: url, Err: err}
	}

	req.Header.Add("Accept", "application/json")

	res, err := h.client.Do(req)
	if err != nil {
		return nil, &currency.UpstreamError{Provider: h.provider, URL: url, Err: err}
	}

	defer res.Body.Close()

	if err := h.handleHTTPStatusCodeError(res); err != nil {
		return nil, &currency.UpstreamError{Provider: h.provider, URL: url, StatusCode: res.StatusCode, Err: err}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &currency.UpstreamError{Provider: h.provider, URL: url, StatusCode: res.StatusCode, Err: err}
	}

	return body, nil
}

func host(configured, fallback string) string {
	if configured == "" {
		return fallback
	}

	return configured
}
