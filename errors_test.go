package currency_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malusev998/currency-converter"
)

func TestErrors_MatchSentinels(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)
	cause := errors.New("connection refused")

	upstream := fmt.Errorf("get rates: %w", &currency.UpstreamError{Provider: currency.YahooProvider, StatusCode: 502, Err: cause})
	asserts.True(errors.Is(upstream, currency.ErrUpstream))
	asserts.True(errors.Is(upstream, cause))
	asserts.False(errors.Is(upstream, currency.ErrCache))
	asserts.Equal("get rates: provider yahoo returned status 502: connection refused", upstream.Error())

	var upstreamErr *currency.UpstreamError
	asserts.True(errors.As(upstream, &upstreamErr))
	asserts.Equal(502, upstreamErr.StatusCode)

	asserts.True(errors.Is(&currency.ConfigurationError{Field: "apiSource", Message: "unknown"}, currency.ErrConfiguration))
	asserts.True(errors.Is(&currency.RateNotFoundError{Currency: "XXX", Base: "USD"}, currency.ErrRateNotFound))
	asserts.Equal("rate for XXX not found in USD table", (&currency.RateNotFoundError{Currency: "XXX", Base: "USD"}).Error())

	cacheErr := &currency.CacheError{Key: "yahooEUR", Op: "get", Err: cause}
	asserts.True(errors.Is(cacheErr, currency.ErrCache))
	asserts.True(errors.Is(cacheErr, cause))

	invalid := &currency.InvalidAmountError{Amount: math.Inf(1)}
	asserts.True(errors.Is(invalid, currency.ErrInvalidAmount))
	asserts.Equal("amount +Inf is not a finite number", invalid.Error())
}
