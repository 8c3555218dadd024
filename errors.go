package currency

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration = errors.New("invalid converter configuration")
	ErrUpstream      = errors.New("upstream rate provider failed")
	ErrRateNotFound  = errors.New("exchange rate not found")
	ErrCache         = errors.New("rate cache failed")
	ErrCacheMiss     = errors.New("rate table is not cached")
	ErrInvalidAmount = errors.New("amount is not a finite number")
)

type (
	ConfigurationError struct {
		Field   string
		Message string
	}

	UpstreamError struct {
		Provider   Provider
		URL        string
		StatusCode int
		Err        error
	}

	RateNotFoundError struct {
		Currency string
		Base     string
	}

	CacheError struct {
		Key string
		Op  string
		Err error
	}

	InvalidAmountError struct {
		Amount float64
	}
)

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration %s: %s", e.Field, e.Message)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("provider %s", e.Provider)

	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" returned status %d", e.StatusCode)
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *RateNotFoundError) Error() string {
	return fmt.Sprintf("rate for %s not found in %s table", e.Currency, e.Base)
}

func (e *RateNotFoundError) Is(target error) bool {
	return target == ErrRateNotFound
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *CacheError) Is(target error) bool {
	return target == ErrCache
}

func (e *CacheError) Unwrap() error {
	return e.Err
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("amount %v is not a finite number", e.Amount)
}

func (e *InvalidAmountError) Is(target error) bool {
	return target == ErrInvalidAmount
}
