package openweather

import "errors"

var (
	// ErrMissingKey is returned when no API key was configured.
	ErrMissingKey = errors.New("openweather: api key not configured")

	// ErrUnavailable covers network failures, timeouts and non-2xx
	// responses from the provider.
	ErrUnavailable = errors.New("openweather: service unavailable")

	// ErrInvalidResponse is returned when the provider answered with a
	// body the client cannot decode.
	ErrInvalidResponse = errors.New("openweather: invalid response")
)
