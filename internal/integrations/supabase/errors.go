package supabase

import "errors"

var (
	// ErrNotConfigured is returned when the URL or anon key is missing.
	// Identity cannot be established without the provider, so callers
	// surface this as a blocking error.
	ErrNotConfigured = errors.New("supabase: client not configured")

	// ErrInvalidCredentials is returned on a rejected password grant.
	ErrInvalidCredentials = errors.New("supabase: invalid credentials")

	// ErrRejected is returned when the provider refused the request
	// (duplicate signup, malformed email, weak password).
	ErrRejected = errors.New("supabase: request rejected")

	// ErrUnavailable covers network failures and 5xx responses.
	ErrUnavailable = errors.New("supabase: service unavailable")
)
