package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Session errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTokenExpired     = fmt.Errorf("access token expired")
	ErrRefreshFailed    = fmt.Errorf("token refresh failed")
	ErrNoRefreshToken   = fmt.Errorf("no refresh token available")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServerRejected     = fmt.Errorf("request rejected by server")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrVideoNotFound      = fmt.Errorf("video not found")

	// Input validation errors. Specific validation failures wrap
	// ErrInvalidInput so callers can match the family or the case.
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrEmptyComment    = fmt.Errorf("%w: comment text is empty", ErrInvalidInput)
	ErrMissingArgument = fmt.Errorf("%w: missing required argument", ErrInvalidInput)
	ErrInvalidFlag     = fmt.Errorf("%w: invalid flag value", ErrInvalidInput)
)
