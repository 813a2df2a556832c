package toolconfig

import "errors"

// Error values for configuration fetches.
var (
	ErrInvalidConfig     = errors.New("invalid tool config client configuration")
	ErrUnexpectedStatus  = errors.New("unexpected status from tool config service")
	ErrMalformedResponse = errors.New("malformed tool config response")
)
