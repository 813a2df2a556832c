package registry

import "errors"

// Error values surfaced by the route handler.
var (
	ErrRouteNotFound   = errors.New("route not found")
	ErrPremiumRequired = errors.New("premium access required")
	ErrInvalidRequest  = errors.New("invalid request")
)
