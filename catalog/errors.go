package catalog

import "errors"

// Error values for module validation.
var (
	ErrMissingMetadata   = errors.New("module missing metadata")
	ErrMissingFactory    = errors.New("module missing handler factory")
	ErrInvalidDescriptor = errors.New("invalid tool descriptor")
)

// ErrInvalidArgument is wrapped by handlers rejecting their input.
var ErrInvalidArgument = errors.New("invalid argument")
