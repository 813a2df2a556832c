package toolstore

import "errors"

// Error values for consistent error handling by callers.
var (
	ErrNotFound      = errors.New("tool record not found")
	ErrInvalidRecord = errors.New("invalid tool record")
	ErrDuplicatePath = errors.New("tool path already registered")
	ErrDuplicateID   = errors.New("tool id already registered")
	ErrStoreClosed   = errors.New("tool store is closed")
)
