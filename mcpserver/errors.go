package mcpserver

import (
	"errors"

	"github.com/jonwraymond/toolcatalog/registry"
)

// Sentinel errors for consistent error handling.
var (
	ErrToolNotFound = errors.New("tool not found")
	// ErrPremiumRequired is shared with the HTTP route handler.
	ErrPremiumRequired = registry.ErrPremiumRequired
)

// MCP JSON-RPC 2.0 error codes.
const (
	ErrCodeParseError      = -32700
	ErrCodeInvalidRequest  = -32600
	ErrCodeMethodNotFound  = -32601
	ErrCodeInvalidParams   = -32602
	ErrCodeInternal        = -32603
	ErrCodeToolNotFound    = -32001
	ErrCodeToolExecFailed  = -32002
	ErrCodePremiumRequired = -32003
)
