package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// Icon is an opaque UI handle (an icon name understood by the front end).
type Icon string

// Handler runs a tool's transformation over its arguments.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// Factory produces a fresh Handler for a tool.
type Factory func() Handler

// ToolDescriptor is the static metadata of a tool.
type ToolDescriptor struct {
	// ID is unique across the tool set.
	ID string `json:"id"`
	// Name is the display name. It is the secondary sort key and the key
	// favorites are matched on.
	Name        string `json:"name"`
	Description string `json:"description"`
	// Category references a CategoryDescriptor ID.
	Category string `json:"category"`
	// Path is the unique URL path of the tool and the join key against the
	// remote configuration.
	Path string `json:"path"`
	Icon Icon   `json:"icon,omitempty"`
	// Order is the primary sort key; zero when unset.
	Order int `json:"order,omitempty"`
}

// Validate checks that the descriptor carries the fields every consumer
// relies on.
func (d ToolDescriptor) Validate() error {
	var missing []string
	if strings.TrimSpace(d.ID) == "" {
		missing = append(missing, "id")
	}
	if strings.TrimSpace(d.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(d.Path) == "" {
		missing = append(missing, "path")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidDescriptor, strings.Join(missing, ", "))
	}
	return nil
}

// Module is one entry of the compiled-in tool list.
type Module struct {
	// Group is the authoring group the module lives under. It is expected
	// to equal Meta.Category.
	Group   string
	Meta    *ToolDescriptor
	Factory Factory
	// Input describes the argument object the handler accepts. It is
	// advisory: handlers still validate their own arguments.
	Input *jsonschema.Schema
}

// Validate reports whether the module exposes both metadata and a handler
// factory, and whether its metadata is usable.
func (m Module) Validate() error {
	if m.Meta == nil {
		return ErrMissingMetadata
	}
	if m.Factory == nil {
		return fmt.Errorf("%w: %s", ErrMissingFactory, m.Meta.ID)
	}
	return m.Meta.Validate()
}

// CategoryMismatch reports whether the descriptor's category differs from
// the group the module was authored under. Modules without a group are
// never considered mismatched.
func (m Module) CategoryMismatch() bool {
	if m.Meta == nil || m.Group == "" {
		return false
	}
	return m.Meta.Category != m.Group
}
