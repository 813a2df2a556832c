package tooldoc

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/jonwraymond/toolcatalog/catalog"
	"github.com/jonwraymond/toolcatalog/registry"
)

// MaxSummaryLen caps the summary line.
const MaxSummaryLen = 120

// ErrInvalidDetail is returned for an unknown detail level.
var ErrInvalidDetail = errors.New("tooldoc: invalid detail level")

// DetailLevel selects how much documentation Describe returns.
type DetailLevel string

const (
	DetailSummary DetailLevel = "summary"
	DetailSchema  DetailLevel = "schema"
	DetailFull    DetailLevel = "full"
)

// ParseDetailLevel converts a string into a DetailLevel.
func ParseDetailLevel(s string) (DetailLevel, error) {
	level := DetailLevel(strings.ToLower(strings.TrimSpace(s)))
	if level == "" {
		return DetailSummary, nil
	}
	if !level.valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDetail, s)
	}
	return level, nil
}

func (l DetailLevel) valid() bool {
	switch l {
	case DetailSummary, DetailSchema, DetailFull:
		return true
	}
	return false
}

// Argument describes one input property.
type Argument struct {
	Name        string   `json:"name"`
	Type        string   `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	Required    bool     `json:"required"`
	Enum        []string `json:"enum,omitempty"`
}

// ToolDoc is the rendered documentation for one tool.
type ToolDoc struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Category  string             `json:"category"`
	Path      string             `json:"path"`
	Premium   bool               `json:"premium"`
	Summary   string             `json:"summary"`
	Input     *jsonschema.Schema `json:"inputSchema,omitempty"`
	Arguments []Argument         `json:"arguments,omitempty"`
	Notes     []string           `json:"notes,omitempty"`
	Example   map[string]any     `json:"example,omitempty"`
}

// Describe renders documentation for tool at the given level.
func Describe(tool registry.Tool, level DetailLevel) (ToolDoc, error) {
	if !level.valid() {
		return ToolDoc{}, fmt.Errorf("%w: %q", ErrInvalidDetail, level)
	}
	doc := ToolDoc{
		ID:       tool.ID,
		Name:     tool.Name,
		Category: tool.Category,
		Path:     tool.Path,
		Premium:  tool.Premium,
		Summary:  Summarize(tool.Description),
	}
	if level == DetailSummary {
		return doc, nil
	}

	doc.Input = tool.Input
	doc.Arguments = Arguments(tool.Input)
	if level == DetailSchema {
		return doc, nil
	}

	doc.Notes = notes(tool)
	doc.Example = Example(tool.Input)
	return doc, nil
}

// Summarize returns the first sentence of description, capped at
// MaxSummaryLen runes.
func Summarize(description string) string {
	s := strings.Join(strings.Fields(description), " ")
	if i := strings.Index(s, ". "); i >= 0 {
		s = s[:i+1]
	}
	runes := []rune(s)
	if len(runes) > MaxSummaryLen {
		s = strings.TrimSpace(string(runes[:MaxSummaryLen-3])) + "..."
	}
	return s
}

// Arguments lists the properties of an object schema sorted by name, with
// required arguments first.
func Arguments(schema *jsonschema.Schema) []Argument {
	if schema == nil || len(schema.Properties) == 0 {
		return nil
	}
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}
	out := make([]Argument, 0, len(schema.Properties))
	for name, prop := range schema.Properties {
		arg := Argument{Name: name, Required: required[name]}
		if prop != nil {
			arg.Type = prop.Type
			arg.Description = prop.Description
			arg.Enum = enumStrings(prop.Enum)
		}
		out = append(out, arg)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Required != out[j].Required {
			return out[i].Required
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Example builds an argument object covering the required properties of
// schema. Enumerated properties use their first allowed value.
func Example(schema *jsonschema.Schema) map[string]any {
	if schema == nil {
		return nil
	}
	out := make(map[string]any, len(schema.Required))
	for _, name := range schema.Required {
		out[name] = placeholder(name, schema.Properties[name])
	}
	return out
}

func placeholder(name string, prop *jsonschema.Schema) any {
	if prop == nil {
		return "<" + name + ">"
	}
	if len(prop.Enum) > 0 {
		return prop.Enum[0]
	}
	switch prop.Type {
	case "integer", "number":
		return 0
	case "boolean":
		return false
	case "array":
		return []any{}
	case "object":
		return map[string]any{}
	default:
		return "<" + name + ">"
	}
}

func notes(tool registry.Tool) []string {
	var out []string
	if tool.Premium {
		out = append(out, "premium: calls require the configured premium bearer token")
	}
	if cat, ok := catalog.CategoryByID(tool.Category); ok {
		out = append(out, fmt.Sprintf("listed under %s", cat.Name))
	} else {
		out = append(out, fmt.Sprintf("category %q is not a known category; the tool is not listed in any section", tool.Category))
	}
	out = append(out, "route: POST "+tool.Path)
	return out
}

func enumStrings(values []any) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprint(v))
	}
	return out
}
