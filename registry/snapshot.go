package registry

import (
	"time"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/jonwraymond/toolcatalog/catalog"
)

// Status describes how a snapshot was produced.
type Status string

const (
	// StatusOK means the remote configuration was fetched successfully.
	StatusOK Status = "ok"
	// StatusDegraded means the fetch failed and the snapshot fell back to
	// an empty configuration.
	StatusDegraded Status = "degraded"
)

// Tool is a tool descriptor merged with its remote premium flag.
type Tool struct {
	catalog.ToolDescriptor
	Premium bool
	Factory catalog.Factory
	Input   *jsonschema.Schema
}

// Route maps a tool path to its handler factory.
type Route struct {
	Path    string
	ToolID  string
	Premium bool
	Factory catalog.Factory
}

// Snapshot is an immutable built registry.
type Snapshot struct {
	tools       []Tool
	routes      []Route
	byPath      map[string]int
	status      Status
	diagnostics []Diagnostic
	builtAt     time.Time
}

func newSnapshot(tools []Tool, status Status, diags []Diagnostic, builtAt time.Time) *Snapshot {
	if tools == nil {
		tools = []Tool{}
	}
	routes := make([]Route, len(tools))
	byPath := make(map[string]int, len(tools))
	for i, tool := range tools {
		routes[i] = Route{Path: tool.Path, ToolID: tool.ID, Premium: tool.Premium, Factory: tool.Factory}
		byPath[tool.Path] = i
	}
	return &Snapshot{
		tools:       tools,
		routes:      routes,
		byPath:      byPath,
		status:      status,
		diagnostics: diags,
		builtAt:     builtAt,
	}
}

// Tools returns the enabled tools in (Order, Name) order. Never nil.
func (s *Snapshot) Tools() []Tool {
	out := make([]Tool, len(s.tools))
	copy(out, s.tools)
	return out
}

// Routes returns one route per tool, in the same order as Tools. Never nil.
func (s *Snapshot) Routes() []Route {
	out := make([]Route, len(s.routes))
	copy(out, s.routes)
	return out
}

// ToolsByCategory returns the tools whose Category equals id, in registry
// order. Only ids of the fixed category set match anything, so tools with a
// category outside that set are reachable through Tools alone.
func (s *Snapshot) ToolsByCategory(id string) []Tool {
	out := []Tool{}
	if !catalog.IsKnownCategory(id) {
		return out
	}
	for _, tool := range s.tools {
		if tool.Category == id {
			out = append(out, tool)
		}
	}
	return out
}

// Tool returns the tool mounted at path.
func (s *Snapshot) Tool(path string) (Tool, bool) {
	i, ok := s.byPath[path]
	if !ok {
		return Tool{}, false
	}
	return s.tools[i], true
}

// ToolByID returns the tool with the given descriptor ID.
func (s *Snapshot) ToolByID(id string) (Tool, bool) {
	for _, tool := range s.tools {
		if tool.ID == id {
			return tool, true
		}
	}
	return Tool{}, false
}

// Route returns the route for path.
func (s *Snapshot) Route(path string) (Route, bool) {
	i, ok := s.byPath[path]
	if !ok {
		return Route{}, false
	}
	return s.routes[i], true
}

// Len returns the number of tools.
func (s *Snapshot) Len() int {
	return len(s.tools)
}

// Status reports how the snapshot was produced.
func (s *Snapshot) Status() Status {
	return s.status
}

// Degraded reports whether the remote configuration could not be fetched.
func (s *Snapshot) Degraded() bool {
	return s.status == StatusDegraded
}

// Diagnostics returns the problems found while building.
func (s *Snapshot) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(s.diagnostics))
	copy(out, s.diagnostics)
	return out
}

// BuiltAt returns the build time.
func (s *Snapshot) BuiltAt() time.Time {
	return s.builtAt
}
