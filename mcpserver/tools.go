package mcpserver

import (
	"github.com/jonwraymond/toolfoundation/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/toolcatalog/registry"
)

// emptyObjectSchema is advertised for tools without an input schema.
var emptyObjectSchema = map[string]any{"type": "object"}

// projectTool describes a registry tool as an MCP tool namespaced by its
// category.
func projectTool(t registry.Tool) model.Tool {
	var schema any = emptyObjectSchema
	if t.Input != nil {
		schema = t.Input
	}
	return model.Tool{
		Tool: mcp.Tool{
			Name:        t.ID,
			Title:       t.Name,
			Description: t.Description,
			InputSchema: schema,
			Meta: mcp.Meta{
				"path":    t.Path,
				"premium": t.Premium,
			},
		},
		Namespace: t.Category,
		Tags:      model.NormalizeTags([]string{t.Category}),
	}
}

func toMCPTool(tool model.Tool) map[string]any {
	return map[string]any{
		"name":        tool.ToolID(),
		"title":       tool.Title,
		"description": tool.Description,
		"inputSchema": tool.InputSchema,
		"_meta":       tool.Meta,
	}
}

// lookup resolves a tools/call name: either the namespaced MCP name or a
// bare tool id.
func lookup(snap *registry.Snapshot, name string) (registry.Tool, bool) {
	if snap == nil {
		return registry.Tool{}, false
	}
	for _, tool := range snap.Tools() {
		mt := projectTool(tool)
		if mt.ToolID() == name {
			return tool, true
		}
	}
	return snap.ToolByID(name)
}
