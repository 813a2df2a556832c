package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonwraymond/toolfoundation/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/jonwraymond/toolcatalog/catalog"
	"github.com/jonwraymond/toolcatalog/registry"
)

// MCPRequest represents an incoming MCP JSON-RPC request.
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// IsNotification reports whether the request expects no response.
func (r MCPRequest) IsNotification() bool {
	return r.ID == nil && strings.HasPrefix(r.Method, "notifications/")
}

// MCPResponse represents an MCP JSON-RPC response.
type MCPResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *MCPError `json:"error,omitempty"`
}

// MCPError is a JSON-RPC error object.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func result(id, v any) MCPResponse {
	return MCPResponse{JSONRPC: "2.0", ID: id, Result: v}
}

func failure(id any, code int, msg string) MCPResponse {
	return MCPResponse{JSONRPC: "2.0", ID: id, Error: &MCPError{Code: code, Message: msg}}
}

// HandleRequest processes an MCP request and returns a response. The
// response to a notification is the zero value and should not be sent.
func (s *Server) HandleRequest(ctx context.Context, req MCPRequest) MCPResponse {
	if req.IsNotification() {
		return MCPResponse{}
	}
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req.ID)
	case "ping":
		return result(req.ID, map[string]any{})
	case "tools/list":
		return s.handleToolsList(ctx, req.ID)
	case "tools/call":
		return s.handleToolsCall(ctx, req.ID, req.Params)
	default:
		return failure(req.ID, ErrCodeMethodNotFound, fmt.Sprintf("method %s not found", req.Method))
	}
}

func (s *Server) handleInitialize(id any) MCPResponse {
	return result(id, map[string]any{
		"protocolVersion": model.MCPVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    s.config.ServerInfo.Name,
			"version": s.config.ServerInfo.Version,
		},
	})
}

func (s *Server) handleToolsList(ctx context.Context, id any) MCPResponse {
	snap := s.snapshot(ctx)
	if snap == nil {
		return result(id, map[string]any{"tools": []map[string]any{}})
	}

	tools := snap.Tools()
	mcpTools := make([]map[string]any, 0, len(tools))
	for _, tool := range tools {
		mcpTools = append(mcpTools, toMCPTool(projectTool(tool)))
	}
	return result(id, map[string]any{"tools": mcpTools})
}

type toolsCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

func (s *Server) handleToolsCall(ctx context.Context, id any, params json.RawMessage) MCPResponse {
	var callParams toolsCallParams
	if err := json.Unmarshal(params, &callParams); err != nil {
		return failure(id, ErrCodeInvalidParams, err.Error())
	}
	if strings.TrimSpace(callParams.Name) == "" {
		return failure(id, ErrCodeInvalidParams, "tool name is required")
	}

	tool, ok := lookup(s.snapshot(ctx), callParams.Name)
	if !ok {
		return failure(id, ErrCodeToolNotFound, fmt.Sprintf("%s: %s", ErrToolNotFound, callParams.Name))
	}

	start := time.Now()
	observe := func(outcome string) {
		if s.config.Metrics != nil {
			s.config.Metrics.ObserveCall(tool.ID, outcome, time.Since(start))
		}
	}

	if tool.Premium && !s.config.PremiumAccess {
		observe(registry.CallForbidden)
		return failure(id, ErrCodePremiumRequired, ErrPremiumRequired.Error())
	}

	args := callParams.Arguments
	if args == nil {
		args = map[string]any{}
	}
	out, err := tool.Factory()(ctx, args)
	if err != nil {
		outcome := registry.CallError
		if errors.Is(err, catalog.ErrInvalidArgument) {
			outcome = registry.CallInvalid
		}
		observe(outcome)
		s.logger.Debug("tool call failed", zap.String("tool", tool.ID), zap.Error(err))
		return result(id, &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
			IsError: true,
		})
	}

	text, err := json.Marshal(out)
	if err != nil {
		observe(registry.CallError)
		return failure(id, ErrCodeToolExecFailed, err.Error())
	}
	observe(registry.CallOK)
	return result(id, &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: string(text)}},
		StructuredContent: structured(out),
	})
}

// structured returns v when it is a JSON object, the only shape MCP
// accepts as structured content.
func structured(v any) any {
	switch v.(type) {
	case map[string]any, map[string]string, map[string]float64:
		return v
	default:
		return nil
	}
}
