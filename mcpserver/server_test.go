package mcpserver

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonwraymond/toolfoundation/model"

	"github.com/jonwraymond/toolcatalog/catalog"
	"github.com/jonwraymond/toolcatalog/registry"
	"github.com/jonwraymond/toolcatalog/toolconfig"
)

func echoModule(id, category, path string) catalog.Module {
	return catalog.Module{
		Group: category,
		Meta: &catalog.ToolDescriptor{
			ID:          id,
			Name:        strings.ToUpper(id[:1]) + id[1:],
			Description: "Echoes " + id,
			Category:    category,
			Path:        path,
		},
		Factory: func() catalog.Handler {
			return func(ctx context.Context, args map[string]any) (any, error) {
				if args["fail"] == true {
					return nil, fmt.Errorf("%w: fail requested", catalog.ErrInvalidArgument)
				}
				return map[string]any{"echo": args["input"]}, nil
			}
		},
	}
}

func testSnapshot(t *testing.T) *registry.Snapshot {
	t.Helper()
	b := registry.New(registry.Options{
		Modules: []catalog.Module{
			echoModule("echo", "text", "/tools/text/echo"),
			echoModule("vault", "crypto", "/tools/crypto/vault"),
			echoModule("hidden", "web", "/tools/web/hidden"),
		},
		Fetcher: toolconfig.StaticFetcher{Rows: []toolconfig.RemoteToolConfig{
			{Path: "/tools/text/echo", Enabled: true},
			{Path: "/tools/crypto/vault", Enabled: true, Premium: true},
			{Path: "/tools/web/hidden", Enabled: false},
		}},
	})
	return b.Build(context.Background())
}

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	if cfg.ServerInfo.Name == "" {
		cfg.ServerInfo = ServerInfo{Name: "test", Version: "1.0.0"}
	}
	return New(Static(testSnapshot(t)), cfg)
}

func callRequest(t *testing.T, name string, args map[string]any) MCPRequest {
	t.Helper()
	params, err := json.Marshal(map[string]any{"name": name, "arguments": args})
	if err != nil {
		t.Fatal(err)
	}
	return MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/call", Params: params}
}

// roundTrip re-encodes v so tests can inspect the wire form.
func roundTrip(t *testing.T, v any) map[string]any {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return out
}

func TestNew_DefaultsName(t *testing.T) {
	s := New(nil, Config{})
	if s.config.ServerInfo.Name != "toolcatalog" {
		t.Errorf("expected default name, got %q", s.config.ServerInfo.Name)
	}
}

func TestHandleRequest_Initialize(t *testing.T) {
	s := newTestServer(t, Config{ServerInfo: ServerInfo{Name: "test-server", Version: "1.0.0"}})

	resp := s.HandleRequest(context.Background(), MCPRequest{JSONRPC: "2.0", ID: 1, Method: "initialize"})
	if resp.Error != nil {
		t.Fatalf("expected no error, got %v", resp.Error)
	}

	resultMap, ok := resp.Result.(map[string]any)
	if !ok {
		t.Fatalf("expected result to be map, got %T", resp.Result)
	}
	if resultMap["protocolVersion"] != model.MCPVersion {
		t.Errorf("expected protocolVersion %s, got %v", model.MCPVersion, resultMap["protocolVersion"])
	}
	serverInfo := resultMap["serverInfo"].(map[string]any)
	if serverInfo["name"] != "test-server" {
		t.Errorf("expected name 'test-server', got %v", serverInfo["name"])
	}
}

func TestHandleRequest_Ping(t *testing.T) {
	s := newTestServer(t, Config{})
	resp := s.HandleRequest(context.Background(), MCPRequest{JSONRPC: "2.0", ID: 7, Method: "ping"})
	if resp.Error != nil || resp.ID != 7 {
		t.Fatalf("unexpected ping response %+v", resp)
	}
}

func TestHandleRequest_Notification(t *testing.T) {
	s := newTestServer(t, Config{})
	resp := s.HandleRequest(context.Background(), MCPRequest{JSONRPC: "2.0", Method: "notifications/initialized"})
	if resp.JSONRPC != "" || resp.Result != nil || resp.Error != nil {
		t.Errorf("expected zero response for notification, got %+v", resp)
	}
}

func TestHandleRequest_ToolsList(t *testing.T) {
	s := newTestServer(t, Config{})

	resp := s.HandleRequest(context.Background(), MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})
	if resp.Error != nil {
		t.Fatalf("expected no error, got %v", resp.Error)
	}

	tools := resp.Result.(map[string]any)["tools"].([]map[string]any)
	if len(tools) != 2 {
		t.Fatalf("expected 2 enabled tools, got %d", len(tools))
	}
	names := map[string]map[string]any{}
	for _, tool := range tools {
		names[tool["name"].(string)] = tool
	}
	echo, ok := names["text:echo"]
	if !ok {
		t.Fatalf("expected text:echo in %v", names)
	}
	if echo["title"] != "Echo" {
		t.Errorf("expected title Echo, got %v", echo["title"])
	}
	if schema, ok := echo["inputSchema"].(map[string]any); !ok || schema["type"] != "object" {
		t.Errorf("expected default object schema, got %v", echo["inputSchema"])
	}

	vault := roundTrip(t, names["crypto:vault"])
	meta := vault["_meta"].(map[string]any)
	if meta["premium"] != true {
		t.Errorf("expected premium in _meta, got %v", meta)
	}
	if meta["path"] != "/tools/crypto/vault" {
		t.Errorf("expected path in _meta, got %v", meta)
	}
	if _, ok := names["web:hidden"]; ok {
		t.Error("disabled tool must not be listed")
	}
}

func TestHandleRequest_ToolsListNilSource(t *testing.T) {
	s := New(nil, Config{})
	resp := s.HandleRequest(context.Background(), MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})
	tools := resp.Result.(map[string]any)["tools"].([]map[string]any)
	if len(tools) != 0 {
		t.Errorf("expected no tools, got %d", len(tools))
	}
}

func TestHandleRequest_ToolsCall(t *testing.T) {
	s := newTestServer(t, Config{})

	for _, name := range []string{"text:echo", "echo"} {
		resp := s.HandleRequest(context.Background(), callRequest(t, name, map[string]any{"input": "test"}))
		if resp.Error != nil {
			t.Fatalf("%s: expected no error, got %v", name, resp.Error)
		}

		out := roundTrip(t, resp.Result)
		if out["isError"] == true {
			t.Fatalf("%s: unexpected tool error %v", name, out)
		}
		content := out["content"].([]any)[0].(map[string]any)
		if content["type"] != "text" {
			t.Errorf("expected text content, got %v", content["type"])
		}
		if content["text"] != `{"echo":"test"}` {
			t.Errorf("unexpected text %v", content["text"])
		}
		structured := out["structuredContent"].(map[string]any)
		if structured["echo"] != "test" {
			t.Errorf("unexpected structured content %v", structured)
		}
	}
}

func TestHandleRequest_ToolsCall_ToolError(t *testing.T) {
	s := newTestServer(t, Config{})

	resp := s.HandleRequest(context.Background(), callRequest(t, "text:echo", map[string]any{"fail": true}))
	if resp.Error != nil {
		t.Fatalf("tool failures are results, got protocol error %v", resp.Error)
	}
	out := roundTrip(t, resp.Result)
	if out["isError"] != true {
		t.Fatalf("expected isError, got %v", out)
	}
	text := out["content"].([]any)[0].(map[string]any)["text"].(string)
	if !strings.Contains(text, "invalid argument") {
		t.Errorf("expected invalid argument message, got %q", text)
	}
}

func TestHandleRequest_ToolsCall_NotFound(t *testing.T) {
	s := newTestServer(t, Config{})

	for _, name := range []string{"missing", "web:hidden", "hidden"} {
		resp := s.HandleRequest(context.Background(), callRequest(t, name, nil))
		if resp.Error == nil {
			t.Fatalf("%s: expected error response", name)
		}
		if resp.Error.Code != ErrCodeToolNotFound {
			t.Errorf("%s: expected ErrCodeToolNotFound, got %d", name, resp.Error.Code)
		}
	}
}

func TestHandleRequest_ToolsCall_InvalidParams(t *testing.T) {
	s := newTestServer(t, Config{})

	resp := s.HandleRequest(context.Background(), MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/call", Params: json.RawMessage(`[1,2]`)})
	if resp.Error == nil || resp.Error.Code != ErrCodeInvalidParams {
		t.Fatalf("expected ErrCodeInvalidParams, got %+v", resp.Error)
	}

	resp = s.HandleRequest(context.Background(), callRequest(t, " ", nil))
	if resp.Error == nil || resp.Error.Code != ErrCodeInvalidParams {
		t.Fatalf("expected ErrCodeInvalidParams for empty name, got %+v", resp.Error)
	}
}

type recordingCalls struct {
	mu    sync.Mutex
	calls []string
}

func (r *recordingCalls) ObserveCall(toolID, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, toolID+":"+outcome)
}

func TestHandleRequest_ToolsCall_Premium(t *testing.T) {
	metrics := &recordingCalls{}
	locked := newTestServer(t, Config{Metrics: metrics})

	resp := locked.HandleRequest(context.Background(), callRequest(t, "crypto:vault", nil))
	if resp.Error == nil || resp.Error.Code != ErrCodePremiumRequired {
		t.Fatalf("expected ErrCodePremiumRequired, got %+v", resp.Error)
	}

	open := newTestServer(t, Config{PremiumAccess: true, Metrics: metrics})
	resp = open.HandleRequest(context.Background(), callRequest(t, "crypto:vault", map[string]any{"input": "x"}))
	if resp.Error != nil {
		t.Fatalf("expected premium call to succeed, got %v", resp.Error)
	}

	_ = open.HandleRequest(context.Background(), callRequest(t, "echo", map[string]any{"fail": true}))

	want := []string{"vault:forbidden", "vault:ok", "echo:invalid"}
	if strings.Join(metrics.calls, ",") != strings.Join(want, ",") {
		t.Errorf("observed calls = %v, want %v", metrics.calls, want)
	}
}

func TestHandleRequest_MethodNotFound(t *testing.T) {
	s := newTestServer(t, Config{})

	resp := s.HandleRequest(context.Background(), MCPRequest{JSONRPC: "2.0", ID: 1, Method: "unknown/method"})
	if resp.Error == nil {
		t.Fatal("expected error for unknown method")
	}
	if resp.Error.Code != ErrCodeMethodNotFound {
		t.Errorf("expected ErrCodeMethodNotFound, got %d", resp.Error.Code)
	}
}

func TestSourceIsReadPerRequest(t *testing.T) {
	snap := testSnapshot(t)
	calls := 0
	s := New(SourceFunc(func(context.Context) *registry.Snapshot {
		calls++
		return snap
	}), Config{})

	for i := 0; i < 3; i++ {
		_ = s.HandleRequest(context.Background(), MCPRequest{JSONRPC: "2.0", ID: i, Method: "tools/list"})
	}
	if calls != 3 {
		t.Errorf("expected source read per request, got %d", calls)
	}
}

func TestServe(t *testing.T) {
	s := newTestServer(t, Config{})

	input := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`{bad json`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
	}, "\n")
	var out bytes.Buffer
	if err := Serve(context.Background(), s, strings.NewReader(input), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	var responses []MCPResponse
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var resp MCPResponse
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			t.Fatalf("bad response line %q: %v", scanner.Text(), err)
		}
		responses = append(responses, resp)
	}
	if len(responses) != 3 {
		t.Fatalf("expected 3 responses (notification and blank skipped), got %d", len(responses))
	}
	if responses[1].Error == nil || responses[1].Error.Code != ErrCodeParseError {
		t.Errorf("expected parse error second, got %+v", responses[1])
	}
	if responses[2].Error != nil {
		t.Errorf("expected tools/list success, got %+v", responses[2].Error)
	}
}

func TestServe_CancelledContext(t *testing.T) {
	s := newTestServer(t, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Serve(ctx, s, strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`+"\n"), &bytes.Buffer{})
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestServeHTTP(t *testing.T) {
	srv := httptest.NewServer(ServeHTTP(newTestServer(t, Config{})))
	defer srv.Close()

	body := bytes.NewBufferString(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	resp, err := http.Post(srv.URL, "application/json", body)
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}
	var mcpResp MCPResponse
	if err := json.NewDecoder(resp.Body).Decode(&mcpResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if mcpResp.Error != nil {
		t.Fatalf("unexpected error %v", mcpResp.Error)
	}
}

func TestServeHTTP_Notification(t *testing.T) {
	srv := httptest.NewServer(ServeHTTP(newTestServer(t, Config{})))
	defer srv.Close()

	resp, err := http.Post(srv.URL, "application/json",
		bytes.NewBufferString(`{"jsonrpc":"2.0","method":"notifications/initialized"}`))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusAccepted {
		t.Errorf("expected 202, got %d", resp.StatusCode)
	}
}

func TestServeHTTP_MethodNotAllowed(t *testing.T) {
	srv := httptest.NewServer(ServeHTTP(newTestServer(t, Config{})))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", resp.StatusCode)
	}
}

func TestServeHTTP_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(ServeHTTP(newTestServer(t, Config{})))
	defer srv.Close()

	resp, err := http.Post(srv.URL, "application/json", bytes.NewBufferString(`{invalid json`))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var mcpResp MCPResponse
	_ = json.NewDecoder(resp.Body).Decode(&mcpResp)
	if mcpResp.Error == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if mcpResp.Error.Code != ErrCodeParseError {
		t.Errorf("expected ErrCodeParseError, got %d", mcpResp.Error.Code)
	}
}

func TestServeSSE(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sse", strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`))
	ServeSSE(newTestServer(t, Config{})).ServeHTTP(rec, req)

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("expected text/event-stream, got %q", ct)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "event: message\ndata: ") {
		t.Errorf("unexpected SSE body %q", body)
	}
	if !strings.HasSuffix(body, "\n\n") {
		t.Errorf("SSE event must end with a blank line: %q", body)
	}
}

func TestLookup_NamespacedAndBareID(t *testing.T) {
	snap := testSnapshot(t)
	for _, name := range []string{"crypto:vault", "vault"} {
		tool, ok := lookup(snap, name)
		if !ok || tool.ID != "vault" {
			t.Errorf("lookup(%q) = %q, %v; want vault", name, tool.ID, ok)
		}
	}
	if _, ok := lookup(snap, "crypto:missing"); ok {
		t.Error("lookup of unknown tool should fail")
	}
	if _, ok := lookup(nil, "vault"); ok {
		t.Error("lookup on nil snapshot should fail")
	}
}
