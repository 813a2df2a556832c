package mcpserver

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonwraymond/toolcatalog/registry"
)

// ServerInfo identifies the server in the initialize response.
type ServerInfo struct {
	Name    string
	Version string
}

// Config configures a Server.
type Config struct {
	ServerInfo ServerInfo
	// PremiumAccess allows tools/call on premium tools.
	PremiumAccess bool
	Logger        *zap.Logger
	Metrics       registry.CallMetrics
}

// Source supplies the snapshot served to clients.
type Source interface {
	Snapshot(ctx context.Context) *registry.Snapshot
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) *registry.Snapshot

// Snapshot calls f.
func (f SourceFunc) Snapshot(ctx context.Context) *registry.Snapshot {
	return f(ctx)
}

// Static serves a fixed snapshot.
func Static(snap *registry.Snapshot) Source {
	return SourceFunc(func(context.Context) *registry.Snapshot { return snap })
}

// Server answers MCP requests against the current snapshot.
type Server struct {
	source Source
	config Config
	logger *zap.Logger
}

// New creates a Server.
func New(source Source, cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ServerInfo.Name == "" {
		cfg.ServerInfo.Name = "toolcatalog"
	}
	return &Server{
		source: source,
		config: cfg,
		logger: logger.Named("mcp"),
	}
}

func (s *Server) snapshot(ctx context.Context) *registry.Snapshot {
	if s.source == nil {
		return nil
	}
	return s.source.Snapshot(ctx)
}
