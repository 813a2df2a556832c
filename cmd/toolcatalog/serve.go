package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonwraymond/toolcatalog/mcpserver"
	"github.com/jonwraymond/toolcatalog/registry"
	"github.com/jonwraymond/toolcatalog/telemetry"
	"github.com/jonwraymond/toolcatalog/toolsvc"
)

type serveOptions struct {
	listen  string
	refresh time.Duration
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := serveOptions{refresh: 30 * time.Second}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the configuration API, tool routes and MCP endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalAwareContext(cmd.Context())
			defer cancel()

			a, err := newApp(ctx, root.cfg, root.logger, appOptions{store: true, favorites: true, metrics: true})
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close(context.Background())
			}()

			addr := root.cfg.Server.ListenAddress
			if opts.listen != "" {
				addr = opts.listen
			}
			return serve(ctx, a, addr, opts.refresh)
		},
	}

	cmd.Flags().StringVar(&opts.listen, "listen", "", "listen address (overrides server.listenAddress)")
	cmd.Flags().DurationVar(&opts.refresh, "refresh", opts.refresh, "registry rebuild interval (0 disables)")
	return cmd
}

// newServeHandler mounts every HTTP surface of the catalog on one mux.
func newServeHandler(ctx context.Context, a *app) (http.Handler, error) {
	svc, err := toolsvc.New(toolsvc.Options{
		Tools:      a.store,
		Favorites:  a.favorites,
		AdminToken: a.cfg.Server.AdminToken,
		Logger:     a.logger,
	})
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	svc.Mount(mux)

	routeOpts := registry.HandlerOptions{
		Logger:        a.logger,
		PremiumAccess: registry.BearerTokenAccess(a.cfg.Server.PremiumToken),
	}
	mcpCfg := mcpserver.Config{
		ServerInfo:    mcpserver.ServerInfo{Name: a.cfg.MCP.Name, Version: a.cfg.MCP.Version},
		PremiumAccess: a.cfg.MCP.AllowPremium,
		Logger:        a.logger,
	}
	if a.metrics != nil {
		routeOpts.Metrics = a.metrics
		mcpCfg.Metrics = a.metrics
	}
	mux.Handle("/tools/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.disc.Snapshot(r.Context()).Handler(routeOpts).ServeHTTP(w, r)
	}))

	mcpSrv := mcpserver.New(a.disc, mcpCfg)
	mux.Handle("POST /mcp", mcpserver.ServeHTTP(mcpSrv))
	mux.Handle("POST /mcp/sse", mcpserver.ServeSSE(mcpSrv))

	if a.gatherer != nil {
		mux.Handle("GET /metrics", telemetry.MetricsHandler(a.gatherer))
	}
	if a.cfg.Observability.Healthz {
		mux.Handle("GET /healthz", telemetry.HealthHandler(func() *registry.Snapshot {
			return a.disc.Snapshot(ctx)
		}))
	}
	return svc.LogRequests(mux), nil
}

func serve(ctx context.Context, a *app, addr string, refresh time.Duration) error {
	handler, err := newServeHandler(ctx, a)
	if err != nil {
		return err
	}

	a.disc.OnRefresh(func(s *registry.Snapshot) {
		a.logger.Info("catalog refreshed",
			zap.String("status", string(s.Status())),
			zap.Int("tools", s.Len()),
		)
	})
	a.disc.Refresh(ctx)
	if refresh > 0 {
		go refreshLoop(ctx, a, refresh)
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("catalog server listening",
			zap.String("addr", server.Addr),
			zap.Bool("metrics", a.gatherer != nil),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("catalog server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("catalog server shutdown error", zap.Error(err))
			return err
		}
		a.logger.Info("catalog server stopped")
		return nil
	}
}

func refreshLoop(ctx context.Context, a *app, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.disc.Refresh(ctx)
		}
	}
}
