package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/toolcatalog/mcpserver"
)

func newMCPCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the catalog as MCP tools over stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalAwareContext(cmd.Context())
			defer cancel()

			a, err := newApp(ctx, root.cfg, root.logger, appOptions{})
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close(context.Background())
			}()

			srv := mcpserver.New(a.disc, mcpserver.Config{
				ServerInfo:    mcpserver.ServerInfo{Name: root.cfg.MCP.Name, Version: root.cfg.MCP.Version},
				PremiumAccess: root.cfg.MCP.AllowPremium,
				Logger:        root.logger,
			})
			return mcpserver.ServeStdio(ctx, srv)
		},
	}
}
