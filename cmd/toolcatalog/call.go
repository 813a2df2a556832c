package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/toolcatalog/registry"
)

func newCallCmd(root *rootOptions) *cobra.Command {
	var premium bool

	cmd := &cobra.Command{
		Use:   "call <tool id or path> [json arguments]",
		Short: "Run an enabled tool once and print its result",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, root.cfg, root.logger, appOptions{})
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close(context.Background())
			}()

			snap := a.disc.Snapshot(ctx)
			tool, ok := findTool(snap, args[0])
			if !ok {
				return fmt.Errorf("tool %q is not enabled", args[0])
			}
			if tool.Premium && !premium {
				return fmt.Errorf("%w: pass --premium to run %s", registry.ErrPremiumRequired, tool.ID)
			}

			toolArgs := map[string]any{}
			if len(args) == 2 {
				if err := json.Unmarshal([]byte(args[1]), &toolArgs); err != nil {
					return fmt.Errorf("arguments must be a JSON object: %w", err)
				}
			}

			result, err := tool.Factory()(ctx, toolArgs)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().BoolVar(&premium, "premium", false, "allow running premium tools")
	return cmd
}

func findTool(snap *registry.Snapshot, ref string) (registry.Tool, bool) {
	if tool, ok := snap.ToolByID(ref); ok {
		return tool, true
	}
	return snap.Tool(ref)
}
