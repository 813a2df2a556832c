package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/toolcatalog/registry"
	"github.com/jonwraymond/toolcatalog/toolconfig"
	"github.com/jonwraymond/toolcatalog/tools"
	"github.com/jonwraymond/toolcatalog/toolstore"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the config, seed file and built-in tool list without serving",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, styles.success.Render("config ok"))

			if seed := root.cfg.Store.Seed; seed != "" {
				records, err := toolstore.LoadSeed(seed)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out, styles.success.Render(fmt.Sprintf("seed ok: %d records", len(records))))
			}

			snap := buildAllEnabled(cmd.Context())
			diags := snap.Diagnostics()
			var fatal []string
			for _, d := range diags {
				line := fmt.Sprintf("%s %s %s: %s", d.Kind, d.ToolID, d.Path, d.Message)
				switch d.Kind {
				case registry.DiagInvalidModule, registry.DiagDuplicatePath:
					fatal = append(fatal, line)
					_, _ = fmt.Fprintln(out, styles.err.Render(line))
				default:
					_, _ = fmt.Fprintln(out, styles.dimmed.Render(line))
				}
			}

			summary := fmt.Sprintf("%d modules, %d tools, %d diagnostics", len(tools.Modules()), snap.Len(), len(diags))
			_, _ = fmt.Fprintln(out, styles.box.Render(summary))
			if len(fatal) > 0 {
				return fmt.Errorf("tool list has %d errors: %s", len(fatal), strings.Join(fatal, "; "))
			}
			return nil
		},
	}
}

// buildAllEnabled builds the static tool list with every path enabled so
// that every module is checked.
func buildAllEnabled(ctx context.Context) *registry.Snapshot {
	mods := tools.Modules()
	rows := make([]toolconfig.RemoteToolConfig, 0, len(mods))
	for _, mod := range mods {
		if mod.Meta != nil {
			rows = append(rows, toolconfig.RemoteToolConfig{Path: mod.Meta.Path, Enabled: true})
		}
	}
	return registry.New(registry.Options{
		Fetcher: toolconfig.StaticFetcher{Rows: rows},
		Modules: mods,
	}).Build(ctx)
}
