package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/toolcatalog/catalog"
	"github.com/jonwraymond/toolcatalog/registry"
)

type listOptions struct {
	category string
	jsonOut  bool
	all      bool
}

func newListCmd(root *rootOptions) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List enabled tools grouped by category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, root.cfg, root.logger, appOptions{})
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close(context.Background())
			}()

			snap := a.disc.Snapshot(ctx)
			if opts.jsonOut {
				return writeToolsJSON(cmd.OutOrStdout(), toolsFor(snap, opts.category))
			}

			out := cmd.OutOrStdout()
			writeStatus(out, snap)
			if opts.category != "" {
				writeSection(out, categoryTitle(opts.category), snap.ToolsByCategory(opts.category))
				return nil
			}
			sections := a.disc.Home(ctx)
			if opts.all {
				sections = a.disc.Sidebar(ctx)
			}
			for _, section := range sections {
				writeSection(out, section.Category.Name, section.Tools)
			}
			if other := uncategorized(snap); len(other) > 0 {
				writeSection(out, "Other", other)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.category, "category", "", "only list tools of this category id")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print tools as JSON")
	cmd.Flags().BoolVar(&opts.all, "all", false, "include empty categories")
	return cmd
}

func toolsFor(snap *registry.Snapshot, category string) []registry.Tool {
	if category == "" {
		return snap.Tools()
	}
	return snap.ToolsByCategory(category)
}

// uncategorized returns tools whose category is outside the fixed set.
func uncategorized(snap *registry.Snapshot) []registry.Tool {
	var out []registry.Tool
	for _, tool := range snap.Tools() {
		if !catalog.IsKnownCategory(tool.Category) {
			out = append(out, tool)
		}
	}
	return out
}

func categoryTitle(id string) string {
	if cat, ok := catalog.CategoryByID(id); ok {
		return cat.Name
	}
	return id
}

func writeStatus(w io.Writer, snap *registry.Snapshot) {
	if snap.Degraded() {
		_, _ = fmt.Fprintln(w, styles.err.Render("configuration service unreachable; no tools are enabled"))
		return
	}
	_, _ = fmt.Fprintln(w, styles.dimmed.Render(fmt.Sprintf("%d tools, built %s", snap.Len(), snap.BuiltAt().Format("15:04:05"))))
}

func writeSection(w io.Writer, title string, tools []registry.Tool) {
	_, _ = fmt.Fprintln(w, styles.title.Render(title))
	if len(tools) == 0 {
		_, _ = fmt.Fprintln(w, "  "+styles.dimmed.Render("(none)"))
		return
	}
	for _, tool := range tools {
		_, _ = fmt.Fprintln(w, "  "+toolLine(tool))
	}
}

func toolLine(tool registry.Tool) string {
	line := styles.name.Render(tool.Name) + " " + styles.path.Render(tool.Path)
	if tool.Premium {
		line += " " + styles.premium.Render("premium")
	}
	return line
}

type toolJSON struct {
	catalog.ToolDescriptor
	Premium bool `json:"premium"`
}

func writeToolsJSON(w io.Writer, tools []registry.Tool) error {
	out := make([]toolJSON, len(tools))
	for i, tool := range tools {
		out[i] = toolJSON{ToolDescriptor: tool.ToolDescriptor, Premium: tool.Premium}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
