package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/toolcatalog/tooldoc"
)

func newDescribeCmd(root *rootOptions) *cobra.Command {
	var (
		level   string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "describe <tool id or path>",
		Short: "Show documentation for an enabled tool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := tooldoc.ParseDetailLevel(level)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := newApp(ctx, root.cfg, root.logger, appOptions{})
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close(context.Background())
			}()

			tool, ok := findTool(a.disc.Snapshot(ctx), args[0])
			if !ok {
				return fmt.Errorf("tool %q is not enabled", args[0])
			}
			doc, err := tooldoc.Describe(tool, detail)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(doc)
			}
			writeDoc(out, doc)
			return nil
		},
	}

	cmd.Flags().StringVar(&level, "level", string(tooldoc.DetailSummary), "detail level: summary, schema or full")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print documentation as JSON")
	return cmd
}

func writeDoc(w io.Writer, doc tooldoc.ToolDoc) {
	title := doc.Name
	if doc.Premium {
		title += " " + styles.premium.Render("premium")
	}
	_, _ = fmt.Fprintln(w, styles.title.Render(title))
	_, _ = fmt.Fprintf(w, "%s %s\n", styles.name.Render(doc.ID), styles.path.Render(doc.Path))
	if doc.Summary != "" {
		_, _ = fmt.Fprintln(w, doc.Summary)
	}

	if len(doc.Arguments) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, styles.title.Render("Arguments"))
		for _, arg := range doc.Arguments {
			line := "  " + styles.name.Render(arg.Name)
			if arg.Type != "" {
				line += " " + styles.dimmed.Render(arg.Type)
			}
			if arg.Required {
				line += " (required)"
			}
			if arg.Description != "" {
				line += "  " + arg.Description
			}
			if len(arg.Enum) > 0 {
				line += " " + styles.dimmed.Render("["+strings.Join(arg.Enum, "|")+"]")
			}
			_, _ = fmt.Fprintln(w, line)
		}
	}

	if len(doc.Notes) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, styles.title.Render("Notes"))
		for _, note := range doc.Notes {
			_, _ = fmt.Fprintln(w, "  "+note)
		}
	}

	if doc.Example != nil {
		example, err := json.Marshal(doc.Example)
		if err == nil {
			_, _ = fmt.Fprintln(w)
			_, _ = fmt.Fprintln(w, styles.title.Render("Example"))
			_, _ = fmt.Fprintln(w, "  "+string(example))
		}
	}
}
