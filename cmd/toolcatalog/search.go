package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCmd(root *rootOptions) *cobra.Command {
	limit := 10

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search enabled tools by name, description and category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, root.cfg, root.logger, appOptions{})
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close(context.Background())
			}()

			results, err := a.disc.Search(ctx, strings.Join(args, " "), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(results) == 0 {
				_, _ = fmt.Fprintln(out, styles.dimmed.Render("no matching tools"))
				return nil
			}
			for i, r := range results {
				_, _ = fmt.Fprintf(out, "%2d. %s %s\n", i+1, toolLine(r.Tool),
					styles.dimmed.Render(fmt.Sprintf("%.3f", r.Score)))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", limit, "maximum number of results")
	return cmd
}
