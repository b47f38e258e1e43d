package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/extlink/internal/app"
)

func newHistoryCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"h"},
		Short:   "Inspect or prune the link history",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List recorded links, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return e.withCore(cmd.Context(), func(ctx context.Context, core *app.Core) error {
					entries, err := core.History.List(ctx)
					if err != nil {
						return err
					}
					tw := tabwriter.NewWriter(out(cmd), 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "ID\tCREATED\tEXTERNAL\tORIGINAL")
					for _, h := range entries {
						created := time.UnixMilli(h.CreatedAt).Format(time.RFC3339)
						fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", h.ID, created, h.ExternalURL, h.OriginalURL)
					}
					return tw.Flush()
				})
			},
		},
		&cobra.Command{
			Use:     "rm ID",
			Aliases: []string{"remove"},
			Short:   "Remove one history entry",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return e.withCore(cmd.Context(), func(ctx context.Context, core *app.Core) error {
					return core.History.Remove(ctx, args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every history entry",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return e.withCore(cmd.Context(), func(ctx context.Context, core *app.Core) error {
					return core.History.Clear(ctx)
				})
			},
		},
	)
	return cmd
}
