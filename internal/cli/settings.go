package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/extlink/internal/app"
)

func newSettingsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the history capacity",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return e.withCore(cmd.Context(), func(ctx context.Context, core *app.Core) error {
					s, err := core.Settings.Get(ctx)
					if err != nil {
						return err
					}
					fmt.Fprintf(out(cmd), "maxHistory: %d\n", s.MaxHistory)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "set MAX_HISTORY",
			Short: "Set the history capacity (10-500)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return e.withCore(cmd.Context(), func(ctx context.Context, core *app.Core) error {
					s, err := core.Settings.Set(ctx, args[0])
					if err != nil {
						return err
					}
					fmt.Fprintf(out(cmd), "maxHistory: %d\n", s.MaxHistory)
					return nil
				})
			},
		},
	)
	return cmd
}
