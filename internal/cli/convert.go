package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/extlink/internal/app"
)

func newConvertCmd(e *env) *cobra.Command {
	var record bool

	cmd := &cobra.Command{
		Use:   "convert URL",
		Short: "Print the external form of an internal URL",
		Long: `Print the external form of URL using the first enabled mapping whose
internal prefix matches. Unmatched URLs are printed unchanged.

With --record a mapped result is also added to the history.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withCore(cmd.Context(), func(ctx context.Context, core *app.Core) error {
				res, err := core.Resolver.Convert(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(out(cmd), res.External)

				if record && res.Mapped {
					if _, _, err := core.History.Record(ctx, res.External, res.Original); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&record, "record", false, "add the converted link to the history")
	return cmd
}
