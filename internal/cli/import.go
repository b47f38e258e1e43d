package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/extlink/internal/app"
	"github.com/MrSnakeDoc/extlink/internal/seed"
)

func newImportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Merge mappings from a YAML seed file",
		Long: `Merge mappings from a YAML seed file of the form

  mappings:
    - internal: http://files.local
      external: https://files.example.com
      enabled: true

New internal prefixes are appended in file order; known ones are updated in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withCore(cmd.Context(), func(ctx context.Context, core *app.Core) error {
				res, err := seed.NewImporter(seed.NewLoader(args[0]), core.Store, e.log).Import(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out(cmd), "added %d, updated %d, unchanged %d, skipped %d\n",
					res.Added, res.Updated, res.Unchanged, res.Skipped)
				return nil
			})
		},
	}
}
