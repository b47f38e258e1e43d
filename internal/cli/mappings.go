package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/extlink/internal/app"
	"github.com/MrSnakeDoc/extlink/internal/domain"
)

func newMappingsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mappings",
		Aliases: []string{"mapping", "m"},
		Short:   "Manage the mapping table",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List mappings in precedence order",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return e.withCore(cmd.Context(), func(ctx context.Context, core *app.Core) error {
					mappings, err := core.Store.GetMappings(ctx)
					if err != nil {
						return err
					}
					tw := tabwriter.NewWriter(out(cmd), 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "ID\tINTERNAL\tEXTERNAL\tENABLED")
					for _, m := range mappings {
						fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", m.ID, m.InternalPrefix, m.ExternalPrefix, m.Enabled)
					}
					return tw.Flush()
				})
			},
		},
		&cobra.Command{
			Use:   "add INTERNAL EXTERNAL",
			Short: "Append a mapping",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return e.withCore(cmd.Context(), func(ctx context.Context, core *app.Core) error {
					m, err := core.Store.AddMapping(ctx, args[0], args[1])
					if err != nil {
						return err
					}
					fmt.Fprintln(out(cmd), m.ID)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:     "rm ID",
			Aliases: []string{"remove"},
			Short:   "Remove a mapping",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return e.withCore(cmd.Context(), func(ctx context.Context, core *app.Core) error {
					return core.Store.RemoveMapping(ctx, args[0])
				})
			},
		},
		newMappingUpdateCmd(e),
		newMappingToggleCmd(e, "enable", "Include a mapping in conversion", true),
		newMappingToggleCmd(e, "disable", "Keep a mapping but skip it during conversion", false),
	)
	return cmd
}

func newMappingUpdateCmd(e *env) *cobra.Command {
	var disabled bool

	cmd := &cobra.Command{
		Use:   "update ID INTERNAL EXTERNAL",
		Short: "Replace a mapping's prefixes in place",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withCore(cmd.Context(), func(ctx context.Context, core *app.Core) error {
				if _, err := findMapping(ctx, core, args[0]); err != nil {
					return err
				}
				return core.Store.UpdateMapping(ctx, args[0], args[1], args[2], !disabled)
			})
		},
	}
	cmd.Flags().BoolVar(&disabled, "disabled", false, "store the mapping disabled")
	return cmd
}

func newMappingToggleCmd(e *env, use, short string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withCore(cmd.Context(), func(ctx context.Context, core *app.Core) error {
				m, err := findMapping(ctx, core, args[0])
				if err != nil {
					return err
				}
				return core.Store.UpdateMapping(ctx, m.ID, m.InternalPrefix, m.ExternalPrefix, enabled)
			})
		},
	}
}

// findMapping fails on unknown ids; the store itself treats them as a no-op,
// which is too quiet for an interactive command.
func findMapping(ctx context.Context, core *app.Core, id string) (domain.DomainMapping, error) {
	mappings, err := core.Store.GetMappings(ctx)
	if err != nil {
		return domain.DomainMapping{}, err
	}
	for _, m := range mappings {
		if m.ID == id {
			return m, nil
		}
	}
	return domain.DomainMapping{}, fmt.Errorf("mapping %q not found", id)
}
