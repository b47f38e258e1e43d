// Package cli holds the extlink cobra commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/extlink/internal/app"
	"github.com/MrSnakeDoc/extlink/internal/config"
	"github.com/MrSnakeDoc/extlink/internal/logger"
)

// env is shared by every subcommand. It is filled in by the root
// PersistentPreRunE, so commands never load configuration themselves.
type env struct {
	cfg      *config.Config
	log      logger.Logger
	logLevel string
	store    string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:   "extlink",
		Short: "Rewrite internal file-browser links into their public form",
		Long: `extlink keeps an ordered table of internal -> external URL prefixes,
converts links with it and remembers the external links it produced.

Run "extlink serve" for the HTTP API used by the browser userscript, or use the
other commands to manage the same store from a shell.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if e.store != "" {
				cfg.SetStore(e.store)
			}
			level := cfg.LogLevel
			if e.logLevel != "" {
				level = e.logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			e.cfg = cfg
			e.log = logger.New(level, cfg.PrettyLog)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&e.logLevel, "log-level", "", "override EXTLINK_LOG_LEVEL")
	root.PersistentFlags().StringVar(&e.store, "store", "", "override EXTLINK_STORE (memory, file, sqlite, redis)")

	root.AddCommand(
		newServeCmd(e),
		newConvertCmd(e),
		newMappingsCmd(e),
		newHistoryCmd(e),
		newSettingsCmd(e),
		newImportCmd(e),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// withCore opens the configured store for the duration of fn.
func (e *env) withCore(ctx context.Context, fn func(ctx context.Context, core *app.Core) error) error {
	backend, err := app.OpenBackend(e.cfg, e.log)
	if err != nil {
		return err
	}
	defer backend.Close()
	defer func() { _ = e.log.Sync() }()

	return fn(ctx, app.NewCore(backend.KV, e.log, nil))
}

func out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }
