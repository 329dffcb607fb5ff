// Package main is the entry point for the solr-utility service and CLI.
// The root command loads configuration from the environment and installs
// the structured logger before any subcommand runs.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hofhaeckerei/solr-utility/internal/config"
	"github.com/hofhaeckerei/solr-utility/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// app carries state shared by subcommands.
type app struct {
	cfg *config.Config
}

// newRootCommand builds the command tree.
func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "solr-utility",
		Short: "Resolve category hierarchies for search indexing",
		Long: `solr-utility resolves the categories assigned to CMS records against a
category hierarchy and renders their titles for search index fields.

It also exposes the indexing policies that decide which access groups and
languages a record is indexed with.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			slog.SetDefault(logging.BuildLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.IsDev()))
			return nil
		},
	}

	root.AddCommand(
		newServeCommand(a),
		newMigrateCommand(a),
		newResolveCommand(a),
	)
	return root
}
