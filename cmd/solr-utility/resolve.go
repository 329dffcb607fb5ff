package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hofhaeckerei/solr-utility/internal/database"
	"github.com/hofhaeckerei/solr-utility/internal/models"
	"github.com/hofhaeckerei/solr-utility/internal/store"
	"github.com/hofhaeckerei/solr-utility/internal/taxonomy"
)

// configFlags maps resolve flags to configuration keys.
var configFlags = map[string]string{
	"base-id":             "baseId",
	"filter":              "filterIds",
	"exclude":             "excludeIds",
	"multi-value":         "multiValue",
	"remove-empty-values": "removeEmptyValues",
	"glue":                "singleValueGlue",
}

func newResolveCommand(a *app) *cobra.Command {
	var (
		lang    int
		fixture string
	)

	cmd := &cobra.Command{
		Use:   "resolve table:uid...",
		Short: "Resolve the categories of records and print them",
		Long: `The resolve command renders the category field of each record, one line per
record as "table:uid<TAB>value". Records are read from the configured database,
or from a YAML fixture with --fixture.`,
		Example: `  solr-utility resolve --base-id 1 pages:2 pages:3
  solr-utility resolve --fixture taxonomy.yaml --multi-value=false --glue " | " pages:3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subjects := make([]models.Subject, len(args))
			for i, ref := range args {
				subject, err := models.ParseSubject(ref)
				if err != nil {
					return err
				}
				subjects[i] = subject
			}
			if lang < 0 {
				return fmt.Errorf("--lang must not be negative")
			}
			cfg := configFromFlags(cmd.Flags())
			locale := models.Locale{LanguageID: lang}

			if fixture != "" {
				f, err := os.Open(fixture)
				if err != nil {
					return fmt.Errorf("open fixture: %w", err)
				}
				defer f.Close()
				mem, err := taxonomy.LoadFixture(f)
				if err != nil {
					return err
				}
				resolver := taxonomy.NewResolver(mem, mem, taxonomy.WithMaxDepth(a.cfg.MaxDepth))
				return printResults(cmd.Context(), cmd.OutOrStdout(), resolver, mem, subjects, cfg, locale)
			}

			db, err := database.Connect(cmd.Context(), a.cfg.DBDriver, a.cfg.DSN())
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer db.Close()

			categories := store.NewCategoryStore(db, a.cfg.DBDriver)
			resolver := taxonomy.NewResolver(categories, categories, taxonomy.WithMaxDepth(a.cfg.MaxDepth))
			return printResults(cmd.Context(), cmd.OutOrStdout(), resolver, store.NewRelationStore(db, a.cfg.DBDriver), subjects, cfg, locale)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&lang, "lang", 0, "language id used for title overlays")
	flags.StringVar(&fixture, "fixture", "", "read categories and assignments from a YAML fixture instead of the database")
	flags.Int64("base-id", 0, "category whose children form the base set")
	flags.String("filter", "", "comma separated ids restricting the base set")
	flags.String("exclude", "", "comma separated ids removed from the base set")
	flags.Bool("multi-value", true, "print a JSON list instead of joined titles")
	flags.Bool("remove-empty-values", true, "drop empty titles")
	flags.String("glue", taxonomy.DefaultGlue, "separator for single-value output")

	return cmd
}

// configFromFlags builds a resolve configuration from the flags that were set.
func configFromFlags(flags *pflag.FlagSet) taxonomy.Config {
	values := make(map[string]string)
	for flag, key := range configFlags {
		if f := flags.Lookup(flag); f != nil && f.Changed {
			values[key] = f.Value.String()
		}
	}
	return taxonomy.ParseConfig(values)
}

func printResults(ctx context.Context, w io.Writer, resolver *taxonomy.Resolver, subjects taxonomy.SubjectCategoryResolver, refs []models.Subject, cfg taxonomy.Config, locale models.Locale) error {
	for _, subject := range refs {
		result, err := resolver.Render(ctx, subjects, subject, cfg, locale)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", subject, err)
		}
		fmt.Fprintf(w, "%s\t%s\n", subject, result)
	}
	return nil
}
