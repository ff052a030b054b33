package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"langcat/pkg/catalog"
	"langcat/pkg/db"
	"langcat/pkg/source"
	"langcat/pkg/store"
)

// DefaultDBPath is the import target when neither --db nor a sqlite source is configured.
const DefaultDBPath = "data/langcat.db"

var importDB string

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import a JSON catalog into a SQLite database",
	Long:  "Validates the records of a JSON catalog with the configured missing-field policy and replaces the languages table of the target database with them.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVar(&importDB, "db", "", "target database (default: catalog.location for sqlite sources, else "+DefaultDBPath+")")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	policy, err := catalog.ParsePolicy(cfg.Catalog.MissingFields)
	if err != nil {
		return err
	}

	target := importDB
	if target == "" {
		target = DefaultDBPath
		if cfg.Catalog.Source == source.KindSQLite {
			target = cfg.Catalog.Location
		}
	}

	cs := catalog.NewStore()
	if err := catalog.NewLoader(source.NewFile(args[0]), cs, policy).Load(cmd.Context()); err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	conn, err := db.Init(target)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	st := store.NewSQLiteStore(conn)
	defer st.Close()

	records := cs.Records()
	if err := st.ReplaceLanguages(cmd.Context(), records); err != nil {
		return fmt.Errorf("failed to import records: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d languages into %s\n", len(records), target)
	return nil
}
