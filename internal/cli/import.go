package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phanxgames/famexplorer/internal/source"
)

// DefaultStore is where import writes when no profiles_db is configured.
const DefaultStore = "famexplorer.db"

// NewImportCommand creates the import command.
func NewImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <profiles.json>",
		Short: "Import a JSON profile file into a SQLite store",
		Long: `Replace the contents of the SQLite profile store with a JSON profile file.
The store is the configured profiles_db, or famexplorer.db.`,
		Example: `  famexplorer import fam.json --profiles-db fam.db
  famexplorer run --profiles-db fam.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0])
		},
	}
}

func runImport(cmd *cobra.Command, path string) error {
	cfg := GetConfig(cmd.Context())
	logger := GetLogger(cmd.Context())
	target := cfg.ProfilesDB
	if target == "" {
		target = DefaultStore
	}

	profiles, err := source.LoadProfiles(path)
	if err != nil {
		return err
	}
	store, err := source.OpenStore(cmd.Context(), target)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	n, err := store.Import(cmd.Context(), profiles)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	if skipped := len(profiles) - n; skipped > 0 {
		logger.Warn("skipped profiles without a handle", zap.Int("count", skipped))
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %s profiles into %s\n", humanize.Comma(int64(n)), target)
	return nil
}
