package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"launchdash/internal/launch"
	"launchdash/internal/logging"
)

var importFlags struct {
	out string
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy the configured dataset into a SQLite database",
	Long: `Load every configured source and write the combined records to a SQLite
database. An existing launches table is replaced. The result can be served
with --data <file>.db.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFlags.out, "out", "", "Destination SQLite file (required)")
}

func runImport(cmd *cobra.Command, _ []string) error {
	if importFlags.out == "" {
		return errors.New("--out is required")
	}
	ds, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}
	stored, err := launch.SaveSQLite(cmd.Context(), importFlags.out, ds.Records())
	if err != nil {
		return err
	}
	logging.New("cli").Info("dataset imported", "path", importFlags.out, "records", ds.Len(), "stored", stored)
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records into %s\n", stored, importFlags.out)
	return nil
}
