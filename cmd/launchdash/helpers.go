package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"launchdash/internal/format"
	"launchdash/internal/launch"
	"launchdash/internal/logging"
)

// loadDataset reads every configured source into one dataset.
func loadDataset(ctx context.Context) (*launch.Dataset, error) {
	ds, err := launch.LoadAll(ctx, cfg.Sources)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	if ds.Len() == 0 {
		logging.New("cli").Warn("dataset has no records", "sources", len(cfg.Sources))
	}
	return ds, nil
}

// addOutputFlag registers --output/-o on cmd.
func addOutputFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "output", "o", "table", "Output format: table, markdown or csv")
}

func writeTable(cmd *cobra.Command, tb format.TableBuilder) {
	out := tb.String()
	fmt.Fprint(cmd.OutOrStdout(), out)
	if len(out) > 0 && out[len(out)-1] != '\n' {
		fmt.Fprintln(cmd.OutOrStdout())
	}
}
