package main

import (
	"github.com/spf13/cobra"

	"launchdash/internal/chart"
	"launchdash/internal/format"
)

var sitesFlags struct {
	output string
}

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List the launch-site dropdown options",
	RunE:  runSites,
}

func init() {
	addOutputFlag(sitesCmd, &sitesFlags.output)
}

func runSites(cmd *cobra.Command, _ []string) error {
	mode, err := format.ParseMode(sitesFlags.output)
	if err != nil {
		return err
	}
	ds, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}

	tb := format.NewTable(mode)
	tb.Title("Launch Sites")
	tb.Header("Value", "Label")
	for _, o := range cfg.Sites.SiteOptions(ds.Sites(), chart.AllSites) {
		tb.Row(o.Value, o.Label)
	}
	writeTable(cmd, tb)
	return nil
}
