package main

import (
	"github.com/spf13/cobra"

	"launchdash/internal/display"
	"launchdash/internal/format"
	"launchdash/internal/launch"
)

var summaryFlags struct {
	output string
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print launch and success counts per site",
	RunE:  runSummary,
}

func init() {
	addOutputFlag(summaryCmd, &summaryFlags.output)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	mode, err := format.ParseMode(summaryFlags.output)
	if err != nil {
		return err
	}
	ds, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}

	tb := format.NewTable(mode)
	tb.Title("Launch Records by Site")
	tb.Header("Site", "Name", "Launches", "Successes", "Failures", "Success Rate", "Payload Range")
	tb.Columns(
		format.ColumnConfig{Number: 2, MaxWidth: 40},
		format.ColumnConfig{Number: 3, Align: format.AlignRight},
		format.ColumnConfig{Number: 4, Align: format.AlignRight},
		format.ColumnConfig{Number: 5, Align: format.AlignRight},
		format.ColumnConfig{Number: 6, Align: format.AlignRight},
	)

	var total launch.SiteSummary
	for _, s := range launch.Summarize(ds) {
		tb.Row(s.Site, cfg.Sites.Name(s.Site), s.Launches, s.Successes, s.Failures(),
			display.Percent(s.SuccessRate()),
			display.Mass(s.MinPayload)+" - "+display.Mass(s.MaxPayload))
		total.Launches += s.Launches
		total.Successes += s.Successes
	}
	tb.Footer("Total", "", total.Launches, total.Successes, total.Failures(), display.Percent(total.SuccessRate()), "")

	writeTable(cmd, tb)
	return nil
}
