// launchdash serves an interactive dashboard over SpaceX launch records:
// a launch-site dropdown and a payload range control driving a success
// proportion chart and a payload/outcome correlation chart.
//
// Usage:
//
//	launchdash serve   --data launches.csv [--listen 127.0.0.1:8050]
//	launchdash summary --data launches.csv [--output table|markdown|csv]
//	launchdash sites   --data launches.csv
//	launchdash mcp     --data launches.csv
//	launchdash import  --data launches.csv --out launches.db
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"launchdash/internal/config"
	"launchdash/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	data       []string
	logLevel   string
	logFormat  string
}

// cfg is the resolved configuration; set before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "launchdash",
	Short: "Interactive dashboard for SpaceX launch records",
	Long: `launchdash loads launch records (CSV, Parquet, SQLite or a ClickHouse table) and
serves a dashboard relating launch sites, payload mass and mission outcome.

Settings come from --config (YAML or JSON), then LAUNCHDASH_* environment
variables, then flags.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&rootFlags.configPath, "config", "c", "", "Config file (YAML or JSON)")
	pf.StringSliceVarP(&rootFlags.data, "data", "d", nil, "Dataset file(s): .csv, .parquet or .db; CSV and Parquet may be .gz/.zst compressed")
	pf.StringVar(&rootFlags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&rootFlags.logFormat, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(sitesCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.Version = version
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	c := config.Default()
	if rootFlags.configPath != "" {
		loaded, err := config.LoadFromPath(rootFlags.configPath)
		if err != nil {
			return err
		}
		c = loaded
	}
	c.ApplyEnv(os.LookupEnv)
	if len(rootFlags.data) > 0 {
		c.Sources = config.PathSources(rootFlags.data)
	}
	if rootFlags.logLevel != "" {
		c.Log.Level = rootFlags.logLevel
	}
	if rootFlags.logFormat != "" {
		c.Log.Format = rootFlags.logFormat
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	level, _ := logging.ParseLevel(c.Log.Level)
	logging.Init(level, c.Log.Format, cmd.ErrOrStderr())
	cfg = c
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "launchdash:", err)
		os.Exit(1)
	}
}
