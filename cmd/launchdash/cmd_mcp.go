package main

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	mcpserver "launchdash/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the chart tools over MCP on stdio",
	Long: `Starts an MCP server over stdin/stdout exposing list_sites,
proportion_chart and correlation_chart. Logs go to stderr.

The server exits when its parent process goes away.`,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, _ []string) error {
	ds, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}
	srv := mcpserver.NewServer(mcpserver.Config{
		Dataset: ds,
		Sites:   cfg.Sites,
		Payload: cfg.Payload.Bounds(),
		Version: version,
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	mcpserver.WatchParent(ctx, cancel)

	return srv.Run(ctx, &sdkmcp.StdioTransport{})
}
