package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"launchdash/internal/dashboard"
)

var serveFlags struct {
	listen string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the launch dashboard over HTTP",
	Long: `Serves the dashboard page, chart fragments, a JSON API, a WebSocket
update channel and Prometheus metrics. Stops gracefully on SIGINT/SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveFlags.listen, "listen", "l", "", "Listen address (overrides config and LAUNCHDASH_LISTEN)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ds, err := loadDataset(ctx)
	if err != nil {
		return err
	}

	listen := cfg.Listen
	if serveFlags.listen != "" {
		listen = serveFlags.listen
	}
	srv := dashboard.NewServer(dashboard.Config{
		Listen:  listen,
		Dataset: ds,
		Sites:   cfg.Sites,
		Payload: cfg.Payload,
	})
	return srv.Start(ctx)
}
