package mcp

import (
	"context"
	"os"
	"time"

	"launchdash/internal/logging"
)

// parentPollInterval is how often WatchParent checks the parent PID.
var parentPollInterval = 2 * time.Second

// WatchParent cancels the server when the launching process goes away, so
// an orphaned stdio server does not linger after its client exits.
//
// It must not read stdin: the SDK's StdioTransport owns it, and stray reads
// would corrupt the JSON-RPC stream.
func WatchParent(ctx context.Context, cancel context.CancelFunc) {
	ppid := os.Getppid()
	go func() {
		ticker := time.NewTicker(parentPollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if os.Getppid() != ppid {
					logging.New("mcp").Warn("parent process exited, shutting down", "ppid", ppid)
					cancel()
					return
				}
			}
		}
	}()
}
