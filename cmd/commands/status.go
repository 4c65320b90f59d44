package commands

import (
	"context"
	"fmt"
	"net/url"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/tasklist/internal/config"
	"github.com/dohr-michael/tasklist/internal/heartbeat"
)

// NewStatusCommand returns the status subcommand.
func NewStatusCommand() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show the store in use and whether a web server is running",
		Action: runStatus,
	}
}

func runStatus(ctx context.Context, cmd *cli.Command) error {
	a, err := openApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.Root().Writer
	store := a.Config.Store
	fmt.Fprintf(out, "Store:  %s %s (key %q, %d tasks)\n", store.Backend, storeLocation(store), store.Key, a.Controller.Len())

	status, hb, err := heartbeat.Check(config.HeartbeatPath(), 2*heartbeat.DefaultInterval)
	if err != nil {
		return fmt.Errorf("check heartbeat: %w", err)
	}
	switch status {
	case heartbeat.StatusAlive:
		fmt.Fprintf(out, "Server: ALIVE on %s (PID %d, uptime %s)\n", hb.Addr, hb.PID, hb.Uptime())
	case heartbeat.StatusStale:
		fmt.Fprintf(out, "Server: STALE on %s (PID %d, last heartbeat %s)\n",
			hb.Addr, hb.PID, hb.Timestamp.Format("2006-01-02 15:04:05"))
	case heartbeat.StatusDead:
		fmt.Fprintln(out, "Server: NOT RUNNING")
	}
	return nil
}

// storeLocation describes where the tasks live, without credentials.
func storeLocation(store config.StoreConfig) string {
	switch store.Backend {
	case config.BackendMemory:
		return "(in memory)"
	case config.BackendRedis:
		u, err := url.Parse(store.RedisURL)
		if err != nil {
			return "(unparsable redis url)"
		}
		return u.Redacted()
	default:
		return store.Path
	}
}
