package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/tasklist/internal/config"
	"github.com/dohr-michael/tasklist/internal/heartbeat"
	"github.com/dohr-michael/tasklist/internal/web"
)

// NewServeCommand returns the serve subcommand.
func NewServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the task list over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to listen on",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on (0 picks a free port)",
			},
		},
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	a, err := openApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := a.Config
	// CLI flags override config
	if cmd.IsSet("host") {
		cfg.Web.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Web.Port = cmd.Int("port")
	}

	server := web.NewServer(a.Controller, cfg.Web.Host, cfg.Web.Port)

	// Bind first so a busy port never leaves a heartbeat behind.
	ln, err := server.Listen()
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(ln)
	}()

	// The heartbeat file is removed before runServe returns.
	beat := heartbeat.NewWriter(config.HeartbeatPath(), ln.Addr().String(), cfg.Store.Backend, heartbeat.DefaultInterval)
	beatCtx, stopBeat := context.WithCancel(ctx)
	beatDone := make(chan struct{})
	go func() {
		defer close(beatDone)
		if err := beat.Run(beatCtx); err != nil {
			slog.Warn("heartbeat disabled", "error", err)
		}
	}()
	defer func() {
		stopBeat()
		<-beatDone
	}()

	// Wait for signal or error
	select {
	case <-ctx.Done():
		slog.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
