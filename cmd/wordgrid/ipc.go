package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"wordgrid/internal/ipc"
)

func newIPCCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ipc",
		Short: "Serve msgpack requests on stdin/stdout",
		Long:  "Reads one msgpack request per frame from stdin and writes one response per frame to stdout. Logs go to stderr or the configured log file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g, cmd.Flags())
			if err != nil {
				return err
			}
			log, closer, err := newLogger(cfg, os.Stderr)
			if err != nil {
				return err
			}
			defer closer.Close()

			eng, err := newEngine(cfg, log)
			if err != nil {
				return err
			}
			defer eng.Close()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := ipc.NewServer(eng.mgr, cmd.InOrStdin(), cmd.OutOrStdout(),
				ipc.WithLogger(log),
				ipc.WithTimeout(time.Duration(cfg.APITimeoutSeconds)*time.Second),
			)
			return srv.Serve(ctx)
		},
	}
}
