package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vertti/deploycheck/pkg/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report over HTTP",
	Long: `Serve the report over HTTP. Every request runs the checks again.

Routes:
  GET /             HTML report
  GET /report.json  JSON report
  GET /healthz      summary; 200 when healthy, 503 otherwise`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	addConfigFlags(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closer.Close()

	r, err := newRunner(cfg, logger)
	if err != nil {
		return err
	}

	d, err := deploymentAt(cfg.Root)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := server.New(server.NewHandler(r, d, cfg.FailOnWarn), logger)
	return server.Serve(ctx, e, serveAddr, logger)
}
