package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vertti/deploycheck/pkg/output"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run all configured checks (default command)",
	Args:  cobra.NoArgs,
	RunE:  runRun,
}

func init() {
	addConfigFlags(runCmd)
	runCmd.Flags().StringVar(&format, "format", output.FormatText, "output format: text, json or html")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
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

	logger.WithField("root", d.Root).WithField("checks", r.Len()).Debug("running checks")
	report := output.NewReport(d.Root, r.Run(d), time.Now())

	if err := output.Render(cmd.OutOrStdout(), cfg.Format, report); err != nil {
		return err
	}
	return exitStatus(report.Summary.Summary, cfg.FailOnWarn)
}
