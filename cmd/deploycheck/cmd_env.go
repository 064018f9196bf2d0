package main

import (
	"github.com/spf13/cobra"

	"github.com/vertti/deploycheck/pkg/envcheck"
)

var (
	envFile       string
	envFallback   bool
	envAllowEmpty bool
	envMinLen     int
	envHideValue  bool
	envMaskValue  bool
)

var envCmd = &cobra.Command{
	Use:   "env <variable>",
	Short: "Check that a variable is set in an env file under --root",
	Args:  cobra.ExactArgs(1),
	RunE:  runEnvCheck,
}

func init() {
	envCmd.Flags().StringVar(&envFile, "file", ".env", "env file relative to --root (empty: process environment)")
	envCmd.Flags().BoolVar(&envFallback, "fallback", false, "also look in the process environment")
	envCmd.Flags().BoolVar(&envAllowEmpty, "allow-empty", false, "pass if defined but empty")
	envCmd.Flags().IntVar(&envMinLen, "min-len", 0, "minimum value length in bytes")
	envCmd.Flags().BoolVar(&envHideValue, "hide-value", false, "don't show value in output")
	envCmd.Flags().BoolVar(&envMaskValue, "mask-value", false, "show masked value (first/last 3 chars)")
	rootCmd.AddCommand(envCmd)
}

func runEnvCheck(cmd *cobra.Command, args []string) error {
	c := &envcheck.Check{
		Key:               args[0],
		File:              envFile,
		FallbackToProcess: envFallback,
		AllowEmpty:        envAllowEmpty,
		MinLen:            envMinLen,
		HideValue:         envHideValue,
		MaskValue:         envMaskValue,
		Opener:            &envcheck.RealFileOpener{},
	}

	return runCheck(cmd, c)
}
