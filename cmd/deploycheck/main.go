package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// commands that are not rewritten to "run"
var knownSubcommands = []string{
	"run", "list", "serve", "file", "env", "cache", "php",
	"help", "completion", "--help", "-h", "--version", "-v",
	cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd,
}

func main() {
	os.Args = withDefaultCommand(os.Args)

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, ErrCheckFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// global flags that consume the next argument when not written as --flag=value
var valueFlags = []string{"--root", "--log-level", "--log-file"}

// withDefaultCommand inserts "run" when no subcommand was given, so that
// `deploycheck --root /srv/app` behaves like `deploycheck run --root /srv/app`.
// Leading global flags are skipped when looking for a subcommand.
func withDefaultCommand(args []string) []string {
	for i := 1; i < len(args); i++ {
		arg := args[i]
		if slices.Contains(knownSubcommands, arg) {
			return args
		}
		if arg == "--" || !strings.HasPrefix(arg, "-") {
			break
		}
		if slices.Contains(valueFlags, arg) {
			i++
		}
	}
	out := make([]string, 0, len(args)+1)
	out = append(out, args[0], "run")
	if len(args) > 1 {
		out = append(out, args[1:]...)
	}
	return out
}

var rootCmd = &cobra.Command{
	Use:           "deploycheck",
	Short:         "Health checks for a deployed web application",
	Long:          "Deploycheck inspects a deployed application directory (a Laravel app by default) and reports what is missing, misconfigured or stale.",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	rootDir  string
	logLevel string
	logFile  string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", ".", "deployment root directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this file (rotated)")
}
