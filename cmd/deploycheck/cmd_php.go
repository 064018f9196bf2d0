package main

import (
	"github.com/spf13/cobra"

	"github.com/vertti/deploycheck/pkg/phpcheck"
	"github.com/vertti/deploycheck/pkg/suite"
)

var (
	phpBinary     string
	phpVersion    string
	phpExtensions []string
)

var phpCmd = &cobra.Command{
	Use:   "php",
	Short: "Check the PHP version and loaded extensions",
	Long: `Check the PHP version and loaded extensions. Without --ext the
extensions Laravel requires are checked.

Examples:
  deploycheck php --version-constraint ">=8.1"
  deploycheck php --binary php8.2 --ext mbstring,pdo_mysql`,
	Args: cobra.NoArgs,
	RunE: runPHPCheck,
}

func init() {
	phpCmd.Flags().StringVar(&phpBinary, "binary", phpcheck.DefaultBinary, "php executable")
	phpCmd.Flags().StringVar(&phpVersion, "version-constraint", "", "semver constraint the PHP version must satisfy")
	phpCmd.Flags().StringSliceVar(&phpExtensions, "ext", nil, "required extensions (comma-separated)")
	rootCmd.AddCommand(phpCmd)
}

func runPHPCheck(cmd *cobra.Command, _ []string) error {
	extensions := phpExtensions
	if len(extensions) == 0 {
		extensions = suite.LaravelExtensions
	}

	c := &phpcheck.Check{
		Binary:     phpBinary,
		Constraint: phpVersion,
		Extensions: extensions,
		Runner:     &phpcheck.RealCmdRunner{},
	}

	return runCheck(cmd, c)
}
