package main

import (
	"github.com/spf13/cobra"

	"github.com/vertti/deploycheck/pkg/cachecheck"
)

var cacheSources []string

var cacheCmd = &cobra.Command{
	Use:   "cache <path>",
	Short: "Report whether a cached artifact exists and what it is older than",
	Long: `Report whether a cached artifact exists under --root. A present
artifact is a warning: it shadows changes to its sources until cleared.

Examples:
  deploycheck cache bootstrap/cache/config.php --source config
  deploycheck cache bootstrap/cache/routes-v7.php --source routes`,
	Args: cobra.ExactArgs(1),
	RunE: runCacheCheck,
}

func init() {
	cacheCmd.Flags().StringSliceVar(&cacheSources, "source", nil, "source file or directory the artifact is built from (repeatable)")
	rootCmd.AddCommand(cacheCmd)
}

func runCacheCheck(cmd *cobra.Command, args []string) error {
	c := &cachecheck.Check{
		Path:    args[0],
		Sources: cacheSources,
		FS:      &cachecheck.RealFileSystem{},
	}

	return runCheck(cmd, c)
}
