package main

import (
	"github.com/spf13/cobra"

	"github.com/vertti/deploycheck/pkg/filecheck"
)

var (
	fileDir      bool
	fileOptional bool
	fileWritable bool
	fileNotEmpty bool
	filePrefix   string
	fileContains string
	fileHead     int64
)

var fileCmd = &cobra.Command{
	Use:   "file <path>",
	Short: "Check that a file or directory exists under --root and meets requirements",
	Args:  cobra.ExactArgs(1),
	RunE:  runFileCheck,
}

func init() {
	fileCmd.Flags().BoolVar(&fileDir, "dir", false, "expect a directory")
	fileCmd.Flags().BoolVar(&fileOptional, "optional", false, "warn instead of failing when missing")
	fileCmd.Flags().BoolVar(&fileWritable, "writable", false, "check write permission")
	fileCmd.Flags().BoolVar(&fileNotEmpty, "not-empty", false, "file must have size > 0")
	fileCmd.Flags().StringVar(&filePrefix, "prefix", "", "content must start with this literal string")
	fileCmd.Flags().StringVar(&fileContains, "contains", "", "literal string to search in content")
	fileCmd.Flags().Int64Var(&fileHead, "head", 0, "limit content read to first N bytes")
	rootCmd.AddCommand(fileCmd)
}

func runFileCheck(cmd *cobra.Command, args []string) error {
	c := &filecheck.Check{
		Path:      args[0],
		Required:  !fileOptional,
		ExpectDir: fileDir,
		Writable:  fileWritable,
		NotEmpty:  fileNotEmpty,
		Prefix:    filePrefix,
		Contains:  fileContains,
		Head:      fileHead,
		FS:        &filecheck.RealFileSystem{},
	}

	return runCheck(cmd, c)
}
