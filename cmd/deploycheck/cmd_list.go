package main

import (
	"fmt"
	"strings"

	"github.com/ryanuber/columnize"
	"github.com/spf13/cobra"

	"github.com/vertti/deploycheck/pkg/config"
	"github.com/vertti/deploycheck/pkg/suite"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the checks that run would execute, in order",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	addConfigFlags(listCmd)
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	specs := checkSpecs(cfg)
	if _, err := suite.Build(specs); err != nil {
		return err
	}

	lines := []string{"Name|Kind|Target"}
	for _, s := range specs {
		target := s.Path
		switch {
		case s.Key != "":
			target = s.Key + " in " + s.Path
		case s.Package != "":
			target = s.Package
		case s.Kind == config.KindPHP:
			target = s.Constraint
		}
		lines = append(lines, strings.Join([]string{s.Name, s.Kind, target}, "|"))
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), columnize.SimpleFormat(lines))
	return err
}
