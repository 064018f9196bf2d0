package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vertti/deploycheck/pkg/check"
	"github.com/vertti/deploycheck/pkg/output"
	"github.com/vertti/deploycheck/pkg/runner"
)

// ErrCheckFailed is returned when a check fails.
var ErrCheckFailed = errors.New("check failed")

// runCheck executes a single ad-hoc check against --root, prints the result,
// and returns an error if it failed. The returned error causes exit code 1.
func runCheck(cmd *cobra.Command, c check.Checker) error {
	d, err := deployment()
	if err != nil {
		return err
	}

	result := c.Run(d)
	if err := output.PrintResult(cmd.OutOrStdout(), result); err != nil {
		return err
	}

	if result.Failed() {
		return ErrCheckFailed
	}
	return nil
}

// exitStatus maps a summary to the command's error.
func exitStatus(s runner.Summary, failOnWarn bool) error {
	if s.Fail > 0 {
		return fmt.Errorf("%w: %d failed", ErrCheckFailed, s.Fail)
	}
	if failOnWarn && s.Warn > 0 {
		return fmt.Errorf("%w: %d warnings", ErrCheckFailed, s.Warn)
	}
	return nil
}

func deploymentAt(root string) (check.Deployment, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return check.Deployment{}, fmt.Errorf("failed to resolve root %q: %w", root, err)
	}
	return check.NewDeployment(abs, check.EnvFromOS()), nil
}

func deployment() (check.Deployment, error) {
	return deploymentAt(rootDir)
}
