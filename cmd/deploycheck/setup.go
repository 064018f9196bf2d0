package main

import (
	"errors"
	"io"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vertti/deploycheck/pkg/config"
	applog "github.com/vertti/deploycheck/pkg/log"
	"github.com/vertti/deploycheck/pkg/runner"
	"github.com/vertti/deploycheck/pkg/suite"
)

var (
	configFile    string
	format        string
	failOnWarn    bool
	phpConstraint string
)

// addConfigFlags registers the flags shared by run, list and serve.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "path to "+config.DefaultFilename+" (default: search up from --root)")
	cmd.Flags().BoolVar(&failOnWarn, "fail-on-warn", false, "treat warnings as failures")
	cmd.Flags().StringVar(&phpConstraint, "php", "", "also check the PHP runtime against this version constraint (e.g. \">=8.1\")")
}

// loadConfig resolves the config file, loads it and applies flag overrides.
// Flags win over the environment, which wins over the file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := config.FindFile(rootDir, configFile)
	if errors.Is(err, config.ErrNotFound) {
		path = ""
	} else if err != nil {
		return nil, err
	}

	defaults := config.Default()
	defaults.Root = rootDir
	cfg, err := config.LoadWithDefaults(path, defaults)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Root = rootDir
	}
	if flags.Lookup("format") != nil && flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Lookup("fail-on-warn") != nil && flags.Changed("fail-on-warn") {
		cfg.FailOnWarn = failOnWarn
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, out io.Writer) (*logrus.Logger, io.Closer, error) {
	return applog.New(applog.Options{
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
		Out:   out,
	})
}

// checkSpecs returns the configured checks, or the Laravel suite when the
// config lists none, plus the runtime check requested with --php.
func checkSpecs(cfg *config.Config) []config.CheckSpec {
	specs := cfg.Checks
	if len(specs) == 0 {
		specs = suite.Laravel()
	}
	if phpConstraint != "" {
		specs = append(slices.Clone(specs), suite.PHP(phpConstraint))
	}
	return specs
}

func newRunner(cfg *config.Config, logger logrus.FieldLogger) (*runner.Runner, error) {
	defs, err := suite.Build(checkSpecs(cfg))
	if err != nil {
		return nil, err
	}

	r := runner.New(runner.WithLogger(logger))
	if err := r.RegisterAll(defs...); err != nil {
		return nil, err
	}
	return r, nil
}
