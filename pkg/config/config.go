// Package config loads the deploycheck configuration: which deployment to
// inspect, how to render results and which checks to run.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix selects environment variables that override file settings.
// A double underscore separates nested keys: DEPLOYCHECK_LOG__LEVEL -> log.level.
const EnvPrefix = "DEPLOYCHECK_"

// Check kinds understood by the suite builder.
const (
	KindFile     = "file"
	KindDir      = "dir"
	KindEnv      = "env"
	KindRegistry = "registry"
	KindCache    = "cache"
	KindComposer = "composer"
	KindPHP      = "php"
)

// Config is the root configuration.
type Config struct {
	Root       string      `json:"root"`
	Format     string      `json:"format" validate:"oneof=text json html"`
	FailOnWarn bool        `json:"fail_on_warn"`
	Log        LogConfig   `json:"log"`
	Checks     []CheckSpec `json:"checks" validate:"dive"`
}

// LogConfig controls diagnostic logging (not the report itself).
type LogConfig struct {
	Level string `json:"level" validate:"oneof=trace debug info warn warning error"`
	File  string `json:"file"`
}

// CheckSpec describes one check. Which fields apply depends on Kind.
type CheckSpec struct {
	Name string `json:"name" validate:"required"`
	Kind string `json:"kind" validate:"required,oneof=file dir env registry cache composer php"`
	Path string `json:"path"`

	// file, dir
	Required bool   `json:"required"`
	Writable bool   `json:"writable"`
	NotEmpty bool   `json:"not_empty"`
	Prefix   string `json:"prefix"`
	Contains string `json:"contains"`

	// env
	Key               string `json:"key"`
	MinLen            int    `json:"min_len" validate:"gte=0"`
	AllowEmpty        bool   `json:"allow_empty"`
	Mask              bool   `json:"mask"`
	Hide              bool   `json:"hide"`
	FallbackToProcess bool   `json:"fallback_to_process"`

	// registry
	Symbols  []string `json:"symbols"`
	JSONPath string   `json:"json_path"`

	// cache
	Sources []string `json:"sources"`

	// composer, php
	Package    string `json:"package"`
	Constraint string `json:"constraint"`

	// php
	Binary     string   `json:"binary"`
	Extensions []string `json:"extensions"`
}

// Default returns the configuration used when nothing else is specified.
func Default() Config {
	return Config{
		Root:   ".",
		Format: "text",
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds a Config from defaults, the JSON file at path (skipped when
// path is empty) and DEPLOYCHECK_* environment variables, in that order of
// increasing priority. A relative root is resolved against the file's directory.
func Load(path string) (*Config, error) {
	return LoadWithDefaults(path, Default())
}

// LoadWithDefaults is Load with caller-supplied defaults as the lowest layer.
// Environment variables that do not name a known setting are ignored.
func LoadWithDefaults(path string, defaults Config) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults, "json"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	known := k.All()

	if path != "" {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file %q not found: %w", path, err)
		}
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %q: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
		if _, ok := known[key]; !ok {
			return ""
		}
		return key
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	var cfg Config
	err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			ErrorUnused:      true,
			WeaklyTypedInput: true,
			Result:           &cfg,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if path != "" && !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(filepath.Dir(path), cfg.Root)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			result = multierror.Append(result, fmt.Errorf("%s: failed %q validation (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
	}

	for i, spec := range c.Checks {
		if err := spec.validateKind(); err != nil {
			result = multierror.Append(result, fmt.Errorf("checks[%d] %q: %w", i, spec.Name, err))
		}
	}

	return result.ErrorOrNil()
}

func (s CheckSpec) validateKind() error {
	switch s.Kind {
	case KindFile, KindDir, KindCache:
		if s.Path == "" {
			return fmt.Errorf("%s check requires path", s.Kind)
		}
	case KindEnv:
		if s.Key == "" {
			return errors.New("env check requires key")
		}
	case KindRegistry:
		if s.Path == "" || len(s.Symbols) == 0 {
			return errors.New("registry check requires path and symbols")
		}
	case KindComposer:
		if s.Package == "" {
			return errors.New("composer check requires package")
		}
	case KindPHP:
		if s.Constraint == "" && len(s.Extensions) == 0 {
			return errors.New("php check requires constraint or extensions")
		}
	}
	return nil
}
