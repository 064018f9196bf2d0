package suite

import (
	"fmt"

	"github.com/vertti/deploycheck/pkg/cachecheck"
	"github.com/vertti/deploycheck/pkg/check"
	"github.com/vertti/deploycheck/pkg/composercheck"
	"github.com/vertti/deploycheck/pkg/config"
	"github.com/vertti/deploycheck/pkg/envcheck"
	"github.com/vertti/deploycheck/pkg/filecheck"
	"github.com/vertti/deploycheck/pkg/phpcheck"
	"github.com/vertti/deploycheck/pkg/registrycheck"
)

// Build maps each spec to a definition backed by the real filesystem.
func Build(specs []config.CheckSpec) ([]check.Definition, error) {
	defs := make([]check.Definition, 0, len(specs))
	for i, spec := range specs {
		c, err := Checker(spec)
		if err != nil {
			return nil, fmt.Errorf("check %d (%q): %w", i, spec.Name, err)
		}
		defs = append(defs, check.Definition{Name: spec.Name, Checker: c})
	}
	return defs, nil
}

// Checker returns the checker for a single spec.
func Checker(spec config.CheckSpec) (check.Checker, error) {
	switch spec.Kind {
	case config.KindFile, config.KindDir:
		return &filecheck.Check{
			Path:      spec.Path,
			Required:  spec.Required,
			ExpectDir: spec.Kind == config.KindDir,
			Writable:  spec.Writable,
			NotEmpty:  spec.NotEmpty,
			Prefix:    spec.Prefix,
			Contains:  spec.Contains,
			FS:        &filecheck.RealFileSystem{},
		}, nil
	case config.KindEnv:
		return &envcheck.Check{
			Key:               spec.Key,
			File:              spec.Path,
			FallbackToProcess: spec.FallbackToProcess,
			AllowEmpty:        spec.AllowEmpty,
			MinLen:            spec.MinLen,
			HideValue:         spec.Hide,
			MaskValue:         spec.Mask,
			Opener:            &envcheck.RealFileOpener{},
		}, nil
	case config.KindRegistry:
		return &registrycheck.Check{
			File:     spec.Path,
			Symbols:  spec.Symbols,
			JSONPath: spec.JSONPath,
			FS:       &registrycheck.RealFileSystem{},
		}, nil
	case config.KindCache:
		return &cachecheck.Check{
			Path:    spec.Path,
			Sources: spec.Sources,
			FS:      &cachecheck.RealFileSystem{},
		}, nil
	case config.KindComposer:
		return &composercheck.Check{
			Package:    spec.Package,
			Constraint: spec.Constraint,
			LockFile:   spec.Path,
			Required:   spec.Required,
			FS:         &composercheck.RealFileSystem{},
		}, nil
	case config.KindPHP:
		return &phpcheck.Check{
			Binary:     spec.Binary,
			Constraint: spec.Constraint,
			Extensions: spec.Extensions,
			Runner:     &phpcheck.RealCmdRunner{},
		}, nil
	default:
		return nil, fmt.Errorf("unknown check kind %q", spec.Kind)
	}
}
