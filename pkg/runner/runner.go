// Package runner executes registered checks against a deployment in
// registration order and aggregates their results.
package runner

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vertti/deploycheck/pkg/check"
)

// ErrDuplicateCheck is matched by errors.Is for every *DuplicateCheckError.
var ErrDuplicateCheck = errors.New("duplicate check")

// DuplicateCheckError is returned by Register when the name is already taken.
type DuplicateCheckError struct {
	Name string
}

func (e *DuplicateCheckError) Error() string {
	return fmt.Sprintf("duplicate check %q", e.Name)
}

// Is reports whether target is ErrDuplicateCheck.
func (e *DuplicateCheckError) Is(target error) bool {
	return target == ErrDuplicateCheck
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for per-check debug output.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Runner) {
		r.log = l
	}
}

// Runner holds an ordered set of check definitions.
type Runner struct {
	defs  []check.Definition
	names map[string]struct{}
	log   logrus.FieldLogger
}

// New returns an empty Runner.
func New(opts ...Option) *Runner {
	r := &Runner{
		names: make(map[string]struct{}),
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register appends def to the run list.
func (r *Runner) Register(def check.Definition) error {
	if def.Name == "" {
		return errors.New("check name is required")
	}
	if def.Checker == nil {
		return fmt.Errorf("check %q has no checker", def.Name)
	}
	if _, ok := r.names[def.Name]; ok {
		return &DuplicateCheckError{Name: def.Name}
	}
	r.names[def.Name] = struct{}{}
	r.defs = append(r.defs, def)
	return nil
}

// RegisterAll registers defs in order, stopping at the first error.
func (r *Runner) RegisterAll(defs ...check.Definition) error {
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// Definitions returns the registered checks in order.
func (r *Runner) Definitions() []check.Definition {
	out := make([]check.Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Len returns the number of registered checks.
func (r *Runner) Len() int {
	return len(r.defs)
}

// Run executes every registered check against d and returns one result per
// check, in registration order. A failing or panicking check never stops the run.
func (r *Runner) Run(d check.Deployment) []check.Result {
	results := make([]check.Result, 0, len(r.defs))
	for _, def := range r.defs {
		start := time.Now()
		result := r.runOne(def, d)
		r.log.WithFields(logrus.Fields{
			"check":    def.Name,
			"status":   result.Status,
			"duration": time.Since(start),
		}).Debug("check finished")
		results = append(results, result)
	}
	return results
}

func (r *Runner) runOne(def check.Definition, d check.Deployment) (result check.Result) {
	defer func() {
		if p := recover(); p != nil {
			r.log.WithFields(logrus.Fields{
				"check": def.Name,
				"panic": p,
			}).Error("check panicked")
			result = check.Result{Name: def.Name}
			result.AddDetailf("panic: %v", p)
			result.Fail(check.KindInternal, "check panicked", fmt.Errorf("check %q panicked: %v", def.Name, p))
		}
	}()

	result = def.Checker.Run(d)
	result.Name = def.Name
	if result.Status == "" {
		result.Fail(check.KindInternal, "check returned no status", nil)
	}
	return result
}
