// Package phpcheck inspects the PHP runtime that serves the deployment:
// its version and the extensions it has loaded.
package phpcheck

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/vertti/deploycheck/pkg/check"
)

// DefaultBinary is used when Check.Binary is empty.
const DefaultBinary = "php"

// DefaultTimeout bounds each php invocation.
const DefaultTimeout = 10 * time.Second

// Check verifies the PHP version and loaded extensions.
type Check struct {
	Binary     string        // php executable (default "php")
	Constraint string        // optional semver constraint, e.g. ">=8.1"
	Extensions []string      // extensions that must be loaded
	Timeout    time.Duration // per command (default 10s)
	Runner     CmdRunner     // injected for testing
}

// Run executes the runtime check.
func (c *Check) Run(_ check.Deployment) check.Result {
	binary := c.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	result := check.Result{
		Name: fmt.Sprintf("php: %s", binary),
	}

	runner := c.Runner
	if runner == nil {
		runner = &RealCmdRunner{}
	}

	var constraint *semver.Constraints
	if c.Constraint != "" {
		var err error
		constraint, err = semver.NewConstraint(c.Constraint)
		if err != nil {
			return result.Failf(check.KindInvalidValue, "invalid constraint %q: %v", c.Constraint, err)
		}
	}

	path, err := runner.LookPath(binary)
	if err != nil {
		return result.Fail(check.KindMissingResource, fmt.Sprintf("%s not found in PATH", binary), err)
	}
	result.AddDetailf("path: %s", path)

	raw, err := c.run(runner, path, "-r", "echo PHP_VERSION;")
	if err != nil {
		return result.Fail(check.KindInternal, fmt.Sprintf("failed to get version: %v", err), err)
	}
	raw = strings.TrimSpace(raw)
	result.AddDetailf("version: %s", raw)

	if len(c.Extensions) > 0 {
		modules, err := c.run(runner, path, "-m")
		if err != nil {
			return result.Fail(check.KindInternal, fmt.Sprintf("failed to list extensions: %v", err), err)
		}
		if missing := c.checkExtensions(parseModules(modules), &result); len(missing) > 0 {
			return result.Fail(check.KindMissingResource,
				fmt.Sprintf("%d of %d extensions missing", len(missing), len(c.Extensions)),
				fmt.Errorf("missing extensions: %s", strings.Join(missing, ", ")))
		}
	}

	if constraint == nil {
		return result.Pass(fmt.Sprintf("PHP %s", raw))
	}

	// Distribution builds append a package revision (8.1.2-1ubuntu2.14).
	core, _, _ := strings.Cut(raw, "-")
	v, err := semver.NewVersion(core)
	if err != nil {
		return result.Warnf(check.KindInvalidValue, "PHP version %q is not a semantic version, cannot check %q", raw, c.Constraint)
	}
	if !constraint.Check(v) {
		return result.Failf(check.KindInvalidValue, "PHP %s does not satisfy %s", v, c.Constraint)
	}
	result.AddDetailf("constraint: %s", c.Constraint)
	return result.Pass(fmt.Sprintf("PHP %s satisfies %s", raw, c.Constraint))
}

func (c *Check) run(runner CmdRunner, path string, args ...string) (string, error) {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	stdout, stderr, err := runner.RunCommandContext(ctx, path, args...)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("timed out after %s", timeout)
		}
		if stderr = strings.TrimSpace(stderr); stderr != "" {
			return "", fmt.Errorf("%w: %s", err, stderr)
		}
		return "", err
	}
	return stdout, nil
}

// checkExtensions adds a detail per extension and returns the missing ones.
// Extension names are case-insensitive in PHP.
func (c *Check) checkExtensions(loaded map[string]bool, result *check.Result) []string {
	var missing []string
	for _, ext := range c.Extensions {
		if loaded[strings.ToLower(ext)] {
			result.AddDetailf("loaded: %s", ext)
			continue
		}
		result.AddDetailf("missing: %s", ext)
		missing = append(missing, ext)
	}
	return missing
}

// parseModules reads `php -m` output. Section headers like [PHP Modules]
// are skipped.
func parseModules(output string) map[string]bool {
	loaded := make(map[string]bool)
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "[") {
			continue
		}
		loaded[strings.ToLower(line)] = true
	}
	return loaded
}
