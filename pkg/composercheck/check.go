// Package composercheck verifies that a composer package is installed at a
// version satisfying a semantic-version constraint.
package composercheck

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/tidwall/gjson"

	"github.com/vertti/deploycheck/pkg/check"
)

// DefaultLockFile is used when Check.LockFile is empty.
const DefaultLockFile = "composer.lock"

// Check verifies an installed package recorded in composer.lock.
type Check struct {
	Package    string     // e.g. "laravel/framework"
	Constraint string     // optional semver constraint, e.g. ">=10.0"
	LockFile   string     // path relative to the root (default composer.lock)
	Required   bool       // missing lock file is FAIL; otherwise WARN
	FS         FileSystem // injected for testing
}

// Run executes the composer check.
func (c *Check) Run(d check.Deployment) check.Result {
	result := check.Result{
		Name: fmt.Sprintf("composer: %s", c.Package),
	}

	lockFile := c.LockFile
	if lockFile == "" {
		lockFile = DefaultLockFile
	}
	fsys := c.FS
	if fsys == nil {
		fsys = &RealFileSystem{}
	}

	var constraint *semver.Constraints
	if c.Constraint != "" {
		var err error
		constraint, err = semver.NewConstraint(c.Constraint)
		if err != nil {
			return result.Failf(check.KindInvalidValue, "invalid constraint %q: %v", c.Constraint, err)
		}
	}

	content, err := fsys.ReadFile(d.Path(lockFile))
	if err != nil {
		if os.IsNotExist(err) && !c.Required {
			return result.Warnf(check.KindMissingResource, "%s not found (optional)", lockFile)
		}
		return result.Fail(check.KindOf(err), fmt.Sprintf("failed to read %s: %v", lockFile, err), err)
	}

	lock := string(content)
	if !gjson.Valid(lock) {
		return result.Fail(check.KindInvalidValue, fmt.Sprintf("%s is not valid JSON", lockFile), fmt.Errorf("invalid JSON syntax"))
	}

	installed, section := findPackage(lock, c.Package)
	if !installed.Exists() {
		return result.Failf(check.KindMissingResource, "%s not installed according to %s", c.Package, lockFile)
	}

	raw := installed.Get("version").String()
	result.AddDetailf("version: %s", raw)
	result.AddDetailf("section: %s", section)

	if constraint == nil {
		return result.Pass(fmt.Sprintf("%s %s installed", c.Package, raw))
	}

	v, err := semver.NewVersion(raw)
	if err != nil {
		return result.Warnf(check.KindInvalidValue, "%s version %q is not a semantic version, cannot check %q", c.Package, raw, c.Constraint)
	}
	if !constraint.Check(v) {
		return result.Failf(check.KindInvalidValue, "%s %s does not satisfy %s", c.Package, v, c.Constraint)
	}

	result.AddDetailf("constraint: %s", c.Constraint)
	return result.Pass(fmt.Sprintf("%s %s satisfies %s", c.Package, raw, c.Constraint))
}

func findPackage(lock, name string) (gjson.Result, string) {
	for _, section := range []string{"packages", "packages-dev"} {
		pkg := gjson.Get(lock, fmt.Sprintf(`%s.#(name==%q)`, section, name))
		if pkg.Exists() {
			return pkg, section
		}
	}
	return gjson.Result{}, ""
}
