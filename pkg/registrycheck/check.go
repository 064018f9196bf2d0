// Package registrycheck verifies that named symbols, such as service
// providers, are listed in a configuration file.
package registrycheck

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/vertti/deploycheck/pkg/check"
)

// Check verifies that every symbol is registered in File.
//
// Without JSONPath each symbol must appear verbatim somewhere in the file.
// With JSONPath the file must be JSON and the value at the path an array
// containing each symbol as an element.
type Check struct {
	File     string     // path relative to the deployment root
	Symbols  []string   // symbols that must be present
	JSONPath string     // optional gjson path to an array
	FS       FileSystem // injected for testing
}

// Run executes the registry check.
func (c *Check) Run(d check.Deployment) check.Result {
	result := check.Result{
		Name: fmt.Sprintf("registry: %s", c.File),
	}

	if len(c.Symbols) == 0 {
		return result.Failf(check.KindInvalidValue, "no symbols to look for in %s", c.File)
	}

	fsys := c.FS
	if fsys == nil {
		fsys = &RealFileSystem{}
	}

	content, err := fsys.ReadFile(d.Path(c.File))
	if err != nil {
		return result.Fail(check.KindOf(err), fmt.Sprintf("failed to read %s: %v", c.File, err), err)
	}

	present := c.matcher(string(content), &result)
	if present == nil {
		return result
	}

	var missing []string
	for _, sym := range c.Symbols {
		if present(sym) {
			result.AddDetailf("registered: %s", sym)
			continue
		}
		result.AddDetailf("missing: %s", sym)
		missing = append(missing, sym)
	}

	if len(missing) > 0 {
		return result.Fail(check.KindInvalidValue,
			fmt.Sprintf("%d of %d symbols missing from %s", len(missing), len(c.Symbols), c.File),
			fmt.Errorf("missing from %s: %s", c.File, strings.Join(missing, ", ")))
	}

	return result.Pass(fmt.Sprintf("all %d symbols registered in %s", len(c.Symbols), c.File))
}

// matcher returns a membership test for the file content, or nil after
// failing the result when the content cannot be searched.
func (c *Check) matcher(content string, result *check.Result) func(string) bool {
	if c.JSONPath == "" {
		if n := strings.Count(content, "::class"); n > 0 {
			result.AddDetailf("class references: %d", n)
		}
		return func(sym string) bool {
			return strings.Contains(content, sym)
		}
	}

	if !gjson.Valid(content) {
		result.Fail(check.KindInvalidValue, fmt.Sprintf("%s is not valid JSON", c.File), fmt.Errorf("invalid JSON syntax"))
		return nil
	}

	list := gjson.Get(content, c.JSONPath)
	if !list.Exists() {
		result.Failf(check.KindMissingResource, "key %q not found in %s", c.JSONPath, c.File)
		return nil
	}
	if !list.IsArray() {
		result.Failf(check.KindInvalidValue, "key %q in %s is not an array", c.JSONPath, c.File)
		return nil
	}

	entries := make(map[string]struct{})
	for _, v := range list.Array() {
		entries[v.String()] = struct{}{}
	}
	result.AddDetailf("entries: %d", len(list.Array()))

	return func(sym string) bool {
		_, ok := entries[sym]
		return ok
	}
}
