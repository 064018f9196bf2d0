package envcheck

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-envparse"

	"github.com/vertti/deploycheck/pkg/check"
)

// Check verifies that a variable is defined in an env file (or the
// deployment's process environment) and is long enough.
type Check struct {
	Key               string     // variable name
	File              string     // env-like file relative to the root; empty means process env
	FallbackToProcess bool       // look in the process env when the file lacks Key
	AllowEmpty        bool       // pass if defined but empty
	MinLen            int        // minimum value length in bytes (0 = no check)
	HideValue         bool       // don't show value in output
	MaskValue         bool       // show first/last 3 chars
	Opener            FileOpener // injected for testing
}

// Run executes the variable check.
func (c *Check) Run(d check.Deployment) check.Result {
	result := check.Result{
		Name: fmt.Sprintf("env: %s", c.Key),
	}

	value, source, err := c.lookup(d)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return result.Fail(check.KindMissingResource,
				fmt.Sprintf("cannot read %s: %s not found", c.Key, c.File), err)
		case os.IsPermission(err):
			return result.Fail(check.KindPermissionDenied,
				fmt.Sprintf("cannot read %s: %s permission denied", c.Key, c.File), err)
		default:
			return result.Failf(check.KindInvalidValue, "cannot parse %s: %v", c.File, err)
		}
	}
	if source == "" {
		where := "environment"
		if c.File != "" {
			where = c.File
		}
		return result.Fail(check.KindMissingResource, fmt.Sprintf("%s not set in %s", c.Key, where),
			fmt.Errorf("variable %s is not set", c.Key))
	}

	result.AddDetailf("source: %s", source)

	if !c.AllowEmpty && value == "" {
		return result.Fail(check.KindInvalidValue, "empty value", fmt.Errorf("variable %s is empty", c.Key))
	}

	if c.MinLen > 0 && len(value) < c.MinLen {
		return result.Failf(check.KindInvalidValue, "value length %d < minimum %d", len(value), c.MinLen)
	}

	result.AddDetailf("value: %s", c.formatValue(value))
	return result.Pass(fmt.Sprintf("%s is set", c.Key))
}

// lookup returns the value and where it was found. An empty source means
// the key is not defined anywhere that was searched.
func (c *Check) lookup(d check.Deployment) (value, source string, err error) {
	if c.File != "" {
		vars, err := c.readFile(d.Path(c.File))
		if err != nil {
			return "", "", err
		}
		if v, ok := vars[c.Key]; ok {
			return v, c.File, nil
		}
		if !c.FallbackToProcess {
			return "", "", nil
		}
	}

	if v, ok := d.LookupEnv(c.Key); ok {
		return v, "environment", nil
	}
	return "", "", nil
}

func (c *Check) readFile(path string) (map[string]string, error) {
	opener := c.Opener
	if opener == nil {
		opener = &RealFileOpener{}
	}

	f, err := opener.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	vars, err := envparse.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return vars, nil
}

func (c *Check) formatValue(value string) string {
	if c.HideValue {
		return "[hidden]"
	}
	if c.MaskValue {
		return maskValue(value)
	}
	return value
}

func maskValue(value string) string {
	if len(value) <= 6 {
		return "•••"
	}
	return value[:3] + "•••" + value[len(value)-3:]
}
