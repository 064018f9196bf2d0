package filecheck

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/vertti/deploycheck/pkg/check"
)

// Check verifies that a file or directory in the deployment meets requirements.
type Check struct {
	Path      string     // path relative to the deployment root
	Required  bool       // missing is FAIL; otherwise WARN
	ExpectDir bool       // expect a directory
	Writable  bool       // the current process must be able to write
	NotEmpty  bool       // file must have size > 0
	Prefix    string     // content must start with this literal string
	Contains  string     // literal string to search in content
	Head      int64      // limit content read to first N bytes
	FS        FileSystem // injected for testing
}

// Run executes the file check.
func (c *Check) Run(d check.Deployment) check.Result {
	result := check.Result{
		Name: fmt.Sprintf("file: %s", c.Path),
	}

	fsys := c.FS
	if fsys == nil {
		fsys = &RealFileSystem{}
	}
	path := d.Path(c.Path)

	info, err := fsys.Stat(path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			if !c.Required {
				return result.Warnf(check.KindMissingResource, "%s not found (optional)", c.Path)
			}
			return result.Fail(check.KindMissingResource, fmt.Sprintf("%s not found", c.Path), err)
		case os.IsPermission(err):
			return result.Fail(check.KindPermissionDenied, fmt.Sprintf("%s: permission denied", c.Path), err)
		default:
			return result.Failf(check.KindInvalidValue, "stat %s failed: %v", c.Path, err)
		}
	}

	if err := c.checkType(info, &result); err != nil {
		return result
	}

	if !info.IsDir() {
		if err := c.checkSize(info, &result); err != nil {
			return result
		}
	}

	result.AddDetailf("permissions: %s", info.Mode().Perm())

	if c.Writable {
		if err := fsys.Writable(path, info); err != nil {
			return result.Fail(check.KindPermissionDenied, fmt.Sprintf("%s is not writable", c.Path), err)
		}
		result.AddDetail("writable: yes")
	}

	if !info.IsDir() && (c.Prefix != "" || c.Contains != "") {
		if err := c.checkContent(fsys, path, &result); err != nil {
			return result
		}
	}

	return result.Pass(fmt.Sprintf("%s exists", c.Path))
}

func (c *Check) checkType(info fs.FileInfo, result *check.Result) error {
	if info.IsDir() {
		result.AddDetail("type: directory")
		return nil
	}
	if c.ExpectDir {
		err := fmt.Errorf("%s is a file, expected a directory", c.Path)
		result.Fail(check.KindInvalidValue, "expected directory, got file", err)
		return err
	}
	result.AddDetail("type: file")
	return nil
}

func (c *Check) checkSize(info fs.FileInfo, result *check.Result) error {
	result.AddDetailf("size: %d", info.Size())

	if c.NotEmpty && info.Size() == 0 {
		err := fmt.Errorf("%s is empty", c.Path)
		result.Fail(check.KindInvalidValue, "file is empty", err)
		return err
	}
	return nil
}

func (c *Check) checkContent(fsys FileSystem, path string, result *check.Result) error {
	content, err := fsys.ReadFile(path, c.Head)
	if err != nil {
		result.Failf(check.KindOf(err), "failed to read %s: %v", c.Path, err)
		return err
	}

	if c.Prefix != "" {
		if !strings.HasPrefix(string(content), c.Prefix) {
			err := fmt.Errorf("content does not start with %q", c.Prefix)
			result.Fail(check.KindInvalidValue, err.Error(), err)
			return err
		}
		result.AddDetailf("starts with: %s", c.Prefix)
	}

	if c.Contains != "" {
		if !strings.Contains(string(content), c.Contains) {
			err := fmt.Errorf("content does not contain %q", c.Contains)
			result.Fail(check.KindInvalidValue, err.Error(), err)
			return err
		}
		result.AddDetailf("contains: %s", c.Contains)
	}

	return nil
}
