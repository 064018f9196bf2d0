// Package cachecheck reports generated artifacts (cached config, routes,
// compiled services) that may hide changes made to their sources.
package cachecheck

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/zeebo/blake3"

	"github.com/vertti/deploycheck/pkg/check"
)

// TimeLayout is the format used for modification times in details.
const TimeLayout = "2006-01-02 15:04:05"

// Check warns when a cached artifact exists.
type Check struct {
	Path    string     // artifact path relative to the deployment root
	Sources []string   // files or directories the artifact is generated from
	FS      FileSystem // injected for testing
}

// Run executes the cache check.
func (c *Check) Run(d check.Deployment) check.Result {
	result := check.Result{
		Name: fmt.Sprintf("cache: %s", c.Path),
	}

	fsys := c.FS
	if fsys == nil {
		fsys = &RealFileSystem{}
	}
	path := d.Path(c.Path)

	info, err := fsys.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result.Pass(fmt.Sprintf("%s not cached", c.Path))
		}
		return result.Fail(check.KindOf(err), fmt.Sprintf("stat %s failed: %v", c.Path, err), err)
	}

	result.AddDetailf("size: %s (%d bytes)", humanize.Bytes(uint64(info.Size())), info.Size())
	result.AddDetailf("modified: %s", info.ModTime().Format(TimeLayout))

	if digest, err := c.digest(fsys, path); err != nil {
		result.AddDetailf("blake3: unavailable (%v)", err)
	} else {
		result.AddDetailf("blake3: %s", digest)
	}

	stale := 0
	for _, src := range c.Sources {
		modified, newer, err := fsys.NewerThan(d.Path(src), info.ModTime())
		if err != nil {
			if !os.IsNotExist(err) {
				result.AddDetailf("source %s: %v", src, err)
			}
			continue
		}
		if newer {
			stale++
			result.AddDetailf("older than: %s (modified %s)", src, modified.Format(TimeLayout))
		}
	}

	if stale > 0 {
		return result.Warnf("", "%s is cached and older than %d source(s)", c.Path, stale)
	}
	return result.Warnf("", "%s is cached", c.Path)
}

func (c *Check) digest(fsys FileSystem, path string) (string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
