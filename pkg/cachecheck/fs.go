package cachecheck

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileSystem abstracts file operations for testability.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	Open(name string) (io.ReadCloser, error)
	// NewerThan reports the modification time of name, or of the first
	// regular file below it when name is a directory, that is after t.
	// Directory walks stop at the first match.
	NewerThan(name string, t time.Time) (time.Time, bool, error)
}

// RealFileSystem implements FileSystem using the real file system.
type RealFileSystem struct{}

func (r *RealFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (r *RealFileSystem) Open(name string) (io.ReadCloser, error) {
	return os.Open(name) //nolint:gosec // path comes from the check list
}

func (r *RealFileSystem) NewerThan(name string, t time.Time) (time.Time, bool, error) {
	info, err := os.Stat(name)
	if err != nil {
		return time.Time{}, false, err
	}
	if !info.IsDir() {
		return info.ModTime(), info.ModTime().After(t), nil
	}

	var newer time.Time
	err = filepath.WalkDir(name, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		if fi.ModTime().After(t) {
			newer = fi.ModTime()
			return fs.SkipAll
		}
		return nil
	})
	return newer, !newer.IsZero(), err
}
