//go:build windows

package filecheck

import "io/fs"

// Writable falls back to the mode bits; Windows has no access(2).
func (r *RealFileSystem) Writable(_ string, info fs.FileInfo) error {
	if info.Mode().Perm()&0o222 == 0 {
		return fs.ErrPermission
	}
	return nil
}
