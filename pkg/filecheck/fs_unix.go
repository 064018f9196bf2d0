//go:build unix

package filecheck

import (
	"io/fs"

	"golang.org/x/sys/unix"
)

// Writable asks the kernel whether the current process may write to name.
func (r *RealFileSystem) Writable(name string, _ fs.FileInfo) error {
	return unix.Access(name, unix.W_OK)
}
