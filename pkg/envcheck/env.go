package envcheck

import (
	"io"
	"os"
)

// FileOpener abstracts opening env files for testability.
type FileOpener interface {
	Open(name string) (io.ReadCloser, error)
}

// RealFileOpener opens files from the real filesystem.
type RealFileOpener struct{}

func (r *RealFileOpener) Open(name string) (io.ReadCloser, error) {
	return os.Open(name) //nolint:gosec // path comes from the check list
}
