package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFilename is the config file FindFile searches for.
const DefaultFilename = ".deploycheck.json"

// ErrNotFound is returned by FindFile when no config file exists.
var ErrNotFound = errors.New(DefaultFilename + " not found")

// FindFile returns explicitPath if set and present, otherwise searches from
// startDir upward for DefaultFilename, stopping at the home directory, a git
// repository root or the filesystem root.
func FindFile(startDir, explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %w", err)
		}
		return explicitPath, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		candidate := filepath.Join(currentDir, DefaultFilename)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		if currentDir == homeDir {
			break
		}

		if _, err := os.Stat(filepath.Join(currentDir, ".git")); err == nil {
			break
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", ErrNotFound
}
