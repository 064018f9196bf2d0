package check

import (
	"os"
	"path/filepath"
	"strings"
)

// Deployment is the read-only input shared by every check in a run.
type Deployment struct {
	Root string
	Env  map[string]string
}

// NewDeployment returns a Deployment rooted at root with a private copy of env.
func NewDeployment(root string, env map[string]string) Deployment {
	copied := make(map[string]string, len(env))
	for k, v := range env {
		copied[k] = v
	}
	return Deployment{Root: root, Env: copied}
}

// Path resolves rel against the deployment root. Absolute paths are returned cleaned.
func (d Deployment) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(d.Root, rel)
}

// LookupEnv returns the value of key in the captured environment.
func (d Deployment) LookupEnv(key string) (string, bool) {
	v, ok := d.Env[key]
	return v, ok
}

// EnvFromOS snapshots the process environment.
func EnvFromOS() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}
	return env
}
