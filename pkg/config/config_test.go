package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Root)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.FailOnWarn)
	assert.Empty(t, cfg.Checks)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `{
  "root": "app",
  "format": "json",
  "fail_on_warn": true,
  "checks": [
    {"name": "dotenv", "kind": "file", "path": ".env", "required": true},
    {"name": "app key", "kind": "env", "path": ".env", "key": "APP_KEY", "min_len": 32, "mask": true},
    {"name": "providers", "kind": "registry", "path": "config/app.php", "symbols": ["App\\Providers\\AppServiceProvider"]},
    {"name": "config cache", "kind": "cache", "path": "bootstrap/cache/config.php", "sources": ["config"]},
    {"name": "framework", "kind": "composer", "package": "laravel/framework", "constraint": "^10.0"},
    {"name": "runtime", "kind": "php", "binary": "php8.2", "constraint": ">=8.1", "extensions": ["mbstring", "pdo"]}
  ]
}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(filepath.Dir(path), "app"), cfg.Root)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.FailOnWarn)
	assert.Equal(t, "info", cfg.Log.Level, "unset keys keep their defaults")
	require.Len(t, cfg.Checks, 6)
	assert.Equal(t, "APP_KEY", cfg.Checks[1].Key)
	assert.Equal(t, 32, cfg.Checks[1].MinLen)
	assert.True(t, cfg.Checks[1].Mask)
	assert.Equal(t, []string{`App\Providers\AppServiceProvider`}, cfg.Checks[2].Symbols)
	assert.Equal(t, []string{"config"}, cfg.Checks[3].Sources)
	assert.Equal(t, "^10.0", cfg.Checks[4].Constraint)
	assert.Equal(t, "php8.2", cfg.Checks[5].Binary)
	assert.Equal(t, []string{"mbstring", "pdo"}, cfg.Checks[5].Extensions)
}

func TestLoad_AbsoluteRootKept(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, `{"root": `+quote(root)+`}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, root, cfg.Root)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `{"format": "json"}`)
	t.Setenv("DEPLOYCHECK_FORMAT", "html")
	t.Setenv("DEPLOYCHECK_LOG__LEVEL", "debug")
	t.Setenv("DEPLOYCHECK_FAIL_ON_WARN", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "html", cfg.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.FailOnWarn)
}

func TestLoad_IgnoresUnrelatedEnv(t *testing.T) {
	t.Setenv("DEPLOYCHECK_TOKEN", "x")
	t.Setenv("DEPLOYCHECK_LOG__COLOR", "always")
	t.Setenv("DEPLOYCHECK_FORMAT", "json")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoadWithDefaults(t *testing.T) {
	defaults := Default()
	defaults.Root = "/srv/app"

	t.Run("defaults apply", func(t *testing.T) {
		cfg, err := LoadWithDefaults("", defaults)
		require.NoError(t, err)
		assert.Equal(t, "/srv/app", cfg.Root)
	})

	t.Run("env overrides defaults", func(t *testing.T) {
		t.Setenv("DEPLOYCHECK_ROOT", "/var/www/app")
		cfg, err := LoadWithDefaults("", defaults)
		require.NoError(t, err)
		assert.Equal(t, "/var/www/app", cfg.Root)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		root := t.TempDir()
		cfg, err := LoadWithDefaults(writeConfig(t, `{"root": `+quote(root)+`}`), defaults)
		require.NoError(t, err)
		assert.Equal(t, root, cfg.Root)
	})
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"malformed json", `{"format":`, "failed to load config file"},
		{"unknown key", `{"colour": "always"}`, "failed to decode config"},
		{"bad format", `{"format": "yaml"}`, "Config.Format"},
		{"bad log level", `{"log": {"level": "loud"}}`, "Config.Log.Level"},
		{"unknown kind", `{"checks": [{"name": "x", "kind": "http"}]}`, "Config.Checks[0].Kind"},
		{"missing name", `{"checks": [{"kind": "file", "path": ".env"}]}`, "Config.Checks[0].Name"},
		{"negative min_len", `{"checks": [{"name": "k", "kind": "env", "key": "APP_KEY", "min_len": -1}]}`, "Config.Checks[0].MinLen"},
		{"file without path", `{"checks": [{"name": "f", "kind": "file"}]}`, "file check requires path"},
		{"env without key", `{"checks": [{"name": "e", "kind": "env"}]}`, "env check requires key"},
		{"registry without symbols", `{"checks": [{"name": "r", "kind": "registry", "path": "config/app.php"}]}`, "registry check requires path and symbols"},
		{"composer without package", `{"checks": [{"name": "c", "kind": "composer"}]}`, "composer check requires package"},
		{"php without requirements", `{"checks": [{"name": "p", "kind": "php"}]}`, "php check requires constraint or extensions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Format = "yaml"
	cfg.Checks = []CheckSpec{
		{Name: "a", Kind: KindFile},
		{Name: "b", Kind: KindEnv},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Config.Format")
	assert.Contains(t, err.Error(), "file check requires path")
	assert.Contains(t, err.Error(), "env check requires key")
}

func quote(s string) string {
	b := []byte{'"'}
	for _, r := range s {
		if r == '\\' || r == '"' {
			b = append(b, '\\')
		}
		b = append(b, string(r)...)
	}
	return string(append(b, '"'))
}
