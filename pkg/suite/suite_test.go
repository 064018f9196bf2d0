package suite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vertti/deploycheck/pkg/cachecheck"
	"github.com/vertti/deploycheck/pkg/check"
	"github.com/vertti/deploycheck/pkg/composercheck"
	"github.com/vertti/deploycheck/pkg/config"
	"github.com/vertti/deploycheck/pkg/envcheck"
	"github.com/vertti/deploycheck/pkg/filecheck"
	"github.com/vertti/deploycheck/pkg/phpcheck"
	"github.com/vertti/deploycheck/pkg/registrycheck"
	"github.com/vertti/deploycheck/pkg/runner"
	"github.com/vertti/deploycheck/pkg/testutil"
)

func TestLaravel_IsValidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Checks = Laravel()
	require.NoError(t, cfg.Validate())
}

func TestLaravel_UniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, spec := range Laravel() {
		assert.False(t, seen[spec.Name], "duplicate name %q", spec.Name)
		seen[spec.Name] = true
	}
}

func TestLaravel_Contents(t *testing.T) {
	byName := map[string]config.CheckSpec{}
	for _, spec := range Laravel() {
		byName[spec.Name] = spec
	}

	env := byName[".env"]
	assert.True(t, env.Required)

	assert.False(t, byName[".env.example"].Required)

	appKey := byName["APP_KEY"]
	assert.Equal(t, config.KindEnv, appKey.Kind)
	assert.Equal(t, ".env", appKey.Path)
	assert.Equal(t, 32, appKey.MinLen)
	assert.True(t, appKey.Mask)

	appConfig := byName["config/app.php"]
	assert.Equal(t, "<?php", appConfig.Prefix)
	assert.True(t, appConfig.Required)

	storage := byName["storage/framework/views"]
	assert.Equal(t, config.KindDir, storage.Kind)
	assert.True(t, storage.Writable)

	assert.Len(t, byName["service providers"].Symbols, 4)

	for _, name := range []string{"config.php", "routes.php", "routes-v7.php", "services.php", "packages.php"} {
		cached, ok := byName["cache/"+name]
		require.True(t, ok, "missing cache/%s", name)
		assert.Equal(t, config.KindCache, cached.Kind)
		assert.Equal(t, "bootstrap/cache/"+name, cached.Path)
		assert.Equal(t, []string{"config", "routes"}, cached.Sources)
	}
}

func TestLaravel_LegacyRouteCacheWarns(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, testutil.LaravelTree())
	testutil.WriteTree(t, root, map[string]string{"bootstrap/cache/routes.php": "<?php return [];"})

	defs, err := Build(Laravel())
	require.NoError(t, err)
	r := runner.New()
	require.NoError(t, r.RegisterAll(defs...))

	results := r.Run(check.NewDeployment(root, nil))
	byName := map[string]check.Result{}
	for _, res := range results {
		byName[res.Name] = res
	}

	assert.Equal(t, check.StatusWarn, byName["cache/routes.php"].Status)
	assert.Equal(t, check.StatusPass, byName["cache/routes-v7.php"].Status)
	assert.Equal(t, runner.Summary{Pass: len(defs) - 1, Warn: 1}, runner.Summarize(results))
}

func TestChecker(t *testing.T) {
	tests := []struct {
		spec config.CheckSpec
		want any
	}{
		{config.CheckSpec{Kind: config.KindFile, Path: ".env"}, &filecheck.Check{}},
		{config.CheckSpec{Kind: config.KindDir, Path: "storage"}, &filecheck.Check{}},
		{config.CheckSpec{Kind: config.KindEnv, Key: "APP_KEY"}, &envcheck.Check{}},
		{config.CheckSpec{Kind: config.KindRegistry, Path: "config/app.php", Symbols: []string{"X"}}, &registrycheck.Check{}},
		{config.CheckSpec{Kind: config.KindCache, Path: "bootstrap/cache/config.php"}, &cachecheck.Check{}},
		{config.CheckSpec{Kind: config.KindComposer, Package: "laravel/framework"}, &composercheck.Check{}},
		{config.CheckSpec{Kind: config.KindPHP, Constraint: ">=8.1"}, &phpcheck.Check{}},
	}

	for _, tt := range tests {
		t.Run(tt.spec.Kind, func(t *testing.T) {
			c, err := Checker(tt.spec)
			require.NoError(t, err)
			assert.IsType(t, tt.want, c)
		})
	}
}

func TestPHP(t *testing.T) {
	spec := PHP(">=8.1")
	assert.Equal(t, config.KindPHP, spec.Kind)
	assert.Contains(t, spec.Extensions, "mbstring")

	cfg := config.Default()
	cfg.Checks = append(Laravel(), spec)
	require.NoError(t, cfg.Validate())

	c, err := Checker(spec)
	require.NoError(t, err)
	assert.Equal(t, ">=8.1", c.(*phpcheck.Check).Constraint)
}

func TestChecker_DirExpectsDirectory(t *testing.T) {
	c, err := Checker(config.CheckSpec{Kind: config.KindDir, Path: "storage", Writable: true})
	require.NoError(t, err)

	fc := c.(*filecheck.Check)
	assert.True(t, fc.ExpectDir)
	assert.True(t, fc.Writable)
}

func TestBuild_UnknownKind(t *testing.T) {
	_, err := Build([]config.CheckSpec{
		{Name: "ok", Kind: config.KindFile, Path: ".env"},
		{Name: "bad", Kind: "http"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bad"`)
	assert.Contains(t, err.Error(), `unknown check kind "http"`)
}

func TestBuild_KeepsOrderAndNames(t *testing.T) {
	specs := Laravel()
	defs, err := Build(specs)
	require.NoError(t, err)
	require.Len(t, defs, len(specs))
	for i := range specs {
		assert.Equal(t, specs[i].Name, defs[i].Name)
	}
}

func TestLaravel_HealthyDeployment(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, testutil.LaravelTree())

	defs, err := Build(Laravel())
	require.NoError(t, err)

	r := runner.New()
	require.NoError(t, r.RegisterAll(defs...))

	results := r.Run(check.NewDeployment(root, nil))
	for _, res := range results {
		assert.Equal(t, check.StatusPass, res.Status, "%s: %s %v", res.Name, res.Message, res.Details)
	}

	s := runner.Summarize(results)
	assert.Equal(t, runner.Summary{Pass: len(defs)}, s)
}

func TestLaravel_MissingDotEnv(t *testing.T) {
	root := t.TempDir()
	tree := testutil.LaravelTree()
	delete(tree, ".env")
	testutil.WriteTree(t, root, tree)

	defs, err := Build(Laravel())
	require.NoError(t, err)
	r := runner.New()
	require.NoError(t, r.RegisterAll(defs...))

	results := map[string]check.Result{}
	for _, res := range r.Run(check.NewDeployment(root, nil)) {
		results[res.Name] = res
	}

	assert.Equal(t, check.StatusFail, results[".env"].Status)
	assert.Contains(t, results[".env"].Message, ".env")
	assert.Equal(t, check.KindMissingResource, results[".env"].Kind)

	assert.Equal(t, check.StatusFail, results["APP_KEY"].Status)
	assert.Equal(t, check.KindMissingResource, results["APP_KEY"].Kind)
	assert.Contains(t, results["APP_KEY"].Message, ".env not found")
}
