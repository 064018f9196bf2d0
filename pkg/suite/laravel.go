// Package suite turns check specs into runnable definitions and carries the
// built-in Laravel deployment suite.
package suite

import (
	"path"

	"github.com/vertti/deploycheck/pkg/config"
)

// AppKeyMinLen is the shortest APP_KEY accepted by the Laravel suite.
const AppKeyMinLen = 32

// EssentialProviders are the service providers a Laravel app cannot boot without.
var EssentialProviders = []string{
	`Illuminate\Foundation\Providers\FoundationServiceProvider`,
	`Illuminate\Database\DatabaseServiceProvider`,
	`Illuminate\Filesystem\FilesystemServiceProvider`,
	`Illuminate\View\ViewServiceProvider`,
}

// LaravelExtensions are the PHP extensions Laravel lists as server
// requirements. The php check is not part of Laravel() because it needs a
// php binary on the inspecting host; add it with PHP().
var LaravelExtensions = []string{
	"ctype", "curl", "dom", "fileinfo", "filter", "hash", "mbstring",
	"openssl", "pcre", "pdo", "session", "tokenizer", "xml",
}

// PHP returns a runtime check for the given constraint and LaravelExtensions.
func PHP(constraint string) config.CheckSpec {
	return config.CheckSpec{
		Name:       "php",
		Kind:       config.KindPHP,
		Constraint: constraint,
		Extensions: LaravelExtensions,
	}
}

var (
	configFiles = []string{"app.php", "database.php", "cache.php", "session.php"}

	writableDirs = []string{
		"storage",
		"storage/logs",
		"storage/framework",
		"storage/framework/cache",
		"storage/framework/sessions",
		"storage/framework/views",
		"bootstrap/cache",
	}

	// routes-v7.php is the route cache name since Laravel 7; older apps write routes.php.
	cachedFiles = []string{"config.php", "routes.php", "routes-v7.php", "services.php", "packages.php"}
)

// Laravel returns the default check list for a Laravel deployment.
func Laravel() []config.CheckSpec {
	var specs []config.CheckSpec

	for _, name := range configFiles {
		specs = append(specs, config.CheckSpec{
			Name:     "config/" + name,
			Kind:     config.KindFile,
			Path:     path.Join("config", name),
			Required: true,
			Prefix:   "<?php",
		})
	}

	specs = append(specs,
		config.CheckSpec{Name: ".env", Kind: config.KindFile, Path: ".env", Required: true},
		config.CheckSpec{Name: ".env.example", Kind: config.KindFile, Path: ".env.example"},
		config.CheckSpec{Name: "vendor/autoload.php", Kind: config.KindFile, Path: "vendor/autoload.php", Required: true},
	)

	for _, dir := range writableDirs {
		specs = append(specs, config.CheckSpec{
			Name:     dir,
			Kind:     config.KindDir,
			Path:     dir,
			Required: true,
			Writable: true,
		})
	}

	specs = append(specs,
		config.CheckSpec{
			Name:   "APP_KEY",
			Kind:   config.KindEnv,
			Path:   ".env",
			Key:    "APP_KEY",
			MinLen: AppKeyMinLen,
			Mask:   true,
		},
		config.CheckSpec{
			Name:    "service providers",
			Kind:    config.KindRegistry,
			Path:    "config/app.php",
			Symbols: EssentialProviders,
		},
		config.CheckSpec{
			Name:    "laravel/framework",
			Kind:    config.KindComposer,
			Package: "laravel/framework",
		},
	)

	for _, name := range cachedFiles {
		specs = append(specs, config.CheckSpec{
			Name:    "cache/" + name,
			Kind:    config.KindCache,
			Path:    path.Join("bootstrap/cache", name),
			Sources: []string{"config", "routes"},
		})
	}

	return specs
}
