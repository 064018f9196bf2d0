package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ContainsDetail checks if any detail string contains the given substring.
func ContainsDetail(details []string, substr string) bool {
	for _, d := range details {
		if strings.Contains(d, substr) {
			return true
		}
	}
	return false
}

// WriteTree creates files under root. Keys ending in "/" create directories.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if strings.HasSuffix(name, "/") {
			if err := os.MkdirAll(path, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", name, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(name), err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

// Touch sets the modification time of root/name.
func Touch(t *testing.T, root, name string, mtime time.Time) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(name))
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes %s: %v", name, err)
	}
}

// AppKey is a valid 32+ byte APP_KEY for fixtures.
const AppKey = "base64:q2Vh0b1aZ8x7Lm4nR5tY9uI3oP6sD2fG1hJ0kL8zX4c="

// LaravelTree returns the files of a healthy Laravel deployment for WriteTree.
// No cache artifacts are included.
func LaravelTree() map[string]string {
	appConfig := `<?php

return [
    'name' => env('APP_NAME', 'Laravel'),
    'providers' => [
        Illuminate\Foundation\Providers\FoundationServiceProvider::class,
        Illuminate\Database\DatabaseServiceProvider::class,
        Illuminate\Filesystem\FilesystemServiceProvider::class,
        Illuminate\View\ViewServiceProvider::class,
        App\Providers\AppServiceProvider::class,
    ],
];
`
	return map[string]string{
		"config/app.php":              appConfig,
		"config/database.php":         "<?php\n\nreturn ['default' => env('DB_CONNECTION', 'mysql')];\n",
		"config/cache.php":            "<?php\n\nreturn ['default' => env('CACHE_DRIVER', 'file')];\n",
		"config/session.php":          "<?php\n\nreturn ['driver' => env('SESSION_DRIVER', 'file')];\n",
		".env":                        "APP_NAME=Laravel\nAPP_ENV=production\nAPP_KEY=" + AppKey + "\n",
		".env.example":                "APP_NAME=Laravel\nAPP_KEY=\n",
		"vendor/autoload.php":         "<?php\n\nrequire_once __DIR__ . '/composer/autoload_real.php';\n",
		"routes/web.php":              "<?php\n\nRoute::get('/', fn () => view('welcome'));\n",
		"composer.lock":               `{"packages": [{"name": "laravel/framework", "version": "v10.48.4"}], "packages-dev": []}`,
		"storage/logs/":               "",
		"storage/framework/cache/":    "",
		"storage/framework/sessions/": "",
		"storage/framework/views/":    "",
		"bootstrap/cache/":            "",
	}
}
