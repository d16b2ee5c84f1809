// Package testutil provides helpers shared by test suites across the
// module, chiefly a loader for the YAML fixtures that drive end-to-end
// processor tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
)

// CreateFile creates a file with the given content in the specified
// directory, creating parent directories as needed. It fails the test
// if the file cannot be created.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}

	return path
}

// IsolateXDG points the XDG data and config homes at fresh temp
// directories for the duration of the test, so tests never see the
// machine's real citekit styles or config.
func IsolateXDG(t *testing.T) {
	t.Helper()

	// registered before Setenv so the cleanup order is: restore env
	// first, then re-read it into the xdg package
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
}
