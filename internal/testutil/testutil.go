// Package testutil provides helpers shared by tests across packages.
package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// Logger returns a logger that stays quiet unless something fails.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// WriteFiles creates the named files under dir with placeholder
// content, creating parent directories as needed.
func WriteFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("% "+name+"\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}
