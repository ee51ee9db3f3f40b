package target

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ErrUnsupportedPlatform is returned when the host OS has no known
// TeX personal tree location.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Target holds the resolved destination directories for one bundle:
// the per-user TeX tree subdirectory named after the bundle, and the
// TeXstudio completion directory shared by all bundles.
type Target struct {
	TexDir        string
	CompletionDir string
}

// Overrides replaces platform defaults with user-configured
// directories. TexRoot replaces the tree root above the bundle name,
// CompletionDir replaces the completion directory verbatim. Empty
// fields keep the platform default.
type Overrides struct {
	TexRoot       string
	CompletionDir string
}

// Resolve computes the destination directories for bundleName on the
// current platform.
func Resolve(bundleName string, ov Overrides) (Target, error) {
	return ResolveFor(runtime.GOOS, bundleName, ov)
}

// ResolveFor computes the destination directories for the given GOOS.
// Only linux, darwin and windows are supported.
func ResolveFor(goos, bundleName string, ov Overrides) (Target, error) {
	var tgt Target

	switch goos {
	case "linux", "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return Target{}, fmt.Errorf("failed to determine home directory: %w", err)
		}
		if goos == "darwin" {
			tgt.TexDir = filepath.Join(home, "Library", "texmf", "tex", "latex", bundleName)
		} else {
			tgt.TexDir = filepath.Join(home, "texmf", "tex", "latex", bundleName)
		}
		tgt.CompletionDir = filepath.Join(home, ".config", "texstudio", "completion", "user")

	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return Target{}, errors.New("APPDATA environment variable not set")
		}
		tgt.TexDir = filepath.Join(appData, "MiKTeX", "latex", bundleName)
		tgt.CompletionDir = filepath.Join(appData, "texstudio", "completion", "user")

	default:
		return Target{}, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}

	if ov.TexRoot != "" {
		tgt.TexDir = filepath.Join(ov.TexRoot, bundleName)
	}
	if ov.CompletionDir != "" {
		tgt.CompletionDir = ov.CompletionDir
	}

	return tgt, nil
}

// EnsureDirs creates both destination directories with any missing
// ancestors. Install runs this before syncing any group.
func (t Target) EnsureDirs() error {
	if err := os.MkdirAll(t.TexDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", t.TexDir, err)
	}
	if err := os.MkdirAll(t.CompletionDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", t.CompletionDir, err)
	}
	return nil
}
