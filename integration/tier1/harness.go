//go:build integration

package tier1

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/kirbynel/texbundle/internal/console"
	"github.com/kirbynel/texbundle/internal/manifest"
	"github.com/kirbynel/texbundle/internal/sync"
	"github.com/kirbynel/texbundle/internal/target"
	"github.com/kirbynel/texbundle/internal/testutil"
	"github.com/kirbynel/texbundle/internal/transfer"
)

// Harness wires the whole pipeline against a throwaway directory tree:
// a real manifest on disk, resolved source directories, destination
// overrides pointing below the same root, and the real sync engine.
// Tier 1 stops short of the CLI; e2e covers the binary itself.
type Harness struct {
	t *testing.T

	// BundleDir holds the manifest and its source directories.
	BundleDir string
	// TexRoot and CompletionDir receive the installed files.
	TexRoot       string
	CompletionDir string
}

// NewHarness creates an empty bundle layout under a temp directory
func NewHarness(t *testing.T) *Harness {
	t.Helper()
	root := t.TempDir()

	h := &Harness{
		t:             t,
		BundleDir:     filepath.Join(root, "bundle"),
		TexRoot:       filepath.Join(root, "texmf-root"),
		CompletionDir: filepath.Join(root, "completion"),
	}
	if err := os.MkdirAll(h.BundleDir, 0755); err != nil {
		t.Fatalf("mkdir bundle dir: %v", err)
	}
	return h
}

// WriteManifest writes the manifest file into the bundle directory
func (h *Harness) WriteManifest(content string) {
	h.t.Helper()
	path := filepath.Join(h.BundleDir, manifest.DefaultFile)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		h.t.Fatalf("write manifest: %v", err)
	}
}

// WriteSource writes one source file below the bundle directory,
// creating parent directories
func (h *Harness) WriteSource(rel, content string) {
	h.t.Helper()
	path := filepath.Join(h.BundleDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		h.t.Fatalf("mkdir parent of %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		h.t.Fatalf("write %s: %v", rel, err)
	}
}

// Sync loads the manifest and executes one engine pass. Console output
// is captured and returned alongside the report.
func (h *Harness) Sync(mode sync.Mode, tr transfer.Transferrer, dryRun bool) (*sync.Report, string, error) {
	h.t.Helper()

	m, err := manifest.Load(filepath.Join(h.BundleDir, manifest.DefaultFile))
	if err != nil {
		return nil, "", err
	}
	dirs, err := m.SourceDirs()
	if err != nil {
		return nil, "", err
	}
	tgt, err := target.Resolve(m.Name, target.Overrides{
		TexRoot:       h.TexRoot,
		CompletionDir: h.CompletionDir,
	})
	if err != nil {
		return nil, "", err
	}

	var out bytes.Buffer
	engine := sync.NewEngine(tr, console.New(&out, false), testutil.Logger(), dryRun)
	report, err := engine.Run(mode, sync.BuildBundle(m, dirs, tgt))
	return report, out.String(), err
}

// MustInstall runs an install pass with the copy transfer and fails the
// test on error
func (h *Harness) MustInstall() (*sync.Report, string) {
	h.t.Helper()
	report, out, err := h.Sync(sync.ModeInstall, transfer.Copy{}, false)
	if err != nil {
		h.t.Fatalf("install failed: %v\noutput:\n%s", err, out)
	}
	return report, out
}

// MustUninstall runs an uninstall pass with the copy transfer and fails
// the test on error
func (h *Harness) MustUninstall() (*sync.Report, string) {
	h.t.Helper()
	report, out, err := h.Sync(sync.ModeUninstall, transfer.Copy{}, false)
	if err != nil {
		h.t.Fatalf("uninstall failed: %v\noutput:\n%s", err, out)
	}
	return report, out
}

// TexPath returns the destination path of a file in the bundle tree
func (h *Harness) TexPath(bundle, name string) string {
	return filepath.Join(h.TexRoot, bundle, name)
}

// CompletionPath returns the destination path of a completion file
func (h *Harness) CompletionPath(name string) string {
	return filepath.Join(h.CompletionDir, name)
}

// FileExists checks if path exists as a regular file
func (h *Harness) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ReadFile reads a destination file and fails the test on error
func (h *Harness) ReadFile(path string) string {
	h.t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		h.t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
