//go:build e2e

package harness

import (
	"context"
	"os"
	"path/filepath"
)

// DumpDiagnostics logs the full work directory tree, symlink targets
// included. Scenarios call it when an on-disk assertion fails.
func (s *Suite) DumpDiagnostics() {
	s.Logf("=== Work directory tree ===")

	err := filepath.Walk(s.Workdir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			s.Logf("%s: %v", path, err)
			return nil
		}

		rel, relErr := filepath.Rel(s.Workdir, path)
		if relErr != nil {
			rel = path
		}

		if info.Mode()&os.ModeSymlink != 0 {
			dst, lerr := os.Readlink(path)
			if lerr != nil {
				dst = lerr.Error()
			}
			s.Logf("%s %s -> %s", info.Mode(), rel, dst)
			return nil
		}

		s.Logf("%s %s", info.Mode(), rel)
		return nil
	})
	if err != nil {
		s.Logf("walk failed: %v", err)
	}

	s.Logf("=== End tree ===")
}

// RunScenario runs a test scenario and dumps the tree on failure
func (s *Suite) RunScenario(ctx context.Context, name string, fn func(context.Context) error) error {
	s.Logf("Running scenario: %s", name)
	err := fn(ctx)
	if err != nil {
		s.Logf("Scenario %s failed: %v", name, err)
		s.DumpDiagnostics()
	} else {
		s.Logf("Scenario %s passed", name)
	}
	return err
}
