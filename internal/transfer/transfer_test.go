package transfer

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatal(err)
	}
}

func TestCopyPlace(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.sty")
	dst := filepath.Join(dir, "dst.sty")
	writeFile(t, src, "\\ProvidesPackage{src}", 0640)

	if err := (Copy{}).Place(src, dst); err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "\\ProvidesPackage{src}" {
		t.Errorf("unexpected content: %s", data)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0640 {
		t.Errorf("mode = %v, want 0640", info.Mode().Perm())
	}
}

func TestCopyPlaceOverwrites(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.sty")
	dst := filepath.Join(dir, "dst.sty")
	writeFile(t, src, "new", 0644)
	writeFile(t, dst, "old", 0644)

	if err := (Copy{}).Place(src, dst); err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	data, _ := os.ReadFile(dst)
	if string(data) != "new" {
		t.Errorf("content = %s, want new", data)
	}
}

func TestCopyPlaceMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := (Copy{}).Place(filepath.Join(dir, "missing"), filepath.Join(dir, "dst"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestCopyPlaceLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.sty")
	dst := filepath.Join(dir, "dst.sty")
	writeFile(t, src, "content", 0644)

	if err := (Copy{}).Place(src, dst); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected src and dst only, got %v", names)
	}
}

func TestCopyRemove(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "dst.sty")
	writeFile(t, dst, "x", 0644)

	if err := (Copy{}).Remove(dst); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Errorf("expected dst to be gone, stat err = %v", err)
	}
}

func TestSymlinkPlace(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.sty")
	dst := filepath.Join(dir, "dst.sty")
	writeFile(t, src, "content", 0644)

	if err := (Symlink{}).Place(src, dst); err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	info, err := os.Lstat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Fatal("dst is not a symlink")
	}

	link, err := os.Readlink(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(link) {
		t.Errorf("link target %s is not absolute", link)
	}
	if link != src {
		t.Errorf("link = %s, want %s", link, src)
	}
}

func TestSymlinkPlaceReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.sty")
	dst := filepath.Join(dir, "dst.sty")
	writeFile(t, src, "content", 0644)
	writeFile(t, dst, "regular file in the way", 0644)

	if err := (Symlink{}).Place(src, dst); err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	info, err := os.Lstat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Error("existing file was not replaced by a symlink")
	}
}

func TestSymlinkRemoveLeavesSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.sty")
	dst := filepath.Join(dir, "dst.sty")
	writeFile(t, src, "content", 0644)

	if err := (Symlink{}).Place(src, dst); err != nil {
		t.Fatal(err)
	}
	if err := (Symlink{}).Remove(dst); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if _, err := os.Lstat(dst); !os.IsNotExist(err) {
		t.Errorf("expected link to be gone, lstat err = %v", err)
	}
	if _, err := os.Stat(src); err != nil {
		t.Errorf("source was touched: %v", err)
	}
}

func TestSymlinkProbe(t *testing.T) {
	if err := (Symlink{}).Probe(); err != nil {
		t.Errorf("Probe failed on a platform that supports symlinks: %v", err)
	}
}

func TestNames(t *testing.T) {
	if got := (Copy{}).Name(); got != "copy" {
		t.Errorf("Copy name = %s", got)
	}
	if got := (Symlink{}).Name(); got != "symlink" {
		t.Errorf("Symlink name = %s", got)
	}
}
