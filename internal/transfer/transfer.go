package transfer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Transferrer places bundle files at their destination and removes
// them again. Implementations decide between copying and linking.
type Transferrer interface {
	// Place puts the file at src into place at dst, replacing whatever
	// is already there.
	Place(src, dst string) error
	// Remove deletes the file at dst.
	Remove(dst string) error
	// Name identifies the strategy in logs.
	Name() string
}

// Copy places files by copying their content.
type Copy struct{}

// Name implements Transferrer.
func (Copy) Name() string { return "copy" }

// Place copies src to dst atomically: content goes to a temp file in
// the destination directory, gets the source's permission bits, and
// is renamed into place.
func (Copy) Place(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	tmpFile, err := os.CreateTemp(filepath.Dir(dst), ".texbundle-tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}() // cleanup on error

	if _, err := io.Copy(tmpFile, srcFile); err != nil {
		_ = tmpFile.Close()
		return err
	}

	srcInfo, err := srcFile.Stat()
	if err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Chmod(srcInfo.Mode()); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	return os.Rename(tmpPath, dst)
}

// Remove implements Transferrer.
func (Copy) Remove(dst string) error {
	return os.Remove(dst)
}

// Symlink places files by linking to their absolute source path.
type Symlink struct{}

// Name implements Transferrer.
func (Symlink) Name() string { return "symlink" }

// Place replaces whatever sits at dst with a symbolic link to the
// absolute path of src.
func (Symlink) Place(src, dst string) error {
	abs, err := filepath.Abs(src)
	if err != nil {
		return err
	}

	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return err
	}

	return os.Symlink(abs, dst)
}

// Remove implements Transferrer.
func (Symlink) Remove(dst string) error {
	return os.Remove(dst)
}

// Probe checks that the current user may create symbolic links by
// creating and removing a throwaway link under the temp directory.
// Windows denies symlink creation to regular users, so this must run
// before any destination is touched.
func (Symlink) Probe() error {
	dir, err := os.MkdirTemp("", "texbundle-probe-*")
	if err != nil {
		return fmt.Errorf("failed to probe symlink support: %w", err)
	}
	defer func() {
		_ = os.RemoveAll(dir)
	}()

	if err := os.Symlink(dir, filepath.Join(dir, "probe")); err != nil {
		return fmt.Errorf("symbolic links are not available for this user: %w", err)
	}

	return nil
}
