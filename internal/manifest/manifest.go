package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// DefaultFile is the manifest looked up when the caller does not name one.
const DefaultFile = "texbundle.json"

// Default source directories, relative to the manifest file.
const (
	defaultStyDir = "texmf"
	defaultClsDir = "texmf"
	defaultResDir = "resources"
	defaultCwlDir = "autocompletion"
)

// Manifest describes a bundle: its name, the files it ships, and the
// directories they live in relative to the manifest file itself.
type Manifest struct {
	Name string `json:"name"`

	Sty []string `json:"sty"`
	Cls []string `json:"cls"`
	Res []string `json:"res"`

	StyDir string `json:"sty-dir"`
	ClsDir string `json:"cls-dir"`
	ResDir string `json:"res-dir"`
	CwlDir string `json:"cwl-dir"`

	// path is the absolute location of the manifest file, root its directory.
	path string
	root string
}

// Load reads and validates the bundle manifest at path. Optional keys
// receive their documented defaults; unknown keys are ignored.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newCauseError(NotFound, path, "no such file", err)
		}
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, newCauseError(ParseFailed, path, "invalid JSON", err)
	}

	m.applyDefaults()

	if err := m.validate(path); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve manifest path: %w", err)
	}
	m.path = abs
	m.root = filepath.Dir(abs)

	return &m, nil
}

// Root returns the absolute directory containing the manifest file.
// Relative source directories resolve against it.
func (m *Manifest) Root() string {
	return m.root
}

// applyDefaults fills in zero-value optional keys.
func (m *Manifest) applyDefaults() {
	if m.StyDir == "" {
		m.StyDir = defaultStyDir
	}
	if m.ClsDir == "" {
		m.ClsDir = defaultClsDir
	}
	if m.ResDir == "" {
		m.ResDir = defaultResDir
	}
	if m.CwlDir == "" {
		m.CwlDir = defaultCwlDir
	}
}

// validate checks the required fields. The bundle name becomes a
// directory name on the destination side, so it must be a plain word.
func (m *Manifest) validate(path string) error {
	if m.Name == "" {
		return newFieldError(MissingField, path, "name", "required")
	}
	if strings.ContainsAny(m.Name, `/\`) || strings.ContainsFunc(m.Name, unicode.IsSpace) {
		return newFieldError(InvalidField, path, "name", "must not contain path separators or whitespace")
	}
	return nil
}

// SourceDirs holds the resolved absolute source directories of a
// bundle. An optional directory that is missing on disk resolves to
// the empty string, which skips its file group.
type SourceDirs struct {
	Sty string
	Cls string
	Res string
	Cwl string
}

// SourceDirs resolves the manifest's source directories against its
// own directory and checks each on disk. A missing sty or cls
// directory is fatal when the matching name list is non-empty; the
// res and cwl directories always degrade to skipped.
func (m *Manifest) SourceDirs() (SourceDirs, error) {
	var dirs SourceDirs
	var err error

	if dirs.Sty, err = m.resolveDir(m.StyDir, "sty-dir", len(m.Sty) > 0); err != nil {
		return SourceDirs{}, err
	}
	if dirs.Cls, err = m.resolveDir(m.ClsDir, "cls-dir", len(m.Cls) > 0); err != nil {
		return SourceDirs{}, err
	}
	if dirs.Res, err = m.resolveDir(m.ResDir, "res-dir", false); err != nil {
		return SourceDirs{}, err
	}
	if dirs.Cwl, err = m.resolveDir(m.CwlDir, "cwl-dir", false); err != nil {
		return SourceDirs{}, err
	}

	return dirs, nil
}

// resolveDir resolves one directory value to absolute form. A path
// that does not exist, or exists but is not a directory, resolves to
// "" unless required.
func (m *Manifest) resolveDir(dir, field string, required bool) (string, error) {
	path := dir
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.root, path)
	}

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		if required {
			return "", newFieldError(MissingSourceDir, m.path, field, fmt.Sprintf("source directory %s does not exist", path))
		}
		return "", nil
	}

	return path, nil
}
