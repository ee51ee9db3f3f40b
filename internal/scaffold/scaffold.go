package scaffold

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/AlecAivazis/survey/v2"

	"github.com/kirbynel/texbundle/internal/manifest"
)

// Bundle holds the answers needed to write a fresh manifest.
type Bundle struct {
	Name string
	Sty  []string
	Cls  []string
	Res  []string
}

// Ask collects a bundle description interactively.
func Ask() (*Bundle, error) {
	var b Bundle

	if err := survey.AskOne(&survey.Input{
		Message: "Bundle name:",
		Help:    "Becomes the directory name inside the TeX tree.",
	}, &b.Name, survey.WithValidator(survey.Required), survey.WithValidator(validName)); err != nil {
		return nil, err
	}

	var sty, cls, res string
	if err := survey.AskOne(&survey.Input{
		Message: "Package names (comma separated, without .sty):",
	}, &sty); err != nil {
		return nil, err
	}
	if err := survey.AskOne(&survey.Input{
		Message: "Class names (comma separated, without .cls):",
	}, &cls); err != nil {
		return nil, err
	}
	if err := survey.AskOne(&survey.Input{
		Message: "Resource files (comma separated, with extension):",
	}, &res); err != nil {
		return nil, err
	}

	b.Sty = splitList(sty)
	b.Cls = splitList(cls)
	b.Res = splitList(res)

	return &b, nil
}

// validName rejects bundle names that cannot become a directory name.
// Mirrors the manifest loader's rule so init cannot produce a manifest
// the loader would refuse.
func validName(ans interface{}) error {
	name, ok := ans.(string)
	if !ok {
		return fmt.Errorf("name must be a string")
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsFunc(name, unicode.IsSpace) {
		return fmt.Errorf("name must not contain path separators or whitespace")
	}
	return nil
}

// splitList turns a comma separated answer into trimmed entries.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Write renders the manifest into dir and creates the default source
// directories the answers imply. It refuses to overwrite an existing
// manifest unless force is set. Returns the manifest path.
func (b *Bundle) Write(dir string, force bool) (string, error) {
	path := filepath.Join(dir, manifest.DefaultFile)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	data, err := b.render()
	if err != nil {
		return "", err
	}

	// Atomic write: temp file in the target directory, then rename
	tmpFile, err := os.CreateTemp(dir, ".texbundle-init-*")
	if err != nil {
		return "", err
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}() // cleanup on error

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return "", err
	}
	if err := tmpFile.Chmod(0644); err != nil {
		_ = tmpFile.Close()
		return "", err
	}
	if err := tmpFile.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", err
	}

	for _, sub := range b.sourceDirs() {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return "", err
		}
	}

	return path, nil
}

// render produces the manifest document. Directory keys are left out,
// so the loader's defaults apply.
func (b *Bundle) render() ([]byte, error) {
	doc := struct {
		Name string   `json:"name"`
		Sty  []string `json:"sty,omitempty"`
		Cls  []string `json:"cls,omitempty"`
		Res  []string `json:"res,omitempty"`
	}{b.Name, b.Sty, b.Cls, b.Res}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(data, '\n'), nil
}

// sourceDirs returns the default directories the bundle's file lists
// need on disk.
func (b *Bundle) sourceDirs() []string {
	var dirs []string
	if len(b.Sty) > 0 || len(b.Cls) > 0 {
		dirs = append(dirs, "texmf", "autocompletion")
	}
	if len(b.Res) > 0 {
		dirs = append(dirs, "resources")
	}
	return dirs
}
