package sync

import (
	"github.com/kirbynel/texbundle/internal/manifest"
	"github.com/kirbynel/texbundle/internal/target"
)

// Suffixes appended to manifest entry names per file group. Resource
// entries already carry their extension.
const (
	suffixSty = ".sty"
	suffixCls = ".cls"
	suffixCwl = ".cwl"
)

// FileGroup describes one class of files to synchronize.
type FileGroup struct {
	Label     string
	Entries   []string
	SourceDir string // empty means the group is skipped
	DestDir   string
	Suffix    string
}

// Skip reports whether the group has nothing to do.
func (g FileGroup) Skip() bool {
	return g.SourceDir == "" || len(g.Entries) == 0
}

// Bundle is everything one run operates on.
type Bundle struct {
	Name   string
	Target target.Target
	Groups []FileGroup
}

// BuildBundle assembles the file groups in processing order: packages,
// classes, resources, autocompletion. The autocompletion entries are
// the package and class names combined, each checked for a matching
// .cwl file regardless of whether the .sty or .cls itself exists.
func BuildBundle(m *manifest.Manifest, dirs manifest.SourceDirs, tgt target.Target) Bundle {
	cwl := make([]string, 0, len(m.Sty)+len(m.Cls))
	cwl = append(cwl, m.Sty...)
	cwl = append(cwl, m.Cls...)

	return Bundle{
		Name:   m.Name,
		Target: tgt,
		Groups: []FileGroup{
			{Label: "packages", Entries: m.Sty, SourceDir: dirs.Sty, DestDir: tgt.TexDir, Suffix: suffixSty},
			{Label: "classes", Entries: m.Cls, SourceDir: dirs.Cls, DestDir: tgt.TexDir, Suffix: suffixCls},
			{Label: "resources", Entries: m.Res, SourceDir: dirs.Res, DestDir: tgt.TexDir},
			{Label: "autocompletion", Entries: cwl, SourceDir: dirs.Cwl, DestDir: tgt.CompletionDir, Suffix: suffixCwl},
		},
	}
}
