package sync

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kirbynel/texbundle/internal/console"
	"github.com/kirbynel/texbundle/internal/transfer"
)

// Mode selects the direction of a run.
type Mode int

const (
	ModeInstall Mode = iota
	ModeUninstall
)

func (m Mode) String() string {
	if m == ModeUninstall {
		return "Uninstall"
	}
	return "Install"
}

func (m Mode) verb() string {
	if m == ModeUninstall {
		return "uninstall"
	}
	return "install"
}

// Engine performs the install or uninstall pass over a bundle's file
// groups.
type Engine struct {
	transfer transfer.Transferrer
	printer  *console.Printer
	logger   *slog.Logger
	dryRun   bool
}

// NewEngine creates a new sync engine.
func NewEngine(tr transfer.Transferrer, printer *console.Printer, logger *slog.Logger, dryRun bool) *Engine {
	return &Engine{
		transfer: tr,
		printer:  printer,
		logger:   logger,
		dryRun:   dryRun,
	}
}

// Run executes one pass over the bundle. Groups are processed strictly
// in order; the first I/O failure aborts the run, leaving earlier
// actions applied.
func (e *Engine) Run(mode Mode, b Bundle) (*Report, error) {
	e.logger.Info("starting run",
		"mode", mode.verb(),
		"bundle", b.Name,
		"transfer", e.transfer.Name(),
		"dry_run", e.dryRun)

	e.printer.Header(mode.String(), b.Name, e.dryRun)

	// Destination directories are created up front on install, even
	// when every group turns out to be empty.
	if mode == ModeInstall && !e.dryRun {
		if err := b.Target.EnsureDirs(); err != nil {
			return nil, err
		}
	}

	report := &Report{}
	for _, g := range b.Groups {
		res, err := e.syncGroup(mode, g)
		if err != nil {
			return nil, err
		}
		report.Groups = append(report.Groups, res)
	}

	e.logger.Info("run completed",
		"placed", report.Placed(),
		"removed", report.Removed(),
		"skipped", report.SkippedEntries())

	return report, nil
}

// syncGroup processes one file group in manifest order.
func (e *Engine) syncGroup(mode Mode, g FileGroup) (GroupResult, error) {
	res := GroupResult{Label: g.Label}

	if g.Skip() {
		e.logger.Debug("skipping group",
			"group", g.Label,
			"source_dir", g.SourceDir,
			"entries", len(g.Entries))
		e.printer.SkipGroup(g.Label)
		res.Skipped = true
		return res, nil
	}

	e.printer.Group(g.Label, g.SourceDir, g.DestDir)

	for _, entry := range g.Entries {
		name := entry + g.Suffix
		op := FileOp{
			Name:   name,
			Source: filepath.Join(g.SourceDir, name),
			Dest:   filepath.Join(g.DestDir, name),
		}

		var err error
		switch mode {
		case ModeUninstall:
			op.Action, err = e.uninstallFile(op)
		default:
			op.Action, err = e.installFile(op)
		}
		if err != nil {
			return GroupResult{}, fmt.Errorf("failed to %s %s: %w", mode.verb(), name, err)
		}

		res.Ops = append(res.Ops, op)
	}

	return res, nil
}

// installFile places one file. A source that is missing or not a
// regular file is skipped silently; bundles may list optional files.
func (e *Engine) installFile(op FileOp) (Action, error) {
	info, err := os.Stat(op.Source)
	if err != nil || !info.Mode().IsRegular() {
		e.logger.Debug("skipping missing source", "path", op.Source)
		return ActionSkipped, nil
	}

	if e.dryRun {
		e.printer.Placed(op.Name)
		return ActionPlaced, nil
	}

	if err := os.MkdirAll(filepath.Dir(op.Dest), 0755); err != nil {
		return ActionSkipped, err
	}
	if err := e.transfer.Place(op.Source, op.Dest); err != nil {
		return ActionSkipped, err
	}

	e.printer.Placed(op.Name)
	return ActionPlaced, nil
}

// uninstallFile removes one file. A destination that is missing is
// skipped silently; only regular files and symlinks placed by install
// are touched. Lstat keeps dangling links removable.
func (e *Engine) uninstallFile(op FileOp) (Action, error) {
	info, err := os.Lstat(op.Dest)
	if err != nil || !(info.Mode().IsRegular() || info.Mode()&os.ModeSymlink != 0) {
		e.logger.Debug("skipping missing destination", "path", op.Dest)
		return ActionSkipped, nil
	}

	if e.dryRun {
		e.printer.Removed(op.Name)
		return ActionRemoved, nil
	}

	if err := e.transfer.Remove(op.Dest); err != nil {
		return ActionSkipped, err
	}

	e.printer.Removed(op.Name)
	return ActionRemoved, nil
}
