package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer renders the user-facing progress of a run: one banner, one
// block per file group, one line per file action. Everything goes to
// the injected writer so tests can capture it.
type Printer struct {
	out    io.Writer
	banner func(a ...interface{}) string
	group  func(a ...interface{}) string
	plus   func(a ...interface{}) string
	minus  func(a ...interface{}) string
}

// New creates a Printer writing to out. With colored false all
// decoration functions degrade to plain text.
func New(out io.Writer, colored bool) *Printer {
	p := &Printer{out: out}
	if colored {
		p.banner = color.New(color.FgCyan, color.Bold).SprintFunc()
		p.group = color.New(color.FgCyan).SprintFunc()
		p.plus = color.New(color.FgGreen).SprintFunc()
		p.minus = color.New(color.FgRed).SprintFunc()
	} else {
		p.banner = fmt.Sprint
		p.group = fmt.Sprint
		p.plus = fmt.Sprint
		p.minus = fmt.Sprint
	}
	return p
}

// Header prints the run banner.
func (p *Printer) Header(action, bundle string, dryRun bool) {
	suffix := ""
	if dryRun {
		suffix = " (dry-run)"
	}
	fmt.Fprintf(p.out, "%s%s\n", p.banner(fmt.Sprintf("[ %s %s ]", action, bundle)), suffix)
}

// Group announces a file group about to be synchronized.
func (p *Printer) Group(label, from, to string) {
	fmt.Fprintf(p.out, "%s %s\n", p.group("==>"), label)
	fmt.Fprintf(p.out, "    From: %s\n", from)
	fmt.Fprintf(p.out, "    To:   %s\n", to)
}

// SkipGroup announces a group with nothing to do.
func (p *Printer) SkipGroup(label string) {
	fmt.Fprintf(p.out, "%s %s (skipped)\n", p.group("==>"), label)
}

// Placed reports one installed file.
func (p *Printer) Placed(name string) {
	fmt.Fprintf(p.out, "  %s\n", p.plus("+"+name))
}

// Removed reports one removed file.
func (p *Printer) Removed(name string) {
	fmt.Fprintf(p.out, "  %s\n", p.minus("-"+name))
}
