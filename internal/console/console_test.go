package console

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, false)

	p.Header("Install", "demo", false)
	p.Group("packages", "/src/texmf", "/dst/latex/demo")
	p.Placed("foo.sty")
	p.Removed("bar.sty")
	p.SkipGroup("resources")

	want := strings.Join([]string{
		"[ Install demo ]",
		"==> packages",
		"    From: /src/texmf",
		"    To:   /dst/latex/demo",
		"  +foo.sty",
		"  -bar.sty",
		"==> resources (skipped)",
		"",
	}, "\n")

	if got := buf.String(); got != want {
		t.Errorf("output mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrinterDryRunHeader(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, false)

	p.Header("Uninstall", "demo", true)

	if got := buf.String(); got != "[ Uninstall demo ] (dry-run)\n" {
		t.Errorf("header = %q", got)
	}
}

func TestPrinterColored(t *testing.T) {
	// Color codes depend on terminal detection, so only check that the
	// payload survives decoration.
	var buf bytes.Buffer
	p := New(&buf, true)

	p.Placed("foo.sty")

	if !strings.Contains(buf.String(), "+foo.sty") {
		t.Errorf("payload missing from %q", buf.String())
	}
}
