//go:build e2e

package harness

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

const defaultTimeout = 5 * time.Minute

// Suite builds the texbundle binary once and runs it as a subprocess
// against an isolated home directory, so destination resolution never
// touches the real user tree.
type Suite struct {
	// immutable config
	Name        string
	BinPath     string
	Timeout     time.Duration
	KeepWorkdir bool

	// runtime state
	Workdir string
	Home    string

	// extra env for subprocess runs
	Env map[string]string

	// optional logger hook
	Logf func(format string, args ...any)

	// test reference
	t *testing.T
}

// SuiteOption configures a Suite
type SuiteOption func(*Suite)

// WithBinPath uses a prebuilt binary instead of building one
func WithBinPath(path string) SuiteOption {
	return func(s *Suite) { s.BinPath = path }
}

// WithTimeout sets a custom suite timeout
func WithTimeout(d time.Duration) SuiteOption {
	return func(s *Suite) { s.Timeout = d }
}

// WithKeepWorkdir sets whether to keep the work directory on failure
func WithKeepWorkdir(v bool) SuiteOption {
	return func(s *Suite) { s.KeepWorkdir = v }
}

// WithLogf sets a custom logger
func WithLogf(logf func(string, ...any)) SuiteOption {
	return func(s *Suite) { s.Logf = logf }
}

// NewSuite creates a new E2E test suite
func NewSuite(name string, t *testing.T, opts ...SuiteOption) *Suite {
	workdir, err := os.MkdirTemp("", "texbundle-e2e-"+name+"-*")
	if err != nil {
		t.Fatalf("create workdir: %v", err)
	}

	s := &Suite{
		Name:        name,
		Timeout:     defaultTimeout,
		KeepWorkdir: os.Getenv("E2E_KEEP_WORKDIR") == "1",
		Workdir:     workdir,
		Home:        filepath.Join(workdir, "home"),
		Env:         make(map[string]string),
		t:           t,
		Logf:        t.Logf,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Check for env overrides
	if bin := os.Getenv("E2E_TEXBUNDLE_BIN"); bin != "" {
		s.BinPath = bin
	}
	if timeout := os.Getenv("E2E_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			s.Timeout = d
		}
	}

	if err := os.MkdirAll(s.Home, 0755); err != nil {
		t.Fatalf("create home: %v", err)
	}

	return s
}

// BuildBinary compiles the CLI into the work directory unless a
// prebuilt binary was supplied
func (s *Suite) BuildBinary(ctx context.Context) error {
	if s.BinPath != "" {
		s.Logf("Using prebuilt binary %s", s.BinPath)
		return nil
	}

	bin := filepath.Join(s.Workdir, "texbundle")
	if runtime.GOOS == "windows" {
		bin += ".exe"
	}
	s.Logf("Building %s", bin)

	// Get absolute path to project root (one level up from e2e)
	projectRoot, err := filepath.Abs("..")
	if err != nil {
		return fmt.Errorf("get project root: %w", err)
	}

	cmd := exec.CommandContext(ctx, "go", "build", "-o", bin, "./cmd/texbundle")
	cmd.Dir = projectRoot

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		s.Logf("build stdout: %s", stdout.String())
		s.Logf("build stderr: %s", stderr.String())
		return fmt.Errorf("go build: %w", err)
	}

	s.BinPath = bin
	s.Logf("Binary built successfully")
	return nil
}

// Cleanup removes the work directory
func (s *Suite) Cleanup() {
	if s.KeepWorkdir && s.t.Failed() {
		s.Logf("Test failed and E2E_KEEP_WORKDIR=1, keeping %s", s.Workdir)
		return
	}

	if err := os.RemoveAll(s.Workdir); err != nil {
		s.Logf("cleanup: remove workdir: %v", err)
	}
}

// ExecResult represents the result of a binary invocation
type ExecResult struct {
	Cmd      []string
	ExitCode int
	Stdout   string
	Stderr   string
}

// Run invokes the binary in dir with the isolated home environment
func (s *Suite) Run(ctx context.Context, dir string, args ...string) (ExecResult, error) {
	if s.BinPath == "" {
		return ExecResult{}, fmt.Errorf("binary not built")
	}

	cmd := exec.CommandContext(ctx, s.BinPath, args...)
	cmd.Dir = dir
	cmd.Env = s.environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			return ExecResult{}, fmt.Errorf("exec failed: %w", err)
		}
	}

	return ExecResult{
		Cmd:      append([]string{s.BinPath}, args...),
		ExitCode: exitCode,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}, nil
}

// MustRun invokes the binary and fails on non-zero exit
func (s *Suite) MustRun(ctx context.Context, dir string, args ...string) (ExecResult, error) {
	res, err := s.Run(ctx, dir, args...)
	if err != nil {
		return res, err
	}
	if res.ExitCode != 0 {
		return res, fmt.Errorf("command failed with exit %d: %v\nstdout: %s\nstderr: %s",
			res.ExitCode, res.Cmd, res.Stdout, res.Stderr)
	}
	return res, nil
}

// environ builds the subprocess environment: the isolated home plus
// whatever the suite Env map adds. PATH passes through unchanged.
func (s *Suite) environ() []string {
	env := []string{
		"HOME=" + s.Home,
		"USERPROFILE=" + s.Home,
		"APPDATA=" + filepath.Join(s.Home, "AppData", "Roaming"),
		"PATH=" + os.Getenv("PATH"),
	}
	for k, v := range s.Env {
		env = append(env, k+"="+v)
	}
	return env
}

// TexDir returns the platform bundle directory under the isolated home
func (s *Suite) TexDir(bundle string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(s.Home, "Library", "texmf", "tex", "latex", bundle)
	case "windows":
		return filepath.Join(s.Home, "AppData", "Roaming", "MiKTeX", "latex", bundle)
	default:
		return filepath.Join(s.Home, "texmf", "tex", "latex", bundle)
	}
}

// CompletionDir returns the completion directory under the isolated home
func (s *Suite) CompletionDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(s.Home, "AppData", "Roaming", "texstudio", "completion", "user")
	}
	return filepath.Join(s.Home, ".config", "texstudio", "completion", "user")
}

// WriteFile writes a file below the work directory, creating parents
func (s *Suite) WriteFile(path string, content []byte, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("mkdir parent: %w", err)
	}
	if err := os.WriteFile(path, content, mode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// FileExists checks if path exists as a regular file
func (s *Suite) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsSymlink checks if path is a symbolic link
func (s *Suite) IsSymlink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}
