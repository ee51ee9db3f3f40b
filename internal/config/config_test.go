package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
log_level: debug
log_format: json
transfer: symlink
texmf_dir: /opt/texmf/tex/latex
completion_dir: /opt/completion
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if s.LogLevel != "debug" {
		t.Errorf("expected log_level debug, got %s", s.LogLevel)
	}
	if s.LogFormat != "json" {
		t.Errorf("expected log_format json, got %s", s.LogFormat)
	}
	if s.Transfer != TransferSymlink {
		t.Errorf("expected transfer symlink, got %s", s.Transfer)
	}
	if s.TexmfDir != "/opt/texmf/tex/latex" {
		t.Errorf("unexpected texmf_dir: %s", s.TexmfDir)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if s.LogLevel != "info" || s.LogFormat != "text" {
		t.Errorf("expected default logging, got level=%s format=%s", s.LogLevel, s.LogFormat)
	}
	if s.Transfer != TransferCopy {
		t.Errorf("expected default transfer copy, got %s", s.Transfer)
	}
	if s.TexmfDir != "" || s.CompletionDir != "" {
		t.Errorf("expected empty overrides, got %s / %s", s.TexmfDir, s.CompletionDir)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("transfer: [broken"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       Settings
		wantErr bool
	}{
		{
			name: "valid settings",
			s: Settings{
				LogLevel:  "info",
				LogFormat: "text",
				Transfer:  TransferCopy,
			},
			wantErr: false,
		},
		{
			name: "valid with absolute overrides",
			s: Settings{
				LogLevel:      "warn",
				LogFormat:     "json",
				Transfer:      TransferSymlink,
				TexmfDir:      "/opt/texmf",
				CompletionDir: "/opt/completion",
			},
			wantErr: false,
		},
		{
			name: "invalid log level",
			s: Settings{
				LogLevel:  "verbose",
				LogFormat: "text",
				Transfer:  TransferCopy,
			},
			wantErr: true,
		},
		{
			name: "invalid log format",
			s: Settings{
				LogLevel:  "info",
				LogFormat: "xml",
				Transfer:  TransferCopy,
			},
			wantErr: true,
		},
		{
			name: "invalid transfer mode",
			s: Settings{
				LogLevel:  "info",
				LogFormat: "text",
				Transfer:  "hardlink",
			},
			wantErr: true,
		},
		{
			name: "relative texmf_dir",
			s: Settings{
				LogLevel:  "info",
				LogFormat: "text",
				Transfer:  TransferCopy,
				TexmfDir:  "relative/texmf",
			},
			wantErr: true,
		},
		{
			name: "relative completion_dir",
			s: Settings{
				LogLevel:      "info",
				LogFormat:     "text",
				Transfer:      TransferCopy,
				CompletionDir: "relative/completion",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	s := Settings{}
	s.applyDefaults()

	if s.LogLevel != "info" || s.LogFormat != "text" || s.Transfer != TransferCopy {
		t.Errorf("applyDefaults() = %+v", s)
	}

	// Explicit values must not be overwritten
	s2 := Settings{LogLevel: "error", Transfer: TransferSymlink}
	s2.applyDefaults()

	if s2.LogLevel != "error" {
		t.Errorf("applyDefaults() overwrote log_level, got %s", s2.LogLevel)
	}
	if s2.Transfer != TransferSymlink {
		t.Errorf("applyDefaults() overwrote transfer, got %s", s2.Transfer)
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("TEXBUNDLE_TEST_ROOT", "/srv/tex")

	s := Settings{
		TexmfDir:      "${TEXBUNDLE_TEST_ROOT}/texmf",
		CompletionDir: "${TEXBUNDLE_TEST_ROOT}/completion",
	}
	s.expandEnv()

	if s.TexmfDir != "/srv/tex/texmf" {
		t.Errorf("TexmfDir = %s", s.TexmfDir)
	}
	if s.CompletionDir != "/srv/tex/completion" {
		t.Errorf("CompletionDir = %s", s.CompletionDir)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("HOME", "/home/user")

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath failed: %v", err)
	}

	want := filepath.Join("/home/user", ".config", "texbundle", "config.yaml")
	if path != want {
		t.Errorf("DefaultPath() = %s, want %s", path, want)
	}
}
