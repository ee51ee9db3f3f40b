package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kirbynel/texbundle/internal/config"
	"github.com/kirbynel/texbundle/internal/console"
	"github.com/kirbynel/texbundle/internal/manifest"
	"github.com/kirbynel/texbundle/internal/scaffold"
	"github.com/kirbynel/texbundle/internal/sync"
	"github.com/kirbynel/texbundle/internal/target"
	"github.com/kirbynel/texbundle/internal/transfer"
	"github.com/spf13/cobra"
)

var (
	// Set by goreleaser
	version = "dev"
	commit  = "none"
	date    = "unknown"

	// Global flags
	settingsFile string
	logLevel     string
	logFormat    string
	noColor      bool

	// Root command flags
	install      bool
	uninstall    bool
	manifestFile string
	link         bool
	dryRun       bool

	// Init command flags
	force bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "texbundle",
	Short: "Install LaTeX bundles into the personal TeX tree",
	Long: `texbundle deploys a bundle of LaTeX packages, classes, resources and
TeXstudio autocompletion files from a project directory into the
OS-specific locations where the TeX distribution and the editor pick
them up automatically.

The bundle is described by a small JSON manifest (texbundle.json by
default). Files are copied by default; with --link they are symlinked
back into the project so edits take effect without reinstalling.`,
	SilenceUsage: true,
	RunE:         runRoot,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a bundle manifest interactively",
	Long: `Init asks for the bundle name and its packages, classes and resource
files, then writes a texbundle.json into the current directory and
creates the source directories the answers imply.`,
	RunE: runInit,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("texbundle %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "settings file (default is $HOME/.config/texbundle/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Root command flags
	rootCmd.Flags().BoolVar(&install, "install", false, "install the bundle")
	rootCmd.Flags().BoolVar(&uninstall, "uninstall", false, "remove an installed bundle")
	rootCmd.Flags().StringVar(&manifestFile, "config", manifest.DefaultFile, "bundle manifest file")
	rootCmd.Flags().BoolVar(&link, "link", false, "symlink files instead of copying")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be done without making changes")
	rootCmd.MarkFlagsOneRequired("install", "uninstall")
	rootCmd.MarkFlagsMutuallyExclusive("install", "uninstall")

	// Init command flags
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing manifest")

	// Add commands
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	logger := setupLogger(cfg)

	m, err := manifest.Load(manifestFile)
	if err != nil {
		return err
	}

	dirs, err := m.SourceDirs()
	if err != nil {
		return err
	}

	tgt, err := target.Resolve(m.Name, target.Overrides{
		TexRoot:       cfg.TexmfDir,
		CompletionDir: cfg.CompletionDir,
	})
	if err != nil {
		return err
	}

	logger.Debug("resolved destinations",
		"bundle", m.Name,
		"tex_dir", tgt.TexDir,
		"completion_dir", tgt.CompletionDir)

	tr, err := pickTransferrer(cfg)
	if err != nil {
		return err
	}

	mode := sync.ModeInstall
	if uninstall {
		mode = sync.ModeUninstall
	}

	printer := console.New(os.Stdout, !noColor)
	engine := sync.NewEngine(tr, printer, logger, dryRun)

	if _, err := engine.Run(mode, sync.BuildBundle(m, dirs, tgt)); err != nil {
		logger.Error("run failed", "error", err)
		return err
	}

	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	b, err := scaffold.Ask()
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	path, err := b.Write(cwd, force)
	if err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", path)
	return nil
}

// pickTransferrer maps the settings and the --link flag to a transfer
// strategy. Symlink mode probes for the required privilege before any
// destination is touched.
func pickTransferrer(cfg *config.Settings) (transfer.Transferrer, error) {
	mode := cfg.Transfer
	if link {
		mode = config.TransferSymlink
	}

	if mode == config.TransferSymlink {
		s := transfer.Symlink{}
		if err := s.Probe(); err != nil {
			return nil, err
		}
		return s, nil
	}

	return transfer.Copy{}, nil
}

// setupLogger builds the diagnostic logger. Flags override the
// settings file; the console printer owns stdout, so logs go to
// stderr.
func setupLogger(cfg *config.Settings) *slog.Logger {
	levelName := cfg.LogLevel
	if logLevel != "" {
		levelName = logLevel
	}
	format := cfg.LogFormat
	if logFormat != "" {
		format = logFormat
	}

	// Parse log level
	var level slog.Level
	switch levelName {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Create handler based on format
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: level}

	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

func loadSettings() (*config.Settings, error) {
	path := settingsFile
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	return config.Load(path)
}
