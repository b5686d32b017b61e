// Package commands implements the sitemapgen subcommands.
package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/macko911/nextjs-sitemap-generator/internal/config"
	"github.com/macko911/nextjs-sitemap-generator/internal/logfields"
	"github.com/macko911/nextjs-sitemap-generator/internal/observability"
)

// Global carries state shared by every subcommand.
type Global struct {
	// Out receives command output meant for the user. Logs go to stderr.
	Out io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"sitemap.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" default:"withargs" help:"Generate sitemap.xml from the pages directory"`
	Paths    PathsCmd    `cmd:"" help:"Print the resolved path map without writing a sitemap"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
	Watch    WatchCmd    `cmd:"" help:"Regenerate the sitemap whenever pages change"`
}

// AfterApply runs after flag parsing; sets up logging until the configuration is loaded.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(observability.NewLogger(os.Stderr, level, string(config.LogFormatText)))
	return nil
}

// configureLogging switches to the configured level and format. --verbose keeps debug.
func (c *CLI) configureLogging(cfg *config.Config) {
	level := cfg.Logging.Level.Slog()
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(observability.NewLogger(os.Stderr, level, string(cfg.Logging.Format)))
}

// SourceFlags override configuration values from the command line.
type SourceFlags struct {
	BaseURL          string `name:"base-url" help:"Site base URL (overrides base_url)"`
	PagesDir         string `name:"pages-dir" short:"p" help:"Pages directory (overrides pages_directory)"`
	TargetDir        string `name:"target-dir" short:"t" help:"Output directory (overrides target_directory)"`
	IgnoreIndexFiles bool   `name:"ignore-index-files" help:"Strip trailing /index from page URLs"`
}

func (f SourceFlags) apply(cfg *config.Config) {
	if f.BaseURL != "" {
		cfg.BaseURL = f.BaseURL
	}
	if f.PagesDir != "" {
		cfg.PagesDirectory = f.PagesDir
	}
	if f.TargetDir != "" {
		cfg.TargetDirectory = f.TargetDir
	}
	if f.IgnoreIndexFiles {
		cfg.IgnoreIndexFiles = true
	}
}

// LoadConfig loads the configuration file with flag overrides applied. When the
// default file does not exist the configuration is assembled from flags alone.
func LoadConfig(root *CLI, flags SourceFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if _, statErr := os.Stat(root.Config); os.IsNotExist(statErr) && root.Config == config.DefaultPath {
		slog.Debug("No configuration file; using command-line flags", logfields.Path(root.Config))
		cfg = &config.Config{}
		flags.apply(cfg)
		err = config.Finalize(cfg)
	} else {
		cfg, err = config.Load(root.Config, flags.apply)
	}
	if err != nil {
		return nil, err
	}
	root.configureLogging(cfg)
	return cfg, nil
}
