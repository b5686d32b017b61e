// Package config loads and validates the sitemapgen YAML configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	serrors "github.com/macko911/nextjs-sitemap-generator/internal/errors"
	"github.com/macko911/nextjs-sitemap-generator/internal/sitemap"
)

const (
	// DefaultPath is the configuration file used when none is given.
	DefaultPath = "sitemap.yaml"
	// CurrentVersion is the configuration format version written by Init.
	CurrentVersion = "1.0"
)

// Config is the complete generator configuration.
type Config struct {
	Version           string              `yaml:"version"`
	BaseURL           string              `yaml:"base_url" validate:"required,url"`
	AlternateURLs     map[string]string   `yaml:"alternate_urls,omitempty" validate:"omitempty,dive,keys,required,endkeys,url"`
	PagesDirectory    string              `yaml:"pages_directory"`
	TargetDirectory   string              `yaml:"target_directory"`
	SitemapFile       string              `yaml:"sitemap_file"`
	IgnoredPaths      []string            `yaml:"ignored_paths,omitempty"`
	IgnoredExtensions []string            `yaml:"ignored_extensions,omitempty"`
	IgnoreIndexFiles  bool                `yaml:"ignore_index_files"`
	FailOnCollision   bool                `yaml:"fail_on_collision"`
	ExportPathMap     ExportPathMapConfig `yaml:"export_path_map,omitempty"`
	PagesConfig       sitemap.PagesConfig `yaml:"pages_config,omitempty" validate:"omitempty,dive,keys,startswith=/,endkeys"`
	LastMod           LastModConfig       `yaml:"lastmod"`
	Logging           LoggingConfig       `yaml:"logging"`
	Metrics           MetricsConfig       `yaml:"metrics,omitempty"`
}

// ExportPathMapConfig selects an optional hook that rewrites the discovered path map.
// Command and File are mutually exclusive.
type ExportPathMapConfig struct {
	// Command is run with the path map as JSON on stdin and must print the replacement map.
	Command []string `yaml:"command,omitempty"`
	// Dir is the working directory of Command; empty means the current directory.
	Dir string `yaml:"dir,omitempty"`
	// File is a static YAML path map that replaces the discovered one.
	File string `yaml:"file,omitempty"`
	// Timeout bounds Command; zero waits indefinitely.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// Enabled reports whether a hook is configured.
func (e ExportPathMapConfig) Enabled() bool {
	return len(e.Command) > 0 || e.File != ""
}

// LastModConfig selects where lastmod dates come from.
type LastModConfig struct {
	Source LastModSource `yaml:"source"`
}

// LoggingConfig controls log level and output format.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig controls Prometheus textfile export.
type MetricsConfig struct {
	// Textfile receives the run's metrics after every run when set.
	Textfile string `yaml:"textfile,omitempty"`
}

// SitemapPath returns the output file path.
func (c *Config) SitemapPath() string {
	return filepath.Join(c.TargetDirectory, c.SitemapFile)
}

// Override adjusts a parsed configuration before it is finalized.
type Override func(*Config)

// Load reads, normalizes, defaults, and validates the configuration at path.
// Overrides are applied after parsing, so command-line flags win over the file.
func Load(path string, overrides ...Override) (*Config, error) {
	if loaded, err := loadEnvFile(); err == nil {
		slog.Debug("Loaded environment file", slog.String("file", loaded))
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, serrors.ConfigNotFound(path)
	}
	// #nosec G304 -- path is supplied by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, serrors.ConfigInvalid(path, err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, serrors.ConfigInvalid(path, fmt.Errorf("parse yaml: %w", err))
	}
	if cfg.Version != "" && cfg.Version != CurrentVersion {
		return nil, serrors.ConfigInvalid(path,
			fmt.Errorf("unsupported configuration version %q (expected %s)", cfg.Version, CurrentVersion))
	}

	for _, o := range overrides {
		o(&cfg)
	}
	if err := Finalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Finalize normalizes cfg, applies defaults, and validates the result. Load
// calls it; so do callers that assemble a configuration from flags alone.
func Finalize(cfg *Config) error {
	res, err := NormalizeConfig(cfg)
	if err != nil {
		return serrors.InternalError("normalize configuration", err)
	}
	for _, w := range res.Warnings {
		slog.Warn("Config normalization", slog.String("detail", w))
	}
	applyDefaults(cfg)
	return ValidateConfig(cfg)
}

// Init writes an example configuration file. An existing file is kept unless force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return serrors.New(serrors.CategoryConfig, serrors.SeverityError,
			"configuration file already exists (use --force to overwrite)").WithContext("path", path)
	}

	half := 0.5
	example := Config{
		Version:           CurrentVersion,
		BaseURL:           "https://example.com",
		AlternateURLs:     map[string]string{"fr": "https://fr.example.com"},
		PagesDirectory:    defaultPagesDirectory,
		TargetDirectory:   defaultTargetDirectory,
		SitemapFile:       sitemap.DefaultFileName,
		IgnoredPaths:      []string{"admin"},
		IgnoredExtensions: []string{"css", "map"},
		IgnoreIndexFiles:  true,
		PagesConfig: sitemap.PagesConfig{
			"/about": {Priority: &half, ChangeFreq: "monthly"},
		},
		LastMod: LastModConfig{Source: LastModToday},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return serrors.InternalError("marshal example configuration", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return serrors.Wrap(err, serrors.CategoryFileSystem, serrors.SeverityError,
			"failed to write configuration file").WithContext("path", path)
	}
	return nil
}
