package build

import (
	"log/slog"

	"github.com/macko911/nextjs-sitemap-generator/internal/config"
	"github.com/macko911/nextjs-sitemap-generator/internal/history"
	"github.com/macko911/nextjs-sitemap-generator/internal/logfields"
	"github.com/macko911/nextjs-sitemap-generator/internal/metrics"
	"github.com/macko911/nextjs-sitemap-generator/internal/pages"
	"github.com/macko911/nextjs-sitemap-generator/internal/sitemap"
)

// Environment variables passed to an export_path_map command.
const (
	EnvPagesDirectory  = "SITEMAPGEN_PAGES_DIRECTORY"
	EnvTargetDirectory = "SITEMAPGEN_TARGET_DIRECTORY"
	EnvBaseURL         = "SITEMAPGEN_BASE_URL"
)

// NewServiceFromConfig builds a service on the OS filesystem. When
// metrics.textfile is set, runs are recorded in a Prometheus registry that is
// written to that file after every run.
func NewServiceFromConfig(cfg *config.Config) *DefaultService {
	svc := NewService()
	if cfg != nil && cfg.Metrics.Textfile != "" {
		rec := metrics.NewPrometheusRecorder(nil)
		svc.WithRecorder(rec).WithTextfile(cfg.Metrics.Textfile, rec.Registry())
	}
	return svc
}

// TransformFromConfig returns the export_path_map hook, or nil when none is configured.
func TransformFromConfig(cfg *config.Config) pages.PathMapTransform {
	hook := cfg.ExportPathMap
	switch {
	case len(hook.Command) > 0:
		return &pages.CommandTransform{
			Command: hook.Command,
			Dir:     hook.Dir,
			Timeout: hook.Timeout,
			Env: []string{
				EnvPagesDirectory + "=" + cfg.PagesDirectory,
				EnvTargetDirectory + "=" + cfg.TargetDirectory,
				EnvBaseURL + "=" + cfg.BaseURL,
			},
		}
	case hook.File != "":
		return &pages.FileTransform{Path: hook.File}
	default:
		return nil
	}
}

// LastModFromConfig returns git history dates when lastmod.source is git. If
// the pages directory has no usable history it logs a warning and returns nil
// so every entry carries the run date.
func LastModFromConfig(cfg *config.Config) sitemap.LastModResolver {
	if cfg.LastMod.Source != config.LastModGit {
		return nil
	}
	dates, err := history.Open(cfg.PagesDirectory)
	if err != nil {
		slog.Warn("Falling back to run date for lastmod", logfields.Path(cfg.PagesDirectory), logfields.Error(err))
		return nil
	}
	return dates
}
