package config

import "github.com/macko911/nextjs-sitemap-generator/internal/sitemap"

const (
	defaultPagesDirectory  = "pages"
	defaultTargetDirectory = "public"
)

// applyDefaults fills unset fields after normalization.
func applyDefaults(c *Config) {
	if c.Version == "" {
		c.Version = CurrentVersion
	}
	if c.PagesDirectory == "" {
		c.PagesDirectory = defaultPagesDirectory
	}
	if c.TargetDirectory == "" {
		c.TargetDirectory = defaultTargetDirectory
	}
	if c.SitemapFile == "" {
		c.SitemapFile = sitemap.DefaultFileName
	}
	if c.LastMod.Source == "" {
		c.LastMod.Source = LastModToday
	}
	if c.Logging.Level == "" {
		c.Logging.Level = LogLevelInfo
	}
	if c.Logging.Format == "" {
		c.Logging.Format = LogFormatText
	}
}
