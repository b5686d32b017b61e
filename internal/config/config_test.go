package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	serrors "github.com/macko911/nextjs-sitemap-generator/internal/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sitemap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FullExample(t *testing.T) {
	path := writeConfig(t, `
version: "1.0"
base_url: https://example.com/
alternate_urls:
  en: https://en.example.com
  fr: https://fr.example.com/
pages_directory: ./site/pages
target_directory: ./out/
ignored_paths: [admin, " admin ", ""]
ignored_extensions: [.css, map, css]
ignore_index_files: true
export_path_map:
  command: [node, scripts/export-paths.js]
  timeout: 30s
pages_config:
  /About: { priority: 0.5 }
  /blog: { priority: 0.7, changefreq: Daily }
lastmod: { source: GIT }
logging: { level: DEBUG, format: json }
metrics: { textfile: ./metrics/sitemap.prom }
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "https://example.com", cfg.BaseURL)
	require.Equal(t, map[string]string{"en": "https://en.example.com", "fr": "https://fr.example.com"}, cfg.AlternateURLs)
	require.Equal(t, filepath.Join("site", "pages"), cfg.PagesDirectory)
	require.Equal(t, "out", cfg.TargetDirectory)
	require.Equal(t, "sitemap.xml", cfg.SitemapFile)
	require.Equal(t, filepath.Join("out", "sitemap.xml"), cfg.SitemapPath())
	require.Equal(t, []string{"admin"}, cfg.IgnoredPaths)
	require.Equal(t, []string{"css", "map"}, cfg.IgnoredExtensions)
	require.True(t, cfg.IgnoreIndexFiles)
	require.Equal(t, []string{"node", "scripts/export-paths.js"}, cfg.ExportPathMap.Command)
	require.Equal(t, 30*time.Second, cfg.ExportPathMap.Timeout)
	require.True(t, cfg.ExportPathMap.Enabled())

	require.Contains(t, cfg.PagesConfig, "/about")
	require.NotContains(t, cfg.PagesConfig, "/About")
	require.InDelta(t, 0.5, *cfg.PagesConfig["/about"].Priority, 1e-9)
	require.Equal(t, "daily", cfg.PagesConfig["/blog"].ChangeFreq)

	require.Equal(t, LastModGit, cfg.LastMod.Source)
	require.Equal(t, LogLevelDebug, cfg.Logging.Level)
	require.Equal(t, LogFormatJSON, cfg.Logging.Format)
	require.Equal(t, filepath.Join("metrics", "sitemap.prom"), cfg.Metrics.Textfile)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "base_url: https://x.com\n"))
	require.NoError(t, err)

	require.Equal(t, CurrentVersion, cfg.Version)
	require.Equal(t, "pages", cfg.PagesDirectory)
	require.Equal(t, "public", cfg.TargetDirectory)
	require.Equal(t, "sitemap.xml", cfg.SitemapFile)
	require.Equal(t, LastModToday, cfg.LastMod.Source)
	require.Equal(t, LogLevelInfo, cfg.Logging.Level)
	require.Equal(t, LogFormatText, cfg.Logging.Format)
	require.False(t, cfg.ExportPathMap.Enabled())
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("SITEMAPGEN_TEST_BASE", "https://env.example.com")

	cfg, err := Load(writeConfig(t, "base_url: ${SITEMAPGEN_TEST_BASE}\n"))
	require.NoError(t, err)
	require.Equal(t, "https://env.example.com", cfg.BaseURL)
}

func TestLoad_UnknownEnumsFallBack(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
base_url: https://x.com
lastmod: { source: mtime }
logging: { level: loud, format: xml }
`))
	require.NoError(t, err)
	require.Equal(t, LastModToday, cfg.LastMod.Source)
	require.Equal(t, LogLevelInfo, cfg.Logging.Level)
	require.Equal(t, LogFormatText, cfg.Logging.Format)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.True(t, serrors.IsCategory(err, serrors.CategoryConfig))
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "base_url: [\n"))
	require.True(t, serrors.IsCategory(err, serrors.CategoryConfig))
}

func TestLoad_UnsupportedVersion(t *testing.T) {
	_, err := Load(writeConfig(t, "version: \"2.0\"\nbase_url: https://x.com\n"))
	require.True(t, serrors.IsCategory(err, serrors.CategoryConfig))
	require.Contains(t, err.Error(), "unsupported configuration version")
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing base url", "pages_directory: pages\n", "base_url"},
		{"relative base url", "base_url: example.com\n", "base_url"},
		{"bad alternate url", "base_url: https://x.com\nalternate_urls: {fr: not-a-url}\n", "alternate_urls[fr]"},
		{"bad changefreq", "base_url: https://x.com\npages_config: {/a: {changefreq: sometimes}}\n", "pages_config[/a].changefreq"},
		{"priority above one", "base_url: https://x.com\npages_config: {/a: {priority: 1.5}}\n", "pages_config[/a].priority"},
		{"page key without slash", "base_url: https://x.com\npages_config: {about: {priority: 0.5}}\n", "pages_config[about]"},
		{"command and file", "base_url: https://x.com\nexport_path_map: {command: [x], file: paths.yaml}\n", "export_path_map"},
		{"sitemap file with directory", "base_url: https://x.com\nsitemap_file: out/sitemap.xml\n", "sitemap_file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			se, ok := serrors.As(err)
			require.True(t, ok)
			require.Equal(t, serrors.CategoryValidation, se.Category)
			require.Equal(t, tt.field, se.Context["field"])
		})
	}
}

func TestLoad_OverridesWinOverFile(t *testing.T) {
	path := writeConfig(t, "base_url: https://file.example.com\npages_directory: src/pages\n")

	cfg, err := Load(path, func(c *Config) {
		c.BaseURL = "https://flag.example.com/"
		c.IgnoreIndexFiles = true
	})
	require.NoError(t, err)
	require.Equal(t, "https://flag.example.com", cfg.BaseURL)
	require.Equal(t, "src/pages", cfg.PagesDirectory)
	require.True(t, cfg.IgnoreIndexFiles)
}

func TestFinalize_FromFlags(t *testing.T) {
	cfg := &Config{BaseURL: "https://x.com/", IgnoreIndexFiles: true}
	require.NoError(t, Finalize(cfg))
	require.Equal(t, "https://x.com", cfg.BaseURL)
	require.Equal(t, "pages", cfg.PagesDirectory)
}

func TestNormalizeConfig_Warnings(t *testing.T) {
	cfg := &Config{
		BaseURL: "https://x.com/",
		Logging: LoggingConfig{Level: "WARNING"},
	}
	res, err := NormalizeConfig(cfg)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 2)
	require.Equal(t, LogLevelWarn, cfg.Logging.Level)

	_, err = NormalizeConfig(nil)
	require.Error(t, err)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitemap.yaml")
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://example.com", cfg.BaseURL)
	require.True(t, cfg.IgnoreIndexFiles)
	require.Equal(t, "monthly", cfg.PagesConfig["/about"].ChangeFreq)

	err = Init(path, false)
	require.True(t, serrors.IsCategory(err, serrors.CategoryConfig))
	require.NoError(t, Init(path, true))
}

func TestLogLevelSlog(t *testing.T) {
	require.Equal(t, slog.LevelDebug, LogLevelDebug.Slog())
	require.Equal(t, slog.LevelInfo, LogLevelInfo.Slog())
	require.Equal(t, slog.LevelWarn, LogLevelWarn.Slog())
	require.Equal(t, slog.LevelError, LogLevelError.Slog())
	require.Equal(t, slog.LevelInfo, LogLevel("").Slog())
}
