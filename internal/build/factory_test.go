package build

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/macko911/nextjs-sitemap-generator/internal/config"
	"github.com/macko911/nextjs-sitemap-generator/internal/pages"
)

func TestTransformFromConfig(t *testing.T) {
	cfg := &config.Config{BaseURL: "https://x.com", PagesDirectory: "pages", TargetDirectory: "public"}
	require.Nil(t, TransformFromConfig(cfg))

	cfg.ExportPathMap = config.ExportPathMapConfig{Command: []string{"node", "export.js"}, Dir: "site", Timeout: time.Second}
	cmd, ok := TransformFromConfig(cfg).(*pages.CommandTransform)
	require.True(t, ok)
	require.Equal(t, []string{"node", "export.js"}, cmd.Command)
	require.Equal(t, time.Second, cmd.Timeout)
	require.Equal(t, "site", cmd.Dir)
	require.Contains(t, cmd.Env, EnvBaseURL+"=https://x.com")
	require.Contains(t, cmd.Env, EnvPagesDirectory+"=pages")

	cfg.ExportPathMap = config.ExportPathMapConfig{File: "paths.yaml"}
	file, ok := TransformFromConfig(cfg).(*pages.FileTransform)
	require.True(t, ok)
	require.Equal(t, "paths.yaml", file.Path)
}

func TestLastModFromConfig(t *testing.T) {
	cfg := &config.Config{PagesDirectory: t.TempDir()}
	cfg.LastMod.Source = config.LastModToday
	require.Nil(t, LastModFromConfig(cfg))

	// not a repository: falls back to the run date
	cfg.LastMod.Source = config.LastModGit
	require.Nil(t, LastModFromConfig(cfg))
}

func TestNewServiceFromConfig_OnDiskWithTextfile(t *testing.T) {
	root := t.TempDir()
	pagesDir := filepath.Join(root, "pages")
	require.NoError(t, os.MkdirAll(filepath.Join(pagesDir, "blog"), 0o755))
	for _, f := range []string{"index.js", "about.js", "blog/index.js"} {
		require.NoError(t, os.WriteFile(filepath.Join(pagesDir, f), []byte("page"), 0o600))
	}
	staticMap := filepath.Join(root, "paths.yaml")
	require.NoError(t, os.WriteFile(staticMap, []byte(`/: {page: /index}
/about: {page: /about}
/blog/hello: {page: "/blog/[slug]"}
`), 0o600))

	cfg := &config.Config{
		BaseURL:          "https://x.com",
		PagesDirectory:   pagesDir,
		TargetDirectory:  filepath.Join(root, "public"),
		IgnoreIndexFiles: true,
		ExportPathMap:    config.ExportPathMapConfig{File: staticMap},
		Metrics:          config.MetricsConfig{Textfile: filepath.Join(root, "sitemap.prom")},
	}
	require.NoError(t, config.Finalize(cfg))

	res, err := NewServiceFromConfig(cfg).Run(context.Background(), Request{Config: cfg})
	require.NoError(t, err)
	require.Equal(t, cfg.SitemapPath(), res.OutputPath)
	require.Equal(t, 3, res.Entries)
	require.Equal(t, "/blog/[slug]", res.PathMap["/blog/hello"].Page)

	info, err := os.Stat(res.OutputPath)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	out, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)
	require.Contains(t, string(out), "<loc>https://x.com/blog/hello</loc>")
	require.NotContains(t, string(out), "<loc>https://x.com/blog/</loc>")

	prom, err := os.ReadFile(cfg.Metrics.Textfile)
	require.NoError(t, err)
	require.Contains(t, string(prom), "sitemapgen_entries_written 3")
	require.Contains(t, string(prom), `sitemapgen_run_outcomes_total{outcome="success"} 1`)
}
