package commands

import (
	"context"
	"time"

	"github.com/macko911/nextjs-sitemap-generator/internal/build"
	"github.com/macko911/nextjs-sitemap-generator/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	SourceFlags `embed:""`

	Debounce time.Duration `help:"Quiet period after the last change before regenerating" default:"300ms"`
}

func (w *WatchCmd) Run(ctx context.Context, root *CLI) error {
	cfg, err := LoadConfig(root, w.SourceFlags)
	if err != nil {
		return err
	}

	svc := build.NewServiceFromConfig(cfg)
	rebuild := func(ctx context.Context) error {
		_, err := svc.Run(ctx, build.Request{Config: cfg})
		return err
	}
	// A failed first run is reported but the watcher still starts so the pages can be fixed.
	_ = rebuild(ctx)

	watcher := watch.New(cfg.PagesDirectory, rebuild, cfg.TargetDirectory)
	watcher.Debounce = w.Debounce
	watcher.IgnoredPaths = cfg.IgnoredPaths
	if cfg.ExportPathMap.File != "" {
		watcher.Files = append(watcher.Files, cfg.ExportPathMap.File)
	}
	return watcher.Run(ctx)
}
