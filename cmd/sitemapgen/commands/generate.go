package commands

import (
	"context"
	"fmt"

	"github.com/macko911/nextjs-sitemap-generator/internal/build"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	SourceFlags `embed:""`

	DryRun bool `name:"dry-run" help:"Resolve pages and derive entries without writing the sitemap"`
}

func (g *GenerateCmd) Run(ctx context.Context, global *Global, root *CLI) error {
	cfg, err := LoadConfig(root, g.SourceFlags)
	if err != nil {
		return err
	}

	svc := build.NewServiceFromConfig(cfg)
	result, err := svc.Run(ctx, build.Request{Config: cfg, DryRun: g.DryRun})
	if err != nil {
		return err
	}

	if g.DryRun {
		_, _ = fmt.Fprintf(global.Out, "Dry run: %d pages, %d entries (not written)\n", result.Pages, result.Entries)
		return nil
	}
	_, _ = fmt.Fprintf(global.Out, "Wrote %d entries to %s\n", result.Entries, result.OutputPath)
	return nil
}
