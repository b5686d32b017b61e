package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/macko911/nextjs-sitemap-generator/internal/build"
)

// PathsCmd implements the 'paths' command.
type PathsCmd struct {
	SourceFlags `embed:""`

	Format string `short:"f" help:"Output format" enum:"yaml,json" default:"yaml"`
}

func (p *PathsCmd) Run(ctx context.Context, global *Global, root *CLI) error {
	cfg, err := LoadConfig(root, p.SourceFlags)
	if err != nil {
		return err
	}

	pathMap, err := build.NewService().ResolvePaths(ctx, cfg)
	if err != nil {
		return err
	}

	var out []byte
	switch p.Format {
	case "json":
		out, err = json.MarshalIndent(pathMap, "", "  ")
		out = append(out, '\n')
	default:
		out, err = yaml.Marshal(pathMap)
	}
	if err != nil {
		return fmt.Errorf("encode path map: %w", err)
	}
	_, err = global.Out.Write(out)
	return err
}
