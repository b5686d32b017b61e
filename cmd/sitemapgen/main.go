package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/macko911/nextjs-sitemap-generator/cmd/sitemapgen/commands"
	serrors "github.com/macko911/nextjs-sitemap-generator/internal/errors"
	"github.com/macko911/nextjs-sitemap-generator/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("sitemapgen"),
		kong.Description("Generate sitemap.xml from a Next.js pages directory."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	global := &commands.Global{Out: os.Stdout}
	if err := parser.Run(global, cli); err != nil {
		stop()
		serrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
