package sitemap

import (
	"context"
	"log/slog"

	"github.com/go-git/go-billy/v5"

	"github.com/macko911/nextjs-sitemap-generator/internal/logfields"
)

// Emit writes entries to sitemap.xml in targetDir and returns the written path.
func Emit(ctx context.Context, fs billy.Filesystem, targetDir string, entries []Entry) (string, error) {
	return EmitFile(ctx, fs, targetDir, DefaultFileName, entries)
}

// EmitFile writes entries to fileName in targetDir and returns the written path.
// Cancellation between entries aborts the write and leaves any existing file untouched.
func EmitFile(ctx context.Context, fs billy.Filesystem, targetDir, fileName string, entries []Entry) (string, error) {
	w, err := NewWriter(fs, targetDir, fileName)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			w.Abort()
			return "", err
		}
		if err := w.Append(e); err != nil {
			w.Abort()
			return "", err
		}
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	slog.Debug("Sitemap written", logfields.Output(w.Path()), logfields.Count(w.Count()))
	return w.Path(), nil
}
