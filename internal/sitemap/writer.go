package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/google/uuid"

	"github.com/macko911/nextjs-sitemap-generator/internal/logfields"
)

// DefaultFileName is the sitemap file written into the target directory.
const DefaultFileName = "sitemap.xml"

const (
	sitemapNS      = "http://www.sitemaps.org/schemas/sitemap/0.9"
	xhtmlNS        = "http://www.w3.org/1999/xhtml"
	xsiNS          = "http://www.w3.org/2001/XMLSchema-instance"
	schemaLocation = "http://www.sitemaps.org/schemas/sitemap/0.9 http://www.sitemaps.org/schemas/sitemap/0.9/sitemap.xsd"
	tempFilePrefix = ".sitemap-"
	outputFileMode = 0o644
	targetDirMode  = 0o755
)

// urlsetStart is the opening envelope element.
var urlsetStart = xml.StartElement{
	Name: xml.Name{Local: "urlset"},
	Attr: []xml.Attr{
		{Name: xml.Name{Local: "xsi:schemaLocation"}, Value: schemaLocation},
		{Name: xml.Name{Local: "xmlns:xsi"}, Value: xsiNS},
		{Name: xml.Name{Local: "xmlns"}, Value: sitemapNS},
		{Name: xml.Name{Local: "xmlns:xhtml"}, Value: xhtmlNS},
	},
}

// Writer streams entries into a temporary file next to the final sitemap and
// renames it into place on Close. Until then the previous sitemap, if any, is
// left untouched.
type Writer struct {
	fs      billy.Filesystem
	path    string
	tmp     billy.File
	tmpPath string
	enc     *xml.Encoder
	count   int
	closed  bool
}

// NewWriter creates targetDir if needed, opens a temporary file in it and
// writes the XML declaration and the opening urlset element.
func NewWriter(fs billy.Filesystem, targetDir, fileName string) (*Writer, error) {
	if fileName == "" {
		fileName = DefaultFileName
	}
	if err := fs.MkdirAll(targetDir, targetDirMode); err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", ErrWriteFailed, targetDir, err)
	}
	// Created with the final mode; nothing is chmodded before the rename.
	tmpPath := fs.Join(targetDir, tempFilePrefix+uuid.NewString())
	tmp, err := fs.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, outputFileMode)
	if err != nil {
		return nil, fmt.Errorf("%w: temp file in %s: %w", ErrWriteFailed, targetDir, err)
	}

	w := &Writer{
		fs:      fs,
		path:    fs.Join(targetDir, fileName),
		tmp:     tmp,
		tmpPath: tmpPath,
	}
	if _, err := io.WriteString(tmp, xml.Header); err != nil {
		w.Abort()
		return nil, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	w.enc = xml.NewEncoder(tmp)
	w.enc.Indent("", "  ")
	if err := w.enc.EncodeToken(urlsetStart); err != nil {
		w.Abort()
		return nil, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return w, nil
}

// Path returns the final sitemap path.
func (w *Writer) Path() string { return w.path }

// Count returns the number of entries appended so far.
func (w *Writer) Count() int { return w.count }

// Append encodes one entry and flushes it to the temporary file.
func (w *Writer) Append(e Entry) error {
	if w.closed {
		return fmt.Errorf("%w: writer already closed", ErrWriteFailed)
	}
	if err := w.enc.Encode(e); err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrWriteFailed, e.Loc, err)
	}
	if err := w.enc.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	w.count++
	return nil
}

// Close writes the closing envelope and renames the temporary file over the
// sitemap. On failure the temporary file is removed.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	if err := w.seal(); err != nil {
		w.Abort()
		return err
	}
	w.closed = true
	return nil
}

func (w *Writer) seal() error {
	if err := w.enc.EncodeToken(urlsetStart.End()); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if _, err := io.WriteString(w.tmp, "\n"); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if err := w.tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if err := w.fs.Rename(w.tmpPath, w.path); err != nil {
		return fmt.Errorf("%w: rename to %s: %w", ErrWriteFailed, w.path, err)
	}
	return nil
}

// Abort discards the temporary file. It is safe to call after Close.
func (w *Writer) Abort() {
	if w.closed {
		return
	}
	w.closed = true
	_ = w.tmp.Close()
	if err := w.fs.Remove(w.tmpPath); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to remove temporary sitemap", logfields.Output(w.tmpPath), logfields.Error(err))
	}
}
