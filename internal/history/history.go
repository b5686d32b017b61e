// Package history reads page modification dates from git history.
package history

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/macko911/nextjs-sitemap-generator/internal/logfields"
	"github.com/macko911/nextjs-sitemap-generator/internal/pages"
)

// ErrNoHistory indicates the pages directory is not inside a git repository
// with at least one commit.
var ErrNoHistory = errors.New("no git history for pages directory")

// Dates resolves the last commit time of each page's source file.
// Results are cached per source for the lifetime of the value.
type Dates struct {
	repo   *git.Repository
	head   plumbing.Hash
	prefix string
	cache  map[string]time.Time
}

// Open locates the repository containing pagesDir, walking up parent directories.
func Open(pagesDir string) (*Dates, error) {
	abs, err := filepath.Abs(pagesDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoHistory, err)
	}
	if resolved, evalErr := filepath.EvalSymlinks(abs); evalErr == nil {
		abs = resolved
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNoHistory, pagesDir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNoHistory, pagesDir, err)
	}
	root := wt.Filesystem.Root()
	if resolved, evalErr := filepath.EvalSymlinks(root); evalErr == nil {
		root = resolved
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNoHistory, pagesDir, err)
	}
	ref, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNoHistory, pagesDir, err)
	}

	slog.Debug("Opened git history for lastmod dates",
		logfields.Path(root),
		slog.String("head", ref.Hash().String()))
	return &Dates{
		repo:   repo,
		head:   ref.Hash(),
		prefix: filepath.ToSlash(rel),
		cache:  make(map[string]time.Time),
	}, nil
}

// LastMod returns the committer time of the most recent commit touching the
// page's source file. Pages without a source or without history report false.
func (d *Dates) LastMod(desc pages.PageDescriptor) (time.Time, bool) {
	if desc.Source == "" {
		return time.Time{}, false
	}
	file := path.Join(d.prefix, desc.Source)
	if when, ok := d.cache[file]; ok {
		return when, !when.IsZero()
	}

	when, err := d.lookup(file)
	if err != nil {
		slog.Debug("No git date for page", logfields.Source(file), logfields.Error(err))
	}
	d.cache[file] = when
	return when, !when.IsZero()
}

func (d *Dates) lookup(file string) (time.Time, error) {
	iter, err := d.repo.Log(&git.LogOptions{From: d.head, FileName: &file})
	if err != nil {
		return time.Time{}, err
	}
	defer iter.Close()

	c, err := iter.Next()
	if errors.Is(err, io.EOF) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return c.Committer.When, nil
}
