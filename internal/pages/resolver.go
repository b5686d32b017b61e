package pages

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"

	"github.com/macko911/nextjs-sitemap-generator/internal/logfields"
	perrors "github.com/macko911/nextjs-sitemap-generator/internal/pages/errors"
	"github.com/macko911/nextjs-sitemap-generator/internal/util/sets"
)

// Options controls which directory entries become pages and how they are named.
type Options struct {
	// IgnoredPaths skips any file or directory whose name contains one of these substrings.
	IgnoredPaths []string
	// IgnoredExtensions skips files whose extension (text after the final dot) matches exactly.
	IgnoredExtensions []string
	// IgnoreIndexFiles collapses "index" file names onto their parent path.
	IgnoreIndexFiles bool
	// FailOnCollision turns a duplicate logical path into an error instead of a warning.
	FailOnCollision bool
}

// Resolver walks a page directory tree and builds a PathMap.
type Resolver struct {
	fs           billy.Filesystem
	opts         Options
	ignoredPaths []string
	ignoredExt   sets.Set[string]
}

// NewResolver creates a resolver reading from fs.
func NewResolver(fs billy.Filesystem, opts Options) *Resolver {
	ignored := make([]string, 0, len(opts.IgnoredPaths))
	for _, p := range opts.IgnoredPaths {
		if p != "" {
			ignored = append(ignored, p)
		}
	}
	return &Resolver{
		fs:           fs,
		opts:         opts,
		ignoredPaths: ignored,
		ignoredExt:   sets.New(opts.IgnoredExtensions...),
	}
}

// Resolve walks root and returns the logical path of every eligible file beneath it.
// Entries are visited in lexicographic order so collisions resolve the same way on
// every platform: the entry visited last wins.
func (r *Resolver) Resolve(root string) (PathMap, error) {
	info, err := r.fs.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s: %w", perrors.ErrRootNotFound, root, err)
		}
		return nil, fmt.Errorf("%w: %s: %w", perrors.ErrWalkFailed, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", perrors.ErrRootNotFound, root)
	}

	pathMap, err := r.walk(root, "")
	if err != nil {
		return nil, err
	}
	slog.Debug("Resolved page paths", logfields.Path(root), logfields.Count(len(pathMap)))
	return pathMap, nil
}

// walk resolves dir, whose logical directory (relative to the root) is rel.
func (r *Resolver) walk(dir, rel string) (PathMap, error) {
	entries, err := r.fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", perrors.ErrWalkFailed, dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	pathMap := make(PathMap)
	for _, entry := range entries {
		name := entry.Name()
		if r.skipEntry(name) {
			continue
		}

		if entry.IsDir() {
			child, err := r.walk(r.fs.Join(dir, name), rel+"/"+name)
			if err != nil {
				return nil, err
			}
			for _, key := range child.Keys() {
				if err := r.put(pathMap, child[key]); err != nil {
					return nil, err
				}
			}
			continue
		}

		ext := extension(name)
		if r.ignoredExt.Has(ext) {
			slog.Debug("Skipping file with ignored extension", logfields.Path(rel+"/"+name), logfields.Extension(ext))
			continue
		}

		page := r.logicalPath(rel, baseName(name, ext))
		desc := PageDescriptor{Page: page, Source: strings.TrimPrefix(rel+"/"+name, "/")}
		if err := r.put(pathMap, desc); err != nil {
			return nil, err
		}
	}
	return pathMap, nil
}

// skipEntry reports whether a directory entry is private, hidden, or ignored by name.
func (r *Resolver) skipEntry(name string) bool {
	if name == "" || name[0] == '_' || name[0] == '.' {
		return true
	}
	for _, p := range r.ignoredPaths {
		if strings.Contains(name, p) {
			return true
		}
	}
	return false
}

func (r *Resolver) logicalPath(dir, base string) string {
	if r.opts.IgnoreIndexFiles {
		if base == "index" {
			base = ""
		}
		if dir == "/index" {
			dir = ""
		}
	}
	return dir + "/" + base
}

func (r *Resolver) put(m PathMap, desc PageDescriptor) error {
	if prev, exists := m[desc.Page]; exists {
		if r.opts.FailOnCollision {
			return fmt.Errorf("%w: %s from both %s and %s", perrors.ErrPathCollision, desc.Page, prev.Source, desc.Source)
		}
		slog.Warn("Duplicate logical path; keeping the later source",
			logfields.Page(desc.Page),
			slog.String("previous", prev.Source),
			logfields.Source(desc.Source))
	}
	m[desc.Page] = desc
	return nil
}

// extension returns the text after the final dot. A name without a dot is its own extension.
func extension(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// baseName strips ".ext" from name; a name that is entirely its extension has an empty base.
func baseName(name, ext string) string {
	n := len(name) - (len(ext) + 1)
	if n < 0 {
		return ""
	}
	return name[:n]
}
