package pages

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	perrors "github.com/macko911/nextjs-sitemap-generator/internal/pages/errors"
)

// FileTransform replaces the resolved path map with a static map loaded from a
// YAML (or JSON) file shaped as `"/path": {page: "/page"}`.
type FileTransform struct {
	Path string
}

// Transform implements PathMapTransform. The input map is ignored.
func (f *FileTransform) Transform(_ context.Context, _ PathMap) (PathMap, error) {
	// #nosec G304 -- path comes from the operator's configuration
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", perrors.ErrTransformFailed, f.Path, err)
	}
	var out PathMap
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", perrors.ErrTransformFailed, f.Path, err)
	}
	if out == nil {
		out = PathMap{}
	}
	for key, desc := range out {
		if desc.Page == "" {
			return nil, fmt.Errorf("%w: %s: entry %q has no page", perrors.ErrTransformFailed, f.Path, key)
		}
	}
	return out, nil
}
