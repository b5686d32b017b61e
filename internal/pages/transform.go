package pages

import "context"

// PathMapTransform rewrites a resolved path map. The returned map is authoritative:
// entries may be added, removed, or renamed freely.
type PathMapTransform interface {
	Transform(ctx context.Context, in PathMap) (PathMap, error)
}

// TransformFunc adapts a function to PathMapTransform.
type TransformFunc func(ctx context.Context, in PathMap) (PathMap, error)

// Transform implements PathMapTransform.
func (f TransformFunc) Transform(ctx context.Context, in PathMap) (PathMap, error) {
	return f(ctx, in)
}

// Chain applies transforms in order, feeding each the previous result.
type Chain []PathMapTransform

// Transform implements PathMapTransform.
func (c Chain) Transform(ctx context.Context, in PathMap) (PathMap, error) {
	out := in
	for _, t := range c {
		if t == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := t.Transform(ctx, out)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}

// Remap runs t over the resolved map and guarantees a root entry in the result.
// A nil transform returns the input unchanged.
func Remap(ctx context.Context, t PathMapTransform, resolved PathMap) (PathMap, error) {
	if t == nil {
		return resolved, nil
	}
	out, err := t.Transform(ctx, resolved.Clone())
	if err != nil {
		return nil, err
	}
	return EnsureRoot(out), nil
}
