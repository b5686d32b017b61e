// Package normalization maps loosely written configuration strings onto typed enums.
package normalization

import (
	"sort"
	"strings"
)

// Normalizer resolves case- and whitespace-insensitive aliases to enum values.
type Normalizer[T comparable] struct {
	aliases  map[string]T
	fallback T
	keys     []string
}

// NewNormalizer builds a normalizer from alias->value pairs. fallback is
// returned by Normalize for unrecognized input.
func NewNormalizer[T comparable](aliases map[string]T, fallback T) *Normalizer[T] {
	n := &Normalizer[T]{
		aliases:  make(map[string]T, len(aliases)),
		fallback: fallback,
		keys:     make([]string, 0, len(aliases)),
	}
	for alias, v := range aliases {
		key := fold(alias)
		n.aliases[key] = v
		n.keys = append(n.keys, key)
	}
	sort.Strings(n.keys)
	return n
}

// Normalize returns the value for raw, or the fallback.
func (n *Normalizer[T]) Normalize(raw string) T {
	if v, ok := n.Lookup(raw); ok {
		return v
	}
	return n.fallback
}

// Lookup returns the value for raw and whether raw is a known alias.
func (n *Normalizer[T]) Lookup(raw string) (T, bool) {
	v, ok := n.aliases[fold(raw)]
	return v, ok
}

// Default returns the fallback value.
func (n *Normalizer[T]) Default() T { return n.fallback }

// ValidKeys returns the accepted aliases in sorted order.
func (n *Normalizer[T]) ValidKeys() []string {
	return append([]string(nil), n.keys...)
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
