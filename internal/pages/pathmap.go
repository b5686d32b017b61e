// Package pages discovers logical page paths from a page directory tree and
// hosts the hooks that may rewrite the resulting path map before emission.
package pages

import "sort"

// RootPath is the logical path of the site root.
const RootPath = "/"

// IndexPage is the conventional page backing the root path when a transform omits it.
const IndexPage = "/index"

// PageDescriptor describes one logical page.
type PageDescriptor struct {
	// Page is the logical path, e.g. "/blog/post" or "/docs/".
	Page string `json:"page" yaml:"page"`
	// Source is the file the page was discovered from, relative to the pages
	// directory and slash separated. Empty for pages supplied by a transform.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// PathMap maps a logical path to its page descriptor.
type PathMap map[string]PageDescriptor

// Keys returns the map keys in ascending order.
func (m PathMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy of the map.
func (m PathMap) Clone() PathMap {
	out := make(PathMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// EnsureRoot returns a copy of m that has an entry for RootPath, pointing it
// at IndexPage when the entry is missing.
func EnsureRoot(m PathMap) PathMap {
	out := m.Clone()
	if _, ok := out[RootPath]; !ok {
		out[RootPath] = PageDescriptor{Page: IndexPage}
	}
	return out
}
