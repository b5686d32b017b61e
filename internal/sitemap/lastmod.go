package sitemap

import (
	"time"

	"github.com/macko911/nextjs-sitemap-generator/internal/pages"
)

// LastModResolver supplies the last-modified time of a page.
// It returns false when it has no date for the page.
type LastModResolver interface {
	LastMod(desc pages.PageDescriptor) (time.Time, bool)
}

// LastModFunc adapts a function to LastModResolver.
type LastModFunc func(desc pages.PageDescriptor) (time.Time, bool)

// LastMod implements LastModResolver.
func (f LastModFunc) LastMod(desc pages.PageDescriptor) (time.Time, bool) {
	return f(desc)
}
