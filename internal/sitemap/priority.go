package sitemap

import (
	"fmt"
	"strings"
)

const (
	maxPriority   = 100
	priorityStep  = 10
	priorityScale = 100
)

// Depth returns how many path segments lie below the root. "/" and "/about"
// have depths 0 and 1; a trailing slash opens a level, so "/blog/" has depth 1
// and "/blog/post/" has depth 2.
func Depth(path string) int {
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return strings.Count(path, "/") - 1
}

// Priority returns the default priority for path formatted with two decimals.
// The root gets 1.00 and every level below it 0.10 less, bottoming out at 0.00.
func Priority(path string) string {
	p := maxPriority - Depth(path)*priorityStep
	if p < 0 {
		p = 0
	}
	return fmt.Sprintf("%d.%02d", p/priorityScale, p%priorityScale)
}
