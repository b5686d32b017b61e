package sitemap

import "errors"

// ErrWriteFailed indicates the sitemap file could not be created, encoded, or sealed.
var ErrWriteFailed = errors.New("sitemap write failed")
