package config

import "github.com/macko911/nextjs-sitemap-generator/internal/foundation/normalization"

// LastModSource enumerates where lastmod dates come from.
type LastModSource string

const (
	// LastModToday stamps every entry with the run date.
	LastModToday LastModSource = "today"
	// LastModGit uses the last commit touching each page's source file.
	LastModGit LastModSource = "git"
)

var lastModNormalizer = normalization.NewNormalizer(map[string]LastModSource{
	"today": LastModToday,
	"now":   LastModToday,
	"git":   LastModGit,
}, LastModToday)
