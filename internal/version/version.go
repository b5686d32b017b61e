package version

import "fmt"

// Version contains the application version information.
// Set via build-time ldflags in release builds:
// go build -ldflags "-X github.com/macko911/nextjs-sitemap-generator/internal/version.Version=v1.2.0".
var Version = "dev"

// Build metadata stamped alongside Version.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by `sitemapgen --version`.
func String() string {
	return fmt.Sprintf("sitemapgen %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
