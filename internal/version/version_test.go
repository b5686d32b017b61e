package version

import (
	"strings"
	"testing"
)

func TestVersionDefaults(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if BuildTime == "" || GitCommit == "" {
		t.Error("build metadata should be initialized")
	}
}

func TestStringIncludesMetadata(t *testing.T) {
	s := String()
	if !strings.HasPrefix(s, "sitemapgen ") {
		t.Fatalf("unexpected version line: %s", s)
	}
	if !strings.Contains(s, GitCommit) {
		t.Fatalf("version line missing commit: %s", s)
	}
}
