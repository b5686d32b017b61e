package build

import (
	"context"
	"time"

	"github.com/macko911/nextjs-sitemap-generator/internal/config"
	"github.com/macko911/nextjs-sitemap-generator/internal/pages"
)

// Stage names used for logging and metrics labels.
const (
	StageResolve   = "resolve"
	StageTransform = "transform"
	StageEmit      = "emit"
)

// Service is the entry point used by every command that generates a sitemap.
type Service interface {
	// Run executes resolve, transform, and emit for one configuration.
	Run(ctx context.Context, req Request) (*Result, error)
}

// Request contains the inputs of one run.
type Request struct {
	// Config is the loaded, validated configuration.
	Config *config.Config

	// DryRun derives the entries without writing the sitemap.
	DryRun bool
}

// Result describes the outcome of a run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	// Status indicates the overall outcome.
	Status Status

	// OutputPath is the written sitemap; empty on dry runs and failures.
	OutputPath string

	// PathMap is the final path map after transforms.
	PathMap pages.PathMap

	// Pages is the number of path map entries after transforms.
	Pages int

	// Entries is the number of <url> elements derived.
	Entries int

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Status represents the outcome of a run.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusFailed   Status = "failed"
	StatusCanceled Status = "canceled"
)

// IsSuccess reports whether the run completed.
func (s Status) IsSuccess() bool { return s == StatusSuccess }
