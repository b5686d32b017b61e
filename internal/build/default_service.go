package build

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/macko911/nextjs-sitemap-generator/internal/config"
	serrors "github.com/macko911/nextjs-sitemap-generator/internal/errors"
	"github.com/macko911/nextjs-sitemap-generator/internal/logfields"
	"github.com/macko911/nextjs-sitemap-generator/internal/metrics"
	"github.com/macko911/nextjs-sitemap-generator/internal/observability"
	"github.com/macko911/nextjs-sitemap-generator/internal/pages"
	"github.com/macko911/nextjs-sitemap-generator/internal/sitemap"
)

// TransformFactory selects the path map transform for a configuration; nil means none.
type TransformFactory func(cfg *config.Config) pages.PathMapTransform

// LastModFactory selects the lastmod source for a configuration; nil means the run date.
type LastModFactory func(cfg *config.Config) sitemap.LastModResolver

// DefaultService is the standard implementation of Service.
type DefaultService struct {
	fs               billy.Filesystem
	locate           func(string) (string, error)
	clock            func() time.Time
	recorder         metrics.Recorder
	transformFactory TransformFactory
	lastModFactory   LastModFactory
	textfile         string
	gatherer         prom.Gatherer
}

// NewService creates a service reading and writing the OS filesystem.
func NewService() *DefaultService {
	return &DefaultService{
		fs:               osfs.New("/"),
		locate:           filepath.Abs,
		clock:            time.Now,
		recorder:         metrics.NoopRecorder{},
		transformFactory: TransformFromConfig,
		lastModFactory:   LastModFromConfig,
	}
}

// WithFilesystem replaces the filesystem pages are read from and the sitemap is written to.
// Paths are used exactly as configured.
func (s *DefaultService) WithFilesystem(fs billy.Filesystem) *DefaultService {
	s.fs = fs
	s.locate = func(p string) (string, error) { return p, nil }
	return s
}

// WithClock replaces the source of the run date.
func (s *DefaultService) WithClock(clock func() time.Time) *DefaultService {
	s.clock = clock
	return s
}

// WithRecorder sets the metrics recorder.
func (s *DefaultService) WithRecorder(r metrics.Recorder) *DefaultService {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

// WithTransform makes every run use t regardless of configuration.
func (s *DefaultService) WithTransform(t pages.PathMapTransform) *DefaultService {
	s.transformFactory = func(*config.Config) pages.PathMapTransform { return t }
	return s
}

// WithLastModFactory replaces lastmod source selection.
func (s *DefaultService) WithLastModFactory(f LastModFactory) *DefaultService {
	s.lastModFactory = f
	return s
}

// WithTextfile writes everything g gathers to path after each run.
func (s *DefaultService) WithTextfile(path string, g prom.Gatherer) *DefaultService {
	s.textfile = path
	s.gatherer = g
	return s
}

// Run executes the complete pipeline.
func (s *DefaultService) Run(ctx context.Context, req Request) (*Result, error) {
	result := &Result{
		RunID:     uuid.NewString(),
		StartTime: time.Now(),
	}
	ctx = observability.WithRunID(ctx, result.RunID)

	cfg := req.Config
	if cfg == nil {
		return s.finish(ctx, result, serrors.ValidationFailed("config", "configuration required"))
	}
	observability.InfoContext(ctx, "Generating sitemap",
		logfields.BaseURL(cfg.BaseURL),
		logfields.Path(cfg.PagesDirectory),
		slog.Bool("dry_run", req.DryRun))

	pathMap, err := s.resolvePaths(ctx, cfg)
	if err != nil {
		return s.finish(ctx, result, err)
	}
	result.PathMap = pathMap
	result.Pages = len(pathMap)
	s.recorder.SetPagesResolved(result.Pages)

	err = s.stage(ctx, StageEmit, func(ctx context.Context) error {
		entries := sitemap.Entries(pathMap, sitemap.Options{
			BaseURL:       cfg.BaseURL,
			AlternateURLs: cfg.AlternateURLs,
			PagesConfig:   cfg.PagesConfig,
			Clock:         s.clock,
			LastMod:       s.lastMod(cfg),
		})
		result.Entries = len(entries)
		if req.DryRun {
			observability.InfoContext(ctx, "Dry run; sitemap not written", logfields.Count(len(entries)))
			return nil
		}

		target, err := s.locate(cfg.TargetDirectory)
		if err != nil {
			return serrors.EmitFailed(cfg.TargetDirectory, err)
		}
		out, err := sitemap.EmitFile(ctx, s.fs, target, cfg.SitemapFile, entries)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			return serrors.EmitFailed(cfg.TargetDirectory, err)
		}
		result.OutputPath = out
		s.recorder.SetEntriesWritten(len(entries))
		return nil
	})
	return s.finish(ctx, result, err)
}

// ResolvePaths runs the resolve and transform stages only and returns the final path map.
func (s *DefaultService) ResolvePaths(ctx context.Context, cfg *config.Config) (pages.PathMap, error) {
	if cfg == nil {
		return nil, serrors.ValidationFailed("config", "configuration required")
	}
	return s.resolvePaths(ctx, cfg)
}

func (s *DefaultService) resolvePaths(ctx context.Context, cfg *config.Config) (pages.PathMap, error) {
	var pathMap pages.PathMap
	err := s.stage(ctx, StageResolve, func(ctx context.Context) error {
		resolver := pages.NewResolver(s.fs, pages.Options{
			IgnoredPaths:      cfg.IgnoredPaths,
			IgnoredExtensions: cfg.IgnoredExtensions,
			IgnoreIndexFiles:  cfg.IgnoreIndexFiles,
			FailOnCollision:   cfg.FailOnCollision,
		})
		root, err := s.locate(cfg.PagesDirectory)
		if err != nil {
			return serrors.ResolveFailed(cfg.PagesDirectory, err)
		}
		m, err := resolver.Resolve(root)
		if err != nil {
			return serrors.ResolveFailed(cfg.PagesDirectory, err)
		}
		observability.InfoContext(ctx, "Resolved pages", logfields.Count(len(m)))
		pathMap = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	transform := s.transformFactory(cfg)
	if transform == nil {
		return pathMap, nil
	}
	err = s.stage(ctx, StageTransform, func(ctx context.Context) error {
		m, err := pages.Remap(ctx, transform, pathMap)
		if err != nil {
			return serrors.TransformFailed(err)
		}
		observability.InfoContext(ctx, "Applied path map transform",
			slog.Int("before", len(pathMap)),
			logfields.Count(len(m)))
		pathMap = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pathMap, nil
}

func (s *DefaultService) lastMod(cfg *config.Config) sitemap.LastModResolver {
	if s.lastModFactory == nil {
		return nil
	}
	return s.lastModFactory(cfg)
}

// stage runs fn with the stage name attached to ctx and records its duration and result.
func (s *DefaultService) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx = observability.WithStage(ctx, name)
	start := time.Now()
	observability.DebugContext(ctx, "Stage started")

	err := fn(ctx)
	elapsed := time.Since(start)
	s.recorder.ObserveStageDuration(name, elapsed)
	switch {
	case err == nil:
		s.recorder.IncStageResult(name, metrics.ResultSuccess)
		observability.DebugContext(ctx, "Stage finished", logfields.DurationMS(float64(elapsed.Milliseconds())))
	case ctx.Err() != nil:
		s.recorder.IncStageResult(name, metrics.ResultCanceled)
	default:
		s.recorder.IncStageResult(name, metrics.ResultFatal)
	}
	return err
}

// finish stamps timings and status, records the outcome, and flushes metrics.
func (s *DefaultService) finish(ctx context.Context, result *Result, err error) (*Result, error) {
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)

	switch {
	case err == nil:
		result.Status = StatusSuccess
		s.recorder.IncRunOutcome(metrics.RunOutcomeSuccess)
		observability.InfoContext(ctx, "Sitemap generation complete",
			logfields.Output(result.OutputPath),
			logfields.Count(result.Entries),
			logfields.DurationMS(float64(result.Duration.Milliseconds())))
	case ctx.Err() != nil:
		result.Status = StatusCanceled
		s.recorder.IncRunOutcome(metrics.RunOutcomeCanceled)
		observability.WarnContext(ctx, "Sitemap generation canceled", logfields.Error(err))
	default:
		result.Status = StatusFailed
		s.recorder.IncRunOutcome(metrics.RunOutcomeFailed)
		observability.ErrorContext(ctx, "Sitemap generation failed", logfields.Error(err))
	}
	s.recorder.ObserveRunDuration(result.Duration)

	if s.textfile != "" && s.gatherer != nil {
		if werr := metrics.WriteTextfile(s.textfile, s.gatherer); werr != nil {
			observability.WarnContext(ctx, "Failed to write metrics textfile", logfields.Output(s.textfile), logfields.Error(werr))
		}
	}
	return result, err
}
