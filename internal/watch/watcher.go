// Package watch regenerates the sitemap when the page tree changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/macko911/nextjs-sitemap-generator/internal/logfields"
)

// DefaultDebounce is the quiet period after the last event before a rebuild starts.
const DefaultDebounce = 300 * time.Millisecond

// RebuildFunc regenerates the sitemap.
type RebuildFunc func(ctx context.Context) error

// Watcher runs RebuildFunc whenever files under Root change.
type Watcher struct {
	Root     string
	Exclude  []string
	Debounce time.Duration
	Rebuild  RebuildFunc

	// IgnoredPaths are name substrings the resolver skips; matching entries
	// under Root never trigger a rebuild.
	IgnoredPaths []string
	// Files are extra inputs outside the page tree, such as a static path map.
	Files []string

	// OnRebuild, when set, receives the result of every rebuild.
	OnRebuild func(err error)
}

// New creates a watcher for root. Events under any of the exclude directories are ignored.
func New(root string, rebuild RebuildFunc, exclude ...string) *Watcher {
	return &Watcher{
		Root:     root,
		Exclude:  exclude,
		Debounce: DefaultDebounce,
		Rebuild:  rebuild,
	}
}

// eventFilter decides which filesystem events can change the sitemap.
type eventFilter struct {
	root    string
	exclude []string
	ignored []string
	files   map[string]bool
}

func (w *Watcher) filter() (*eventFilter, error) {
	root, err := filepath.Abs(w.Root)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve %s: %w", w.Root, err)
	}
	f := &eventFilter{root: root, files: make(map[string]bool, len(w.Files))}
	for _, dir := range w.Exclude {
		if dir == "" {
			continue
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("watch: resolve %s: %w", dir, err)
		}
		f.exclude = append(f.exclude, abs)
	}
	for _, p := range w.IgnoredPaths {
		if p != "" {
			f.ignored = append(f.ignored, p)
		}
	}
	for _, file := range w.Files {
		if file == "" {
			continue
		}
		abs, err := filepath.Abs(file)
		if err != nil {
			return nil, fmt.Errorf("watch: resolve %s: %w", file, err)
		}
		f.files[abs] = true
	}
	return f, nil
}

// Run watches until ctx is canceled. It does not perform an initial build.
func (w *Watcher) Run(ctx context.Context) error {
	if w.Rebuild == nil {
		return fmt.Errorf("watch: rebuild func is nil")
	}
	filter, err := w.filter()
	if err != nil {
		return err
	}

	fw, err := setupFileWatcher(filter)
	if err != nil {
		return err
	}
	defer func() { _ = fw.Close() }()

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	rebuildReq, trigger, stop := setupRebuildDebouncer(debounce)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.rebuildWorker(ctx, rebuildReq)
	}()

	slog.Info("Watching for page changes", logfields.Path(filter.root))
	err = runLoop(ctx, fw, filter, trigger)
	wg.Wait()
	return err
}

// setupFileWatcher watches the page tree and the directory of every extra file.
// Directories are watched rather than files so editors that replace a file by
// rename are still seen.
func setupFileWatcher(f *eventFilter) (*fsnotify.Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	if err := addDirsRecursive(fw, f.root, f); err != nil {
		_ = fw.Close()
		return nil, err
	}
	for file := range f.files {
		dir := filepath.Dir(file)
		if f.underRoot(dir) {
			continue
		}
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("watch: %s: %w", file, err)
		}
	}
	return fw, nil
}

// setupRebuildDebouncer returns the rebuild channel, a trigger that restarts the
// quiet period, and a stop func that cancels any pending timer.
func setupRebuildDebouncer(d time.Duration) (chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return rebuildReq, trigger, stop
}

// rebuildWorker serializes rebuilds. A request arriving mid-rebuild is coalesced
// into the channel's single slot and runs once the current rebuild finishes.
func (w *Watcher) rebuildWorker(ctx context.Context, rebuildReq chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-rebuildReq:
			slog.Info("Change detected; regenerating sitemap")
			err := w.Rebuild(ctx)
			if err != nil && ctx.Err() == nil {
				slog.Warn("rebuild failed", logfields.Error(err))
			}
			if w.OnRebuild != nil {
				w.OnRebuild(err)
			}
		}
	}
}

func runLoop(ctx context.Context, fw *fsnotify.Watcher, f *eventFilter, trigger func()) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			handleFileEvent(fw, ev, f, trigger)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", logfields.Error(err))
		}
	}
}

func handleFileEvent(fw *fsnotify.Watcher, ev fsnotify.Event, f *eventFilter, trigger func()) {
	if ev.Op == fsnotify.Chmod {
		return
	}
	if f.shouldIgnoreEvent(ev.Name) {
		return
	}
	if ev.Op.Has(fsnotify.Create) && f.underRoot(ev.Name) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(fw, ev.Name, f)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

func addDirsRecursive(fw *fsnotify.Watcher, root string, f *eventFilter) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("watch: %w", err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != f.root && f.skipped(path) {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			slog.Warn("watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// shouldIgnoreEvent reports whether an event cannot affect the generated sitemap.
func (f *eventFilter) shouldIgnoreEvent(path string) bool {
	if f.files[path] {
		return false
	}
	if !f.underRoot(path) || f.skipped(path) {
		return true
	}

	// Editor temp/swap files
	base := filepath.Base(path)
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}

	return base == "Thumbs.db"
}

func (f *eventFilter) underRoot(path string) bool {
	return path == f.root || strings.HasPrefix(path, f.root+string(filepath.Separator))
}

// skipped reports whether path, below the root, is excluded or has a component
// the resolver would skip.
func (f *eventFilter) skipped(path string) bool {
	for _, dir := range f.exclude {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	rel, err := filepath.Rel(f.root, path)
	if err != nil || rel == "." {
		return false
	}
	for _, name := range strings.Split(filepath.ToSlash(rel), "/") {
		if skippedName(name, f.ignored) {
			return true
		}
	}
	return false
}

// skippedName matches entries the resolver never turns into pages.
func skippedName(name string, ignored []string) bool {
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
		return true
	}
	for _, p := range ignored {
		if strings.Contains(name, p) {
			return true
		}
	}
	return false
}
