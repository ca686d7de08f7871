package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ppiankov/sortforge/internal/classify"
	"github.com/ppiankov/sortforge/internal/fsys"
	"github.com/ppiankov/sortforge/internal/scan"
)

// debounceDefault is the quiet period after the last event before a pass.
const debounceDefault = 500 * time.Millisecond

// pollDefault is the polling interval when fsnotify is unavailable.
const pollDefault = 5 * time.Second

// PassFunc runs one organizing pass over the watched directory.
type PassFunc func(ctx context.Context) error

// Config holds watcher configuration.
type Config struct {
	Root         string
	FS           fsys.FS
	Pass         PassFunc
	PollMode     bool
	Debounce     time.Duration
	PollInterval time.Duration
}

// Watcher re-runs the organizing pass whenever new files land in Root.
type Watcher struct {
	cfg Config
	mu  sync.Mutex // serializes passes
}

// New creates a watcher with validated configuration.
func New(cfg Config) (*Watcher, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("root directory is required")
	}
	if cfg.Pass == nil {
		return nil, fmt.Errorf("pass function is required")
	}
	if cfg.FS == nil {
		cfg.FS = fsys.OS{}
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = debounceDefault
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = pollDefault
	}
	return &Watcher{cfg: cfg}, nil
}

// Run organizes once, then watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.pass(ctx); err != nil {
		return err
	}
	if w.cfg.PollMode {
		return w.runPollWatcher(ctx)
	}
	return w.runFSWatcher(ctx)
}

func (w *Watcher) pass(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if ctx.Err() != nil {
		return nil
	}
	return w.cfg.Pass(ctx)
}

// runFSWatcher watches Root using fsnotify.
func (w *Watcher) runFSWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(w.cfg.Root); err != nil {
		return fmt.Errorf("watch dir: %w", err)
	}

	slog.Info("watching for new files", "mode", "fsnotify", "dir", w.cfg.Root, "debounce", w.cfg.Debounce)

	var mu sync.Mutex
	var timer *time.Timer
	errCh := make(chan error, 1)

	for {
		select {
		case <-ctx.Done():
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			mu.Unlock()
			slog.Info("watcher stopped")
			return nil

		case err := <-errCh:
			return err

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			slog.Debug("file event", "op", event.Op.String(), "path", event.Name)

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.cfg.Debounce, func() {
				if err := w.pass(ctx); err != nil {
					select {
					case errCh <- err:
					default:
					}
				}
			})
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watcher error", "error", err)
		}
	}
}

// relevant keeps create, rename and write events for files that would be
// organized. Writes restart the debounce, so a file still being written is
// picked up once it goes quiet.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Write) {
		return false
	}
	if filepath.Dir(event.Name) != filepath.Clean(w.cfg.Root) {
		return false
	}
	info, err := w.cfg.FS.Stat(event.Name)
	if err != nil || info.IsDir() {
		return false
	}
	return classify.Extension(event.Name) != ""
}

// runPollWatcher watches Root by rescanning on a ticker.
func (w *Watcher) runPollWatcher(ctx context.Context) error {
	slog.Info("watching for new files", "mode", "poll", "dir", w.cfg.Root, "interval", w.cfg.PollInterval)

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("watcher stopped")
			return nil
		case <-ticker.C:
			pending, err := w.pending()
			if err != nil {
				slog.Warn("poll scan failed", "dir", w.cfg.Root, "error", err)
				continue
			}
			if pending == 0 {
				continue
			}
			slog.Debug("poll found files to organize", "count", pending)
			if err := w.pass(ctx); err != nil {
				return err
			}
		}
	}
}

// pending counts files that a pass would move.
func (w *Watcher) pending() (int, error) {
	entries, err := scan.Scan(w.cfg.FS, w.cfg.Root)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, g := range classify.Organizable(classify.Classify(entries)) {
		n += len(g.Members)
	}
	return n, nil
}
