package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ppiankov/sortforge/internal/errlog"
	"github.com/ppiankov/sortforge/internal/fsys"
	"github.com/ppiankov/sortforge/internal/organize"
)

func organizePass(root string, passes *atomic.Int32) PassFunc {
	return func(ctx context.Context) error {
		passes.Add(1)
		_, err := organize.Run(fsys.OS{}, root, errlog.New())
		return err
	}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}

func TestNewValidation(t *testing.T) {
	if _, err := New(Config{Pass: func(context.Context) error { return nil }}); err == nil {
		t.Error("expected error for missing root")
	}
	if _, err := New(Config{Root: t.TempDir()}); err == nil {
		t.Error("expected error for missing pass")
	}
	w, err := New(Config{Root: t.TempDir(), Pass: func(context.Context) error { return nil }})
	if err != nil {
		t.Fatal(err)
	}
	if w.cfg.Debounce != debounceDefault || w.cfg.PollInterval != pollDefault {
		t.Errorf("defaults not applied: %+v", w.cfg)
	}
}

func TestPollWatcherOrganizesNewFile(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "first.txt"), []byte("1"), 0o644); err != nil {
		t.Fatal(err)
	}

	var passes atomic.Int32
	w, err := New(Config{Root: root, Pass: organizePass(root, &passes), PollMode: true, PollInterval: 50 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	if !waitFor(t, 2*time.Second, func() bool { return exists(filepath.Join(root, ".txt", "first.txt")) }) {
		t.Fatal("initial pass did not organize existing file")
	}

	if err := os.WriteFile(filepath.Join(root, "later.md"), []byte("2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !waitFor(t, 2*time.Second, func() bool { return exists(filepath.Join(root, ".md", "later.md")) }) {
		t.Fatal("poll watcher did not organize new file")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
	if passes.Load() < 2 {
		t.Errorf("expected at least 2 passes, got %d", passes.Load())
	}
}

func TestFSWatcherOrganizesBurstInOnePass(t *testing.T) {
	root := t.TempDir()

	var passes atomic.Int32
	w, err := New(Config{Root: root, Pass: organizePass(root, &passes), Debounce: 300 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	if !waitFor(t, 2*time.Second, func() bool { return passes.Load() == 1 }) {
		t.Fatal("initial pass did not run")
	}
	// give the watcher time to register root
	time.Sleep(100 * time.Millisecond)

	for _, name := range []string{"a.txt", "b.txt", "c.md"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	moved := func() bool {
		return exists(filepath.Join(root, ".txt", "a.txt")) &&
			exists(filepath.Join(root, ".txt", "b.txt")) &&
			exists(filepath.Join(root, ".md", "c.md"))
	}
	if !waitFor(t, 3*time.Second, moved) {
		t.Fatal("fsnotify watcher did not organize new files")
	}
	// events caused by the pass itself must not trigger another
	time.Sleep(600 * time.Millisecond)

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
	if got := passes.Load(); got != 2 {
		t.Errorf("expected initial pass plus one for the burst, got %d", got)
	}
}

func TestFSWatcherIgnoresFilesWithoutExtension(t *testing.T) {
	root := t.TempDir()

	var passes atomic.Int32
	w, err := New(Config{Root: root, Pass: organizePass(root, &passes), Debounce: 50 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = os.WriteFile(filepath.Join(root, "README"), []byte("x"), 0o644)
		_ = os.Mkdir(filepath.Join(root, "docs"), 0o755)
	}()

	if err := w.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got := passes.Load(); got != 1 {
		t.Errorf("expected only the initial pass, got %d", got)
	}
}

func TestPollWatcherIdleWithoutWork(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "README"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	var passes atomic.Int32
	w, err := New(Config{Root: root, Pass: organizePass(root, &passes), PollMode: true, PollInterval: 20 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	if err := w.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if passes.Load() != 1 {
		t.Errorf("expected only the initial pass, got %d", passes.Load())
	}
}

func TestRelevant(t *testing.T) {
	root := t.TempDir()
	write := func(name string) string {
		p := filepath.Join(root, name)
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}
	txt := write("a.txt")
	plain := write("README")
	dir := filepath.Join(root, ".txt")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	w, err := New(Config{Root: root, Pass: func(context.Context) error { return nil }})
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"create with extension", fsnotify.Event{Name: txt, Op: fsnotify.Create}, true},
		{"no extension", fsnotify.Event{Name: plain, Op: fsnotify.Create}, false},
		{"directory", fsnotify.Event{Name: dir, Op: fsnotify.Create}, false},
		{"removed", fsnotify.Event{Name: filepath.Join(root, "gone.txt"), Op: fsnotify.Create}, false},
		{"write", fsnotify.Event{Name: txt, Op: fsnotify.Write}, true},
		{"chmod only", fsnotify.Event{Name: txt, Op: fsnotify.Chmod}, false},
		{"nested", fsnotify.Event{Name: filepath.Join(dir, "b.txt"), Op: fsnotify.Create}, false},
	}
	for _, tc := range cases {
		if got := w.relevant(tc.event); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
