package watch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func quiet() *log.Logger {
	return log.NewWithOptions(&bytes.Buffer{}, log.Options{Level: log.ErrorLevel})
}

func TestRunDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	fired := make(chan struct{}, 8)
	w := New(path, WithDebounce(50*time.Millisecond), WithLogger(quiet()))

	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) error {
			runs.Add(1)
			fired <- struct{}{}
			return nil
		})
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	for i := range 3 {
		if err := os.WriteFile(path, []byte{'{', byte('0' + i), '}'}, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("action did not run after writes")
	}
	time.Sleep(150 * time.Millisecond)
	if got := runs.Load(); got != 1 {
		t.Errorf("runs = %d, want 1 for a burst of writes", got)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestRunIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")

	ctx, cancel := context.WithCancel(context.Background())
	var runs atomic.Int32
	w := New(path, WithDebounce(20*time.Millisecond), WithLogger(quiet()))

	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) error {
			runs.Add(1)
			return nil
		})
	}()

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(150 * time.Millisecond)

	cancel()
	<-done
	if got := runs.Load(); got != 0 {
		t.Errorf("runs = %d, want 0", got)
	}
}

func TestRunMissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing", "scene.json"), WithLogger(quiet()))
	if err := w.Run(context.Background(), func(context.Context) error { return nil }); err == nil {
		t.Error("Run() should fail when the directory does not exist")
	}
}

func TestNewDefaults(t *testing.T) {
	w := New("a/../scene.json", WithDebounce(-1))
	if w.debounce != DefaultDebounce {
		t.Errorf("debounce = %v", w.debounce)
	}
	if w.Path() != "scene.json" {
		t.Errorf("Path() = %q", w.Path())
	}
}

func TestWithNilLogger(t *testing.T) {
	w := New("scene.json", WithLogger(nil))
	if w.logger == nil {
		t.Fatal("WithLogger(nil) should keep the default logger")
	}
	w.logger.Debug("still usable")
}
