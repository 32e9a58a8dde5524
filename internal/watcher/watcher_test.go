package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

type counter struct {
	mu sync.Mutex
	n  int
}

func (c *counter) bump() {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func (c *counter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	feed := filepath.Join(dir, "profiles.json")
	if err := writeFile(feed, "[]"); err != nil {
		t.Fatal(err)
	}

	var reloads counter
	w := New(feed, reloads.bump, WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := writeFile(feed, `[{"username":"kenji"}]`); err != nil {
		t.Fatal(err)
	}
	time.Sleep(600 * time.Millisecond)

	if reloads.count() < 1 {
		t.Errorf("expected at least one reload, got %d", reloads.count())
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	feed := filepath.Join(dir, "profiles.json")
	if err := writeFile(feed, "[]"); err != nil {
		t.Fatal(err)
	}

	var reloads counter
	w := New(feed, reloads.bump, WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := writeFile(filepath.Join(dir, "other.json"), "{}"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(400 * time.Millisecond)

	if reloads.count() != 0 {
		t.Errorf("sibling write triggered %d reloads, want 0", reloads.count())
	}
}

func TestWatcher_CoalescesWriteBursts(t *testing.T) {
	dir := t.TempDir()
	feed := filepath.Join(dir, "profiles.json")
	if err := writeFile(feed, "[]"); err != nil {
		t.Fatal(err)
	}

	var reloads counter
	w := New(feed, reloads.bump, WithDebounce(200*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	for i := 0; i < 3; i++ {
		if err := writeFile(feed, "[]"); err != nil {
			t.Fatal(err)
		}
		time.Sleep(20 * time.Millisecond)
	}
	time.Sleep(800 * time.Millisecond)

	if got := reloads.count(); got != 1 {
		t.Errorf("burst of writes triggered %d reloads, want 1", got)
	}
}

func TestWatcher_StartFailsForMissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing", "profiles.json"), func() {})
	if err := w.Start(context.Background()); err == nil {
		w.Stop()
		t.Fatal("Start succeeded for a feed in a missing directory")
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	feed := filepath.Join(dir, "profiles.json")
	if err := writeFile(feed, "[]"); err != nil {
		t.Fatal(err)
	}

	w := New(feed, func() {})
	w.Stop() // before Start

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop()
}

func TestWatcher_Path(t *testing.T) {
	w := New("/tmp/feed/../profiles.json", nil)
	if got := w.Path(); got != "/tmp/profiles.json" {
		t.Errorf("Path() = %q, want cleaned path", got)
	}
}
