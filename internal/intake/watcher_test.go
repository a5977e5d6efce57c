package intake

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

func TestRelevantEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		event  fsnotify.Event
		expect bool
	}{
		{
			name:   "created pdf",
			event:  fsnotify.Event{Name: "/intake/resumeA.pdf", Op: fsnotify.Create},
			expect: true,
		},
		{
			name:   "written docx",
			event:  fsnotify.Event{Name: "/intake/resumeB.docx", Op: fsnotify.Write},
			expect: true,
		},
		{
			name:   "unsupported type",
			event:  fsnotify.Event{Name: "/intake/notes.txt", Op: fsnotify.Create},
			expect: false,
		},
		{
			name:   "removal",
			event:  fsnotify.Event{Name: "/intake/resumeA.pdf", Op: fsnotify.Remove},
			expect: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := relevantEvent(tt.event); got != tt.expect {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestWatcherBatchesDroppedResumes(t *testing.T) {
	dir := t.TempDir()
	collector := NewCollector(zap.NewNop())
	watcher := NewWatcher(collector, 50*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	batches := make(chan int, 1)
	done := make(chan error, 1)
	go func() {
		done <- watcher.Run(ctx, dir, func(context.Context) error {
			batches <- collector.Len()
			cancel()
			return nil
		})
	}()

	// Give the watcher a moment to register before dropping files.
	time.Sleep(100 * time.Millisecond)

	for _, name := range []string{"resumeA.pdf", "skipped.txt", "resumeB.docx"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("content"), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	select {
	case collected := <-batches:
		if collected != 2 {
			t.Fatalf("expected 2 collected resumes, got %d", collected)
		}
	case <-ctx.Done():
		t.Fatalf("watcher never reported a batch")
	}

	if err := <-done; err != nil && err != context.Canceled {
		t.Fatalf("unexpected watcher error: %v", err)
	}
}
