package intake

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultSettlePeriod = 2 * time.Second

// Watcher mirrors a drag-and-drop surface: it observes an intake directory
// and feeds newly dropped resumes into a collector. A batch is reported once
// no new file has arrived for the settle period.
type Watcher struct {
	logger    *zap.Logger
	collector *Collector
	settle    time.Duration
}

func NewWatcher(collector *Collector, settle time.Duration, logger *zap.Logger) *Watcher {
	if settle <= 0 {
		settle = defaultSettlePeriod
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Watcher{
		logger:    logger,
		collector: collector,
		settle:    settle,
	}
}

// Run watches dir until ctx is cancelled. onBatch is invoked after every
// settled batch of new resumes; its error stops the watcher.
func (w *Watcher) Run(ctx context.Context, dir string, onBatch func(ctx context.Context) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating intake watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching intake dir %q: %w", dir, err)
	}

	w.logger.Info("watching intake directory",
		zap.String("dir", dir),
		zap.Duration("settle_period", w.settle),
	)

	settle := time.NewTimer(w.settle)
	settle.Stop()
	pending := 0

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !relevantEvent(event) {
				continue
			}

			added, err := w.collect(event.Name)
			if err != nil {
				w.logger.Debug("skipping intake event", zap.String("path", event.Name), zap.Error(err))
				continue
			}

			if added == 0 {
				continue
			}

			pending += added
			settle.Reset(w.settle)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("intake watcher error", zap.Error(err))

		case <-settle.C:
			if pending == 0 {
				continue
			}

			w.logger.Info("intake batch settled",
				zap.Int("new_resumes", pending),
				zap.Int("collected", w.collector.Len()),
			)
			pending = 0

			if err := onBatch(ctx); err != nil {
				return err
			}
		}
	}
}

func (w *Watcher) collect(path string) (int, error) {
	file, err := FromPath(path)
	if err != nil {
		return 0, err
	}

	return len(w.collector.Add(file)), nil
}

// relevantEvent reports whether a filesystem event may introduce a new resume.
func relevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return false
	}

	_, ok := MIMETypeFor(filepath.Base(event.Name))
	return ok
}
