package watch

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultSettle is how long a file must see no events before it is handled.
const DefaultSettle = 500 * time.Millisecond

// Handler is called with the path of each new file.
type Handler func(path string)

// Watcher watches one directory, non-recursively.
type Watcher struct {
	Settle time.Duration

	dir    string
	match  func(name string) bool
	handle Handler
	log    *zap.Logger
	fsw    *fsnotify.Watcher
}

// New starts watching dir. Only names accepted by match are handled.
func New(dir string, match func(name string) bool, handle Handler, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &Watcher{
		Settle: DefaultSettle,
		dir:    dir,
		match:  match,
		handle: handle,
		log:    log,
		fsw:    fsw,
	}, nil
}

// Run dispatches settled files until ctx is cancelled or the underlying
// watcher fails. Handlers run sequentially on the calling goroutine.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	pending := make(map[string]time.Time)
	handled := make(map[string]bool)

	tick := w.Settle / 2
	if tick <= 0 {
		tick = time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	w.log.Info("Watching for images", zap.String("dir", w.dir))
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if handled[event.Name] || !w.match(event.Name) {
				continue
			}
			pending[event.Name] = time.Now()

		case <-ticker.C:
			now := time.Now()
			for path, last := range pending {
				if now.Sub(last) < w.Settle {
					continue
				}
				delete(pending, path)
				if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
					continue
				}
				handled[path] = true
				w.log.Debug("New image", zap.String("path", path))
				w.handle(path)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("Watcher error", zap.Error(err))
		}
	}
}
