package dashboard

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a Provider when its override file changes
type Watcher struct {
	provider    *Provider
	debounceDur time.Duration
	reloaded    chan struct{} // signalled after each reload attempt; nil when unused
}

// NewWatcher creates a watcher for p
func NewWatcher(p *Provider) *Watcher {
	return &Watcher{
		provider:    p,
		debounceDur: 250 * time.Millisecond, // Debounce rapid saves
	}
}

// Run watches until ctx is cancelled. Without an override file it just
// waits for ctx.
func (w *Watcher) Run(ctx context.Context) error {
	path := w.provider.Path()
	if path == "" {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: editors replace files by rename
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	target := filepath.Clean(path)
	logger := w.provider.logger

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("fixture watcher event channel closed")
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			debounce = time.After(w.debounceDur)

		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("fixture watcher error channel closed")
			}
			logger.Warn("fixture watcher error", zap.Error(err))

		case <-debounce:
			debounce = nil
			if err := w.provider.Reload(); err != nil {
				logger.Warn("dashboard fixture reload failed, keeping previous data", zap.Error(err))
			}
			if w.reloaded != nil {
				select {
				case w.reloaded <- struct{}{}:
				default:
				}
			}
		}
	}
}
