package watch

import (
	"context"
	"crypto/sha256"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultDebounce collapses the bursts of writes editors produce on save
const DefaultDebounce = 500 * time.Millisecond

// ReloadFunc receives the new content of the watched file
type ReloadFunc func(ctx context.Context, data []byte) error

// FileWatcher calls a ReloadFunc whenever the content of one file changes.
// The parent directory is watched so atomic rename-on-save is picked up.
type FileWatcher struct {
	path     string
	debounce time.Duration
	reload   ReloadFunc
	watcher  *fsnotify.Watcher
	lastHash [sha256.Size]byte
}

// Option configures a FileWatcher
type Option func(*FileWatcher)

// WithDebounce overrides DefaultDebounce
func WithDebounce(d time.Duration) Option {
	return func(w *FileWatcher) {
		w.debounce = d
	}
}

// NewFileWatcher starts watching path. The current content is hashed so an
// unchanged save does not trigger a reload.
func NewFileWatcher(path string, reload ReloadFunc, opts ...Option) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve path", goerr.V("path", path))
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create watcher")
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, goerr.Wrap(err, "failed to watch directory", goerr.V("path", abs))
	}

	w := &FileWatcher{
		path:     abs,
		debounce: DefaultDebounce,
		reload:   reload,
		watcher:  fsw,
	}
	for _, opt := range opts {
		opt(w)
	}

	if data, err := os.ReadFile(abs); err == nil {
		w.lastHash = sha256.Sum256(data)
	}
	return w, nil
}

// Run processes file events until ctx is done, then closes the watcher
func (w *FileWatcher) Run(ctx context.Context) error {
	defer func() {
		_ = w.watcher.Close()
	}()

	logger := ctxlog.From(ctx).With("path", w.path)
	logger.Info("Watching dataset file", "debounce", w.debounce)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("Dataset file event", "op", event.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", "error", err)

		case <-timer.C:
			w.flush(ctx)
		}
	}
}

func (w *FileWatcher) flush(ctx context.Context) {
	logger := ctxlog.From(ctx).With("path", w.path)

	data, err := os.ReadFile(w.path)
	if err != nil {
		// Mid-rename; the Create event of the new file re-arms the timer
		logger.Debug("Dataset file not readable", "error", err)
		return
	}

	hash := sha256.Sum256(data)
	if hash == w.lastHash {
		return
	}

	if err := w.reload(ctx, data); err != nil {
		logger.Error("Failed to reload dataset, keeping previous version", "error", err)
		return
	}

	w.lastHash = hash
	logger.Info("Dataset reloaded", "bytes", len(data))
}
