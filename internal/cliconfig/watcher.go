package cliconfig

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/drivecli/internal/ports"
)

// DefaultDebounceDelay is how long the watcher waits after the last change
// before reloading, so editors that write in several steps trigger one reload.
const DefaultDebounceDelay = 100 * time.Millisecond

// Watcher reloads a TOML config file whenever it changes on disk.
type Watcher struct {
	mu sync.Mutex

	path     string
	delay    time.Duration
	onChange func(FileConfig)
	logger   ports.Logger

	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *time.Timer
}

// NewWatcher creates a watcher for path. onChange receives every successfully
// parsed version of the file; parse failures are logged and skipped.
func NewWatcher(path string, delay time.Duration, logger ports.Logger, onChange func(FileConfig)) *Watcher {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	return &Watcher{
		path:     path,
		delay:    delay,
		onChange: onChange,
		logger:   logger,
	}
}

// Start begins watching. The file's directory is watched rather than the
// file itself so replace-by-rename saves are seen.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go w.watchLoop(watchCtx, fw)

	w.logger.Debug("config watcher started", ports.String("path", w.path))
	return nil
}

// Stop ends the watch loop and waits for it to exit.
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()

	w.mu.Lock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.mu.Unlock()
}

func (w *Watcher) watchLoop(ctx context.Context, fw *fsnotify.Watcher) {
	defer w.wg.Done()
	defer fw.Close()

	name := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.scheduleReload(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", ports.Err(err))
		}
	}
}

func (w *Watcher) scheduleReload(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(w.delay, func() {
		if ctx.Err() != nil {
			return
		}
		w.reload()
	})
}

func (w *Watcher) reload() {
	fc, err := LoadFileConfig(w.path)
	if err != nil {
		w.logger.Warn("reload config", ports.String("path", w.path), ports.Err(err))
		return
	}
	w.logger.Info("config reloaded", ports.String("path", w.path))
	w.onChange(fc)
}
