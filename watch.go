package ftlcat

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the store when catalog files under the resource path change.
// Events are debounced by Config.WatchDebounce so editors and translation
// tools that write in bursts trigger a single reload. The watcher runs until
// ctx is canceled. A failed reload keeps the previous catalog set active and
// shows up in StoreStats.ReloadFailures.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	dir := s.resourcePath()
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	debounce := s.cfg.WatchDebounce
	go func() {
		defer watcher.Close()

		var timerMu sync.Mutex
		var timer *time.Timer
		scheduleReload := func() {
			timerMu.Lock()
			defer timerMu.Unlock()
			if timer == nil {
				timer = time.AfterFunc(debounce, func() {
					_ = s.Reload()
				})
				return
			}
			timer.Reset(debounce)
		}

		for {
			select {
			case <-ctx.Done():
				timerMu.Lock()
				if timer != nil {
					timer.Stop()
				}
				timerMu.Unlock()
				return
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Ext(evt.Name) != catalogFileSuffix {
					continue
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				scheduleReload()
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return nil
}
