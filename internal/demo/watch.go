package demo

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/nexus/event"
)

// ConfigWatcher bridges filesystem notifications onto the bus: when the
// config file is rewritten it reloads the file and emits ConfigReloaded.
// The emit happens on the watcher goroutine; delivery happens on the
// driver's next Process pass, so handlers never race the frame loop.
type ConfigWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	sender  *event.Sender
	done    chan struct{}
}

// WatchConfig starts watching path and emitting reloads through bus.
func WatchConfig(path string, bus *event.Bus) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	// Watch the directory, not the file: editors replace files on save
	// and a file-level watch is lost after the rename.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &ConfigWatcher{
		watcher: fsw,
		path:    abs,
		sender:  event.NewSender(bus, "config"),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *ConfigWatcher) loop() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := LoadConfig(w.path)
			if err != nil {
				w.sender.Emit(LogLine{Text: fmt.Sprintf("config reload failed: %v", err)})
				continue
			}
			w.sender.Emit(ConfigReloaded{Config: cfg})
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *ConfigWatcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
