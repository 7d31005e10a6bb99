package config

import (
	"github.com/fsnotify/fsnotify"
)

// Watch re-reads the config file on every write and delivers the result on
// the returned channel. Errors setting up the watch are returned immediately;
// later watcher errors are silently dropped, a broken watch only costs live
// reload. The watcher goroutine exits when done is closed.
func Watch(path string, done <-chan struct{}) (<-chan Config, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(path); err != nil {
		w.Close()
		return nil, err
	}

	ch := make(chan Config, 1)
	go func() {
		defer w.Close()
		for {
			select {
			case e, ok := <-w.Events:
				if !ok {
					return
				}
				if e.Op&fsnotify.Write == fsnotify.Write {
					select {
					case ch <- LoadFile(path):
					default: // an unread reload is already pending
					}
				}
			case <-w.Errors:
			case <-done:
				return
			}
		}
	}()
	return ch, nil
}
