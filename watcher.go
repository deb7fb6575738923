package magickit

import (
	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a detector's rules when the file or directory backing
// them changes on disk.
type Watcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Watch starts watching the detector's backing rule source. Every change
// event triggers a reload; onReload, when non-nil, receives the outcome of
// each attempt. A failed reload keeps the previous rule set.
//
// Only detectors created with NewFromFile or NewFromDirectory can be
// watched; others return ErrNotWatchable. Close the returned Watcher to
// stop watching.
func (d *Detector) Watch(onReload func(error)) (*Watcher, error) {
	if d.sourcePath == "" {
		return nil, ErrNotWatchable
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(d.sourcePath); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{watcher: fw, done: make(chan struct{})}
	go w.run(d, onReload)
	return w, nil
}

func (w *Watcher) run(d *Detector, onReload func(error)) {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			err := d.Reload()
			if onReload != nil {
				onReload(err)
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// Close stops watching. It is safe to call once.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
