package codebase

import (
	"context"
	"slices"
	"sync"
	"time"
)

// Change describes one poll that found differences.
type Change struct {
	Updated []*File
	Removed []string
}

// FileWatcher polls the codebase root and reparses files whose modification
// time moved. OnChange, if set, runs on the watcher goroutine after every
// poll that changed something.
type FileWatcher struct {
	codebase     *Codebase
	pollInterval time.Duration
	modTimes     map[string]time.Time
	OnChange     func(Change)

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

func NewFileWatcher(c *Codebase, interval time.Duration) *FileWatcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &FileWatcher{
		codebase:     c,
		pollInterval: interval,
		modTimes:     make(map[string]time.Time),
		stopCh:       make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// Start polls once right away and then every interval until Stop is called
// or ctx is done.
func (w *FileWatcher) Start(ctx context.Context) {
	go w.run(ctx)
}

// Stop ends polling and waits for the watcher goroutine to exit.
func (w *FileWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	<-w.done
}

func (w *FileWatcher) run(ctx context.Context) {
	defer close(w.done)
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.poll(ctx)
	for {
		select {
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

func (w *FileWatcher) poll(ctx context.Context) {
	change, err := w.Poll(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Errorf("poll %s: %s", w.codebase.RootDir(), err)
		}
		return
	}
	if w.OnChange != nil && (len(change.Updated) > 0 || len(change.Removed) > 0) {
		w.OnChange(change)
	}
}

// Poll compares the files on disk with the last poll and brings the
// codebase up to date. It is not safe to call concurrently with a running
// watcher.
func (w *FileWatcher) Poll(ctx context.Context) (Change, error) {
	var change Change
	paths, err := w.codebase.Paths(ctx)
	if err != nil {
		return change, err
	}

	current := make(map[string]bool, len(paths))
	for _, path := range paths {
		current[path] = true
		info, err := w.codebase.fs.Stat(path)
		if err != nil {
			continue
		}
		lastMod, known := w.modTimes[path]
		if known && !info.ModTime().After(lastMod) {
			continue
		}
		w.modTimes[path] = info.ModTime()
		f, err := w.codebase.ScanFile(ctx, path)
		if err != nil {
			return change, err
		}
		change.Updated = append(change.Updated, f)
	}

	for path := range w.modTimes {
		if !current[path] {
			delete(w.modTimes, path)
			w.codebase.RemoveFile(path)
			change.Removed = append(change.Removed, path)
		}
	}
	slices.Sort(change.Removed)
	return change, nil
}
