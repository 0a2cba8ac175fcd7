package rules

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceInterval is how long to wait after the last write before reloading.
const debounceInterval = 500 * time.Millisecond

// Reloader watches a rule file for changes and swaps the active Set.
// Readers access the current set through Current; swaps are atomic.
type Reloader struct {
	path    string
	watcher *fsnotify.Watcher
	current atomic.Pointer[Set]
	onSwap  func(*Set, error)
}

// NewReloader loads the rule file and creates a watcher for it.
// onSwap is called after every reload attempt with the new set or the
// load error; it may be nil.
func NewReloader(path string, onSwap func(*Set, error)) (*Reloader, error) {
	set, err := Load(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("rules: create file watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("rules: watch %q: %w", path, err)
	}

	r := &Reloader{
		path:    path,
		watcher: watcher,
		onSwap:  onSwap,
	}
	r.current.Store(set)
	return r, nil
}

// Current returns the active rule set.
func (r *Reloader) Current() *Set {
	return r.current.Load()
}

// Run watches for file changes and reloads the rule set.
// Blocks until ctx is cancelled. A reload that fails to parse keeps the
// previous set active.
func (r *Reloader) Run(ctx context.Context) error {
	defer r.watcher.Close()

	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(debounceInterval, r.reload)
			}

		case _, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
		}
	}
}

func (r *Reloader) reload() {
	set, err := Load(r.path)
	if err == nil {
		r.current.Store(set)
	}
	if r.onSwap != nil {
		r.onSwap(set, err)
	}
}
