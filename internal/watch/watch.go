// Package watch provides property-scoped change notification. A Watchable is
// embedded by host objects (the schema store, the selection cursor) so that
// callers can register a callback for the properties they read and get a
// ping, with no payload, whenever one of them changes.
package watch

import (
	"sort"
	"sync"
)

type watcher struct {
	keys map[string]struct{}
	fn   func()
}

// Watchable fans change notifications out to registered callbacks. The zero
// value is ready to use.
type Watchable struct {
	mu       sync.RWMutex
	next     uint64
	watchers map[uint64]watcher
}

// Watch registers fn to be called whenever any of keys changes. The returned
// function removes the registration and is safe to call more than once.
func (w *Watchable) Watch(keys []string, fn func()) func() {
	if fn == nil || len(keys) == 0 {
		return func() {}
	}
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}

	w.mu.Lock()
	if w.watchers == nil {
		w.watchers = make(map[uint64]watcher)
	}
	w.next++
	id := w.next
	w.watchers[id] = watcher{keys: set, fn: fn}
	w.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.watchers, id)
			w.mu.Unlock()
		})
	}
}

// Notify calls every callback watching at least one of changed. Each callback
// runs once per Notify call, outside the lock, in registration order.
func (w *Watchable) Notify(changed ...string) {
	w.mu.RLock()
	ids := make([]uint64, 0, len(w.watchers))
	for id, wt := range w.watchers {
		for _, k := range changed {
			if _, ok := wt.keys[k]; ok {
				ids = append(ids, id)
				break
			}
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, w.watchers[id].fn)
	}
	w.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}

// Len reports the number of registered watchers.
func (w *Watchable) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.watchers)
}
