package state

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/five82/schemaview/internal/base"
	"github.com/five82/schemaview/internal/watch"
)

// KeySchema is the watchable property covering every structural change to
// the base: tables, fields, views, names, descriptions and types.
const KeySchema = "schema"

// KeyStatus changes when a load attempt completes, successful or not.
const KeyStatus = "status"

// Snapshot represents the latest schema available to readers.
type Snapshot struct {
	Base                *base.Base
	Source              string
	LastLoaded          time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed loads
}

// HasBase reports whether at least one load succeeded.
func (s Snapshot) HasBase() bool {
	return s.Base != nil
}

// IsStale returns true when the source has failed to load repeatedly and the
// displayed schema may be out of date.
func (s Snapshot) IsStale() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the loaded schema and notifies
// watchers of KeySchema and KeyStatus.
type Store struct {
	watch.Watchable

	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored base. When err is non-nil the previous base is
// kept but the error is recorded for visibility. Schema watchers are only
// notified when the new base differs structurally from the old one.
func (s *Store) Update(source string, b *base.Base, err error) {
	s.mu.Lock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		s.mu.Unlock()
		s.Notify(KeyStatus)
		return
	}

	changed := !reflect.DeepEqual(s.snapshot.Base, b)
	s.snapshot.Base = b
	s.snapshot.Source = source
	s.snapshot.LastError = nil
	s.snapshot.LastLoaded = time.Now()
	s.snapshot.ConsecutiveFailures = 0
	s.mu.Unlock()

	if changed {
		s.Notify(KeySchema, KeyStatus)
		return
	}
	s.Notify(KeyStatus)
}

// Base returns the current base, or nil before the first successful load.
// A Base is never mutated after it is stored, so it is safe to share.
func (s *Store) Base() *base.Base {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Base
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
