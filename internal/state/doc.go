// Package state provides the thread-safe schema store for schemaview.
//
// # Overview
//
// The Store is the host "base" handle: it holds the most recently loaded
// schema and tells watchers when it changes. Loaders (the file watcher, the
// reload poller, bus subscribers) write to it; the refresh controller reads
// from it on every pass.
//
// # Architecture
//
//	Producers:                      Consumer:
//	┌──────────────────┐           ┌────────────────────┐
//	│ source.Watcher   │           │                    │
//	│ app poller       │──Update──→│ refresh.Controller │
//	│ events bus       │  (mutex)  │   store.Base()     │
//	└──────────────────┘           └────────────────────┘
//	         │                               ↑
//	         └──── Notify(KeySchema) ────────┘
//
// # Update Semantics
//
//	// Success: replace the base, clear the error
//	store.Update(path, b, nil)
//	→ snapshot.Base = b
//	→ snapshot.LastError = nil
//	→ KeySchema fires only if b differs from the previous base
//
//	// Failure: keep the old base, record the error
//	store.Update(path, nil, err)
//	→ snapshot.Base = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// A broken edit to the schema file therefore never blanks the screen; the
// last good schema stays visible while the header reports the error.
//
// # Sharing
//
// A *base.Base is never mutated once stored. Every load builds a fresh value,
// so Base() hands out the pointer without copying.
//
// # Testing Considerations
//
// The zero Store is ready to use:
//
//	store := &state.Store{}
package state
