// Package app provides the orchestration layer for schemaview.
//
// # Overview
//
// This package wires together configuration, the schema source, change
// signals, state management and the UI. It is the composition root where all
// dependencies are initialized and connected.
//
// # Architecture
//
// Open performs the startup sequence shared by every command:
//
//  1. Load ~/.config/schemaview/config.toml and apply flag overrides
//  2. Open the log file (the TUI owns the terminal)
//  3. Load preferences (theme, last selection)
//  4. Load the schema source into a state.Store; this first load must succeed
//  5. Pick the initial selection on a cursor.Cursor
//
// Run then starts the change sources and blocks in the TUI:
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> source.Watcher      fsnotify, reloads on save
//	       ├─────> events.Dispatcher   NATS reload/selection (optional)
//	       ├─────> StartPoller()       timed reload (optional)
//	       └─────> ui.Run()            refresh.Controller + Bubble Tea (blocks)
//
// Every source ends in store.Update or cursor.SetActive. The refresh
// controller inside the UI re-derives the view on each resulting signal.
//
// Dump runs one derivation pass for the initial selection and prints it.
//
// # Error Handling
//
// Fatal errors (returned from Open and Run):
//   - Configuration file invalid, or no schema source configured
//   - Log file cannot be created
//   - First schema load fails
//   - NATS connection fails when nats_url is set
//
// Recoverable errors (logged, recorded on the store, viewing continues):
//   - Reload failures from file watch, poller, bus or the reload key
//   - Malformed bus messages
//
// A failed reload keeps the last good schema on screen; the header shows
// the error and the consecutive failure count.
//
// # Polling Behavior
//
// Polling is off by default because the file watcher already covers local
// sources. When enabled, failed reloads back off exponentially from the
// configured interval up to 30 seconds.
package app
