// Package ui provides the terminal user interface for schemaview.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. It never reads the schema directly: a
// refresh.Controller runs alongside the program, watches the schema store and
// the selection cursor, and sends every derived layout tree to the program
// as a message. The model only renders what it last received.
//
// # Package Structure
//
//   - app.go: Model, Update loop, key handling, and the Run entry point
//   - tree.go: lipgloss renderer for compose layout trees
//   - header.go: status bar and command bar
//   - help.go: keyboard shortcut overlay
//   - keys.go: key bindings
//   - theme.go, style_helpers.go: color themes and background-safe styling
//
// # Data Flow
//
// Key bindings move the cursor (next/previous table or view). The cursor
// notifies the controller, which re-derives and sends a resultMsg. Store
// status changes (reloads, load errors) arrive as statusMsg and only affect
// the header; a failed reload keeps the last rendered schema on screen.
//
// # Themes
//
// Three themes are available (Nightfox, Kanagawa, Slate). T cycles them and
// the choice is saved to the preferences file together with the last
// selection.
package ui
