// Package cursor holds the user's navigation context: which table and which
// view are active. It is written by whoever drives navigation (key bindings,
// bus messages) and watched by the refresh controller.
package cursor

import (
	"sync"

	"github.com/five82/schemaview/internal/watch"
)

// Watchable property names.
const (
	KeyActiveTableID = "activeTableId"
	KeyActiveViewID  = "activeViewId"
)

// Cursor is the selection state. The zero value has nothing selected.
type Cursor struct {
	watch.Watchable

	mu      sync.RWMutex
	tableID string
	viewID  string
}

// ActiveTableID returns the id of the selected table, or "".
func (c *Cursor) ActiveTableID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tableID
}

// ActiveViewID returns the id of the selected view, or "".
func (c *Cursor) ActiveViewID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.viewID
}

// Selection returns both ids under one lock.
func (c *Cursor) Selection() (tableID, viewID string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tableID, c.viewID
}

// SetActive moves the selection and notifies watchers of the properties that
// actually changed.
func (c *Cursor) SetActive(tableID, viewID string) {
	c.mu.Lock()
	var changed []string
	if c.tableID != tableID {
		c.tableID = tableID
		changed = append(changed, KeyActiveTableID)
	}
	if c.viewID != viewID {
		c.viewID = viewID
		changed = append(changed, KeyActiveViewID)
	}
	c.mu.Unlock()

	if len(changed) > 0 {
		c.Notify(changed...)
	}
}

// SetActiveView changes only the view.
func (c *Cursor) SetActiveView(viewID string) {
	c.mu.Lock()
	if c.viewID == viewID {
		c.mu.Unlock()
		return
	}
	c.viewID = viewID
	c.mu.Unlock()
	c.Notify(KeyActiveViewID)
}
