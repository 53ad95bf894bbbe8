// Package refresh keeps the rendered schema in step with the host. The
// Controller watches the schema store and the selection cursor and, on any
// change, re-runs the whole derivation: resolve the active table and view,
// read a snapshot, compose the layout tree.
package refresh

import (
	"context"
	"log/slog"
	"sync"

	"github.com/five82/schemaview/internal/base"
	"github.com/five82/schemaview/internal/compose"
	"github.com/five82/schemaview/internal/cursor"
	"github.com/five82/schemaview/internal/snapshot"
	"github.com/five82/schemaview/internal/state"
)

// signalBuffer bounds queued signals. A full buffer already guarantees a
// pass will run, so further signals are dropped.
const signalBuffer = 16

// Schema is the read side of the schema store.
type Schema interface {
	Base() *base.Base
	Watch(keys []string, fn func()) func()
}

// Selection is the read side of the navigation cursor.
type Selection interface {
	// Selection returns the active table and view ids as one consistent pair.
	Selection() (tableID, viewID string)
	Watch(keys []string, fn func()) func()
}

var (
	_ Schema    = (*state.Store)(nil)
	_ Selection = (*cursor.Cursor)(nil)
)

// State is the lifecycle state of the rendered output.
type State int

const (
	// Loading means the active table or view has not resolved yet.
	Loading State = iota
	// Ready means a snapshot was read and composed.
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "ready"
	}
	return "loading"
}

// Result is the output of one derivation pass.
type Result struct {
	State    State
	Snapshot *snapshot.Snapshot
	Tree     compose.Node
	Pass     uint64
}

// Controller re-derives the schema view whenever a watched property changes.
type Controller struct {
	schema    Schema
	selection Selection
	logger    *slog.Logger

	mu   sync.Mutex // serialises passes
	pass uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for pass diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New builds a Controller over the given store and selection handles.
func New(schema Schema, selection Selection, opts ...Option) *Controller {
	c := &Controller{
		schema:    schema,
		selection: selection,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Derive runs one full pass synchronously. Passes never overlap.
func (c *Controller) Derive() Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pass++
	result := Result{State: Loading, Pass: c.pass}

	b := c.schema.Base()
	tableID, viewID := c.selection.Selection()
	table := b.TableByIDIfExists(tableID)
	var view *base.View
	if table != nil {
		view = table.ViewByIDIfExists(viewID)
	}

	snap, ok := snapshot.Read(table, view)
	if !ok {
		result.Tree = compose.Compose(nil)
		c.logger.Debug("schema pending",
			"pass", result.Pass,
			"table_resolved", table != nil,
			"view_resolved", view != nil,
		)
		return result
	}

	result.State = Ready
	result.Snapshot = &snap
	result.Tree = compose.Compose(&snap)
	c.logger.Debug("schema derived",
		"pass", result.Pass,
		"table", snap.TableName,
		"view", snap.ViewName,
		"fields", len(snap.Fields),
	)
	return result
}

// Run subscribes to schema and selection changes, delivers an initial pass
// to sink, then one pass per signal until ctx is cancelled. sink is always
// called from the Run goroutine.
func (c *Controller) Run(ctx context.Context, sink func(Result)) error {
	signals := make(chan struct{}, signalBuffer)
	ping := func() {
		select {
		case signals <- struct{}{}:
		default:
		}
	}

	unwatchSchema := c.schema.Watch([]string{state.KeySchema}, ping)
	defer unwatchSchema()
	unwatchSelection := c.selection.Watch([]string{cursor.KeyActiveTableID, cursor.KeyActiveViewID}, ping)
	defer unwatchSelection()

	sink(c.Derive())
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-signals:
			sink(c.Derive())
		}
	}
}
