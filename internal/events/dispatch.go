package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Dispatcher turns bus messages into schema reloads and selection changes.
type Dispatcher struct {
	// Reload re-reads the schema source.
	Reload func(ctx context.Context) error
	// Select moves the viewer to a table and view.
	Select func(tableID, viewID string)
	Logger *slog.Logger
}

// Handle applies a single message. Unknown subjects are ignored.
func (d *Dispatcher) Handle(ctx context.Context, msg Message) error {
	switch msg.Subject {
	case TopicSchemaChanged:
		if d.Reload == nil {
			return nil
		}
		return d.Reload(ctx)

	case TopicSelectionChanged:
		var ev SelectionChanged
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			return fmt.Errorf("decoding %s: %w", msg.Subject, err)
		}
		if ev.TableID == "" {
			return fmt.Errorf("decoding %s: table_id is required", msg.Subject)
		}
		if d.Select != nil {
			d.Select(ev.TableID, ev.ViewID)
		}
		return nil

	default:
		d.logger().Debug("ignoring event", "subject", msg.Subject)
		return nil
	}
}

// Run handles messages until ctx is done or ch is closed. Handler errors are
// logged and do not stop the loop.
func (d *Dispatcher) Run(ctx context.Context, ch <-chan Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := d.Handle(ctx, msg); err != nil {
				d.logger().Warn("event handling failed", "subject", msg.Subject, "error", err)
			}
		}
	}
}

func (d *Dispatcher) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}
