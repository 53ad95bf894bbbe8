package events

import "context"

// Event topic constants
const (
	TopicSchemaChanged    = "schemaview.schema.changed"
	TopicSelectionChanged = "schemaview.selection.changed"

	// TopicAll matches every schemaview subject.
	TopicAll = "schemaview.>"
)

// Event types

// SchemaChanged asks viewers to reload their schema source. Source is
// informational.
type SchemaChanged struct {
	Source string `json:"source,omitempty"`
}

// SelectionChanged moves viewers to a table and view. An empty ViewID picks
// the table's first view.
type SelectionChanged struct {
	TableID string `json:"table_id"`
	ViewID  string `json:"view_id,omitempty"`
}

// Message is one payload received from the bus.
type Message struct {
	Subject string
	Data    []byte
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

// Subscriber receives events from the event bus.
type Subscriber interface {
	// Subscribe delivers messages on the returned channel.
	// Call the returned cancel function to unsubscribe and close the channel.
	Subscribe(topic string) (<-chan Message, func(), error)
	Close() error
}
