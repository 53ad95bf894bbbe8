// Package snapshot derives the point-in-time projection of a table and view
// used for one render pass.
package snapshot

import (
	"github.com/five82/schemaview/internal/base"
)

// Snapshot is the header metadata of a table/view plus its visible fields in
// the view's display order.
type Snapshot struct {
	TableID          string
	TableName        string
	TableDescription string
	ViewID           string
	ViewName         string
	Fields           []base.Field
}

// Read projects table and view into a Snapshot. It returns false while either
// is still unresolved; that is the pending state, not an error.
//
// Fields come from the view metadata, never from table.Fields: only the
// view knows which fields are visible and in what order.
func Read(table *base.Table, view *base.View) (Snapshot, bool) {
	if table == nil || view == nil {
		return Snapshot{}, false
	}
	meta := table.ViewMetadata(view)
	fields := make([]base.Field, len(meta.VisibleFields))
	copy(fields, meta.VisibleFields)

	return Snapshot{
		TableID:          table.ID,
		TableName:        table.Name,
		TableDescription: table.Description,
		ViewID:           view.ID,
		ViewName:         view.Name,
		Fields:           fields,
	}, true
}
