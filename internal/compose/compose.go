// Package compose arranges a schema snapshot into a layout tree: a header
// block naming the table and view, a column header row, and one row per
// visible field. The tree describes boxes, text and icons with semantic
// styles; renderers (the terminal UI, the text dump) decide how to draw it.
package compose

import (
	"github.com/five82/schemaview/internal/fieldtype"
	"github.com/five82/schemaview/internal/snapshot"
)

// Column split of the field list. Fixed, not derived from content.
const (
	FieldColumnWidth       = 35
	DescriptionColumnWidth = 65
)

// Column header labels.
const (
	FieldColumnLabel       = "Field"
	DescriptionColumnLabel = "Field description"
)

// FieldRow is the per-field view model. It is rebuilt on every pass.
type FieldRow struct {
	Name        string
	TypeLabel   string
	Description string
	Icon        string
}

// Rows derives the field row view models of snap in display order.
func Rows(snap snapshot.Snapshot) []FieldRow {
	rows := make([]FieldRow, 0, len(snap.Fields))
	for _, f := range snap.Fields {
		rows = append(rows, FieldRow{
			Name:        f.Name,
			TypeLabel:   fieldtype.Label(f.Type),
			Description: f.Description,
			Icon:        fieldtype.Icon(f.Type),
		})
	}
	return rows
}

// Heading returns the "<table> / <view>" title line.
func Heading(snap snapshot.Snapshot) string {
	return snap.TableName + " / " + snap.ViewName
}

// Compose builds the layout tree for snap. A nil snapshot (table or view
// still loading) yields an empty tree.
func Compose(snap *snapshot.Snapshot) Node {
	if snap == nil {
		return Node{}
	}

	return box(RoleRoot, Style{},
		header(*snap),
		fieldList(Rows(*snap)),
	)
}

func header(snap snapshot.Snapshot) Node {
	children := []Node{
		text(RoleHeading, Heading(snap), Style{Heading: true, Weight: WeightStrong}),
	}
	if snap.TableDescription != "" {
		children = append(children, text(RoleDescription, snap.TableDescription, Style{
			Color:              ColorLight,
			PreserveWhitespace: true,
		}))
	}
	return box(RoleHeader, Style{Padding: 1, Border: BorderThick}, children...)
}

func fieldList(rows []FieldRow) Node {
	children := make([]Node, 0, len(rows)+1)
	children = append(children, columnHeader())
	for _, r := range rows {
		children = append(children, fieldRow(r))
	}
	return box(RoleList, Style{Margin: 1}, children...)
}

func columnHeader() Node {
	return box(RoleColumns, Style{Direction: Row, Border: BorderThick},
		cell(FieldColumnWidth, text("", FieldColumnLabel, Style{Color: ColorLight})),
		cell(DescriptionColumnWidth, text("", DescriptionColumnLabel, Style{Color: ColorLight})),
	)
}

func fieldRow(r FieldRow) Node {
	typeLine := box(RoleFieldType, Style{Direction: Row, Color: ColorLight},
		icon(r.Icon),
		text("", r.TypeLabel, Style{Color: ColorLight}),
	)
	return box(RoleFieldRow, Style{Direction: Row, Border: BorderDefault},
		cell(FieldColumnWidth,
			text(RoleFieldName, r.Name, Style{Weight: WeightStrong}),
			typeLine,
		),
		cell(DescriptionColumnWidth,
			text(RoleFieldDesc, r.Description, Style{PreserveWhitespace: true}),
		),
	)
}

func cell(width int, children ...Node) Node {
	return box(RoleCell, Style{WidthPercent: width, PaddingRight: 1}, children...)
}
