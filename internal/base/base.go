// Package base models the host's schema: a base holds tables, a table holds
// fields and views, and a view decides which fields are visible and in what
// order. Values are immutable once built; a schema change produces a new Base.
package base

import (
	"fmt"

	"github.com/five82/schemaview/internal/fieldtype"
)

// DefaultViewName names the view synthesised for tables that declare none.
const DefaultViewName = "Grid view"

// Base is the root of a loaded schema.
type Base struct {
	Name   string
	Tables []Table
}

// Table is a named collection of fields plus the views configured on it.
// Fields are in storage order, which carries no display meaning.
type Table struct {
	ID          string
	Name        string
	Description string
	Fields      []Field
	Views       []View
}

// Field is a single column definition.
type Field struct {
	ID          string
	Name        string
	Description string
	Type        fieldtype.Type
	Options     map[string]any
}

// View is a saved configuration of a table. VisibleFieldIDs is the display
// order of the fields shown by the view; fields not listed are hidden.
type View struct {
	ID              string
	Name            string
	VisibleFieldIDs []string
}

// ViewMetadata is the resolved field visibility of a view.
type ViewMetadata struct {
	VisibleFields []Field
}

// TableByIDIfExists returns the table with the given id, or nil while it does
// not exist (for example when the table is still being created).
func (b *Base) TableByIDIfExists(id string) *Table {
	if b == nil || id == "" {
		return nil
	}
	for i := range b.Tables {
		if b.Tables[i].ID == id {
			return &b.Tables[i]
		}
	}
	return nil
}

// TableByNameIfExists looks a table up by display name.
func (b *Base) TableByNameIfExists(name string) *Table {
	if b == nil || name == "" {
		return nil
	}
	for i := range b.Tables {
		if b.Tables[i].Name == name {
			return &b.Tables[i]
		}
	}
	return nil
}

// ViewByIDIfExists returns the view with the given id, or nil.
func (t *Table) ViewByIDIfExists(id string) *View {
	if t == nil || id == "" {
		return nil
	}
	for i := range t.Views {
		if t.Views[i].ID == id {
			return &t.Views[i]
		}
	}
	return nil
}

// ViewByNameIfExists looks a view up by display name.
func (t *Table) ViewByNameIfExists(name string) *View {
	if t == nil || name == "" {
		return nil
	}
	for i := range t.Views {
		if t.Views[i].Name == name {
			return &t.Views[i]
		}
	}
	return nil
}

// FieldByIDIfExists returns the field with the given id, or nil.
func (t *Table) FieldByIDIfExists(id string) *Field {
	if t == nil || id == "" {
		return nil
	}
	for i := range t.Fields {
		if t.Fields[i].ID == id {
			return &t.Fields[i]
		}
	}
	return nil
}

// ViewMetadata resolves the fields visible in v, in the view's order. Ids
// that no longer match a field are skipped.
func (t *Table) ViewMetadata(v *View) ViewMetadata {
	if t == nil || v == nil {
		return ViewMetadata{}
	}
	fields := make([]Field, 0, len(v.VisibleFieldIDs))
	for _, id := range v.VisibleFieldIDs {
		if f := t.FieldByIDIfExists(id); f != nil {
			fields = append(fields, *f)
		}
	}
	return ViewMetadata{VisibleFields: fields}
}

// Validate checks identifier uniqueness and that views only reference fields
// of their own table.
func (b *Base) Validate() error {
	if b == nil {
		return fmt.Errorf("base is nil")
	}
	tableIDs := make(map[string]struct{}, len(b.Tables))
	for _, table := range b.Tables {
		if table.ID == "" {
			return fmt.Errorf("table %q has no id", table.Name)
		}
		if _, dup := tableIDs[table.ID]; dup {
			return fmt.Errorf("duplicate table id %q", table.ID)
		}
		tableIDs[table.ID] = struct{}{}

		fieldIDs := make(map[string]struct{}, len(table.Fields))
		for _, field := range table.Fields {
			if field.ID == "" {
				return fmt.Errorf("table %q: field %q has no id", table.Name, field.Name)
			}
			if _, dup := fieldIDs[field.ID]; dup {
				return fmt.Errorf("table %q: duplicate field id %q", table.Name, field.ID)
			}
			fieldIDs[field.ID] = struct{}{}
		}

		viewIDs := make(map[string]struct{}, len(table.Views))
		for _, view := range table.Views {
			if view.ID == "" {
				return fmt.Errorf("table %q: view %q has no id", table.Name, view.Name)
			}
			if _, dup := viewIDs[view.ID]; dup {
				return fmt.Errorf("table %q: duplicate view id %q", table.Name, view.ID)
			}
			viewIDs[view.ID] = struct{}{}
			for _, id := range view.VisibleFieldIDs {
				if _, ok := fieldIDs[id]; !ok {
					return fmt.Errorf("table %q: view %q references unknown field %q", table.Name, view.Name, id)
				}
			}
		}
	}
	return nil
}

// DefaultView builds a view that shows every field of t in storage order.
func DefaultView(t Table) View {
	ids := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		ids = append(ids, f.ID)
	}
	return View{ID: t.ID + ":grid", Name: DefaultViewName, VisibleFieldIDs: ids}
}

// ResolveSelection maps table and view references, each an id or a display
// name, onto ids. An empty view reference picks the table's first view.
// References that match nothing are returned unchanged so a selection can
// point at a table or view that does not exist yet.
func (b *Base) ResolveSelection(tableRef, viewRef string) (tableID, viewID string) {
	table := b.TableByIDIfExists(tableRef)
	if table == nil {
		table = b.TableByNameIfExists(tableRef)
	}
	if table == nil {
		return tableRef, viewRef
	}
	if viewRef == "" {
		if len(table.Views) == 0 {
			return table.ID, ""
		}
		return table.ID, table.Views[0].ID
	}
	view := table.ViewByIDIfExists(viewRef)
	if view == nil {
		view = table.ViewByNameIfExists(viewRef)
	}
	if view == nil {
		return table.ID, viewRef
	}
	return table.ID, view.ID
}

// AdjacentTable returns the table delta positions away from id, wrapping at
// both ends. An unknown id starts from the first table.
func (b *Base) AdjacentTable(id string, delta int) *Table {
	if b == nil || len(b.Tables) == 0 {
		return nil
	}
	i := 0
	for j := range b.Tables {
		if b.Tables[j].ID == id {
			i = j + delta
			break
		}
	}
	return &b.Tables[wrap(i, len(b.Tables))]
}

// AdjacentView is AdjacentTable for the views of t.
func (t *Table) AdjacentView(id string, delta int) *View {
	if t == nil || len(t.Views) == 0 {
		return nil
	}
	i := 0
	for j := range t.Views {
		if t.Views[j].ID == id {
			i = j + delta
			break
		}
	}
	return &t.Views[wrap(i, len(t.Views))]
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
