package base

import (
	"strings"
	"testing"

	"github.com/five82/schemaview/internal/fieldtype"
)

func sampleBase() *Base {
	return &Base{
		Name: "Projects",
		Tables: []Table{
			{
				ID:          "tblTasks",
				Name:        "Tasks",
				Description: "Track work",
				Fields: []Field{
					{ID: "fldNotes", Name: "Notes", Type: fieldtype.MultilineText},
					{ID: "fldDue", Name: "Due", Type: fieldtype.DateTime},
					{ID: "fldTitle", Name: "Title", Type: fieldtype.SingleLineText},
				},
				Views: []View{
					{ID: "viwAll", Name: "All tasks", VisibleFieldIDs: []string{"fldTitle", "fldDue"}},
				},
			},
		},
	}
}

func TestLookups(t *testing.T) {
	b := sampleBase()

	table := b.TableByIDIfExists("tblTasks")
	if table == nil || table.Name != "Tasks" {
		t.Fatalf("TableByIDIfExists = %#v, want Tasks", table)
	}
	if got := b.TableByIDIfExists("tblMissing"); got != nil {
		t.Fatalf("TableByIDIfExists(missing) = %#v, want nil", got)
	}
	if got := b.TableByIDIfExists(""); got != nil {
		t.Fatalf("TableByIDIfExists(empty) = %#v, want nil", got)
	}
	if got := b.TableByNameIfExists("Tasks"); got != table {
		t.Fatalf("TableByNameIfExists = %p, want %p", got, table)
	}

	view := table.ViewByIDIfExists("viwAll")
	if view == nil || view.Name != "All tasks" {
		t.Fatalf("ViewByIDIfExists = %#v, want All tasks", view)
	}
	if got := table.ViewByNameIfExists("All tasks"); got != view {
		t.Fatalf("ViewByNameIfExists = %p, want %p", got, view)
	}
	if got := table.ViewByIDIfExists("viwMissing"); got != nil {
		t.Fatalf("ViewByIDIfExists(missing) = %#v, want nil", got)
	}

	var nilBase *Base
	if got := nilBase.TableByIDIfExists("tblTasks"); got != nil {
		t.Fatalf("nil base lookup = %#v, want nil", got)
	}
	var nilTable *Table
	if got := nilTable.ViewByIDIfExists("viwAll"); got != nil {
		t.Fatalf("nil table lookup = %#v, want nil", got)
	}
}

func TestViewMetadata_UsesViewOrder(t *testing.T) {
	b := sampleBase()
	table := b.TableByIDIfExists("tblTasks")
	meta := table.ViewMetadata(table.ViewByIDIfExists("viwAll"))

	if len(meta.VisibleFields) != 2 {
		t.Fatalf("VisibleFields = %d, want 2", len(meta.VisibleFields))
	}
	if meta.VisibleFields[0].Name != "Title" || meta.VisibleFields[1].Name != "Due" {
		t.Fatalf("VisibleFields = [%s %s], want [Title Due]", meta.VisibleFields[0].Name, meta.VisibleFields[1].Name)
	}
}

func TestViewMetadata_SkipsStaleIDs(t *testing.T) {
	b := sampleBase()
	table := b.TableByIDIfExists("tblTasks")
	view := View{ID: "viwStale", VisibleFieldIDs: []string{"fldGone", "fldNotes"}}

	meta := table.ViewMetadata(&view)
	if len(meta.VisibleFields) != 1 || meta.VisibleFields[0].ID != "fldNotes" {
		t.Fatalf("VisibleFields = %#v, want only fldNotes", meta.VisibleFields)
	}
	if got := table.ViewMetadata(nil); len(got.VisibleFields) != 0 {
		t.Fatalf("ViewMetadata(nil) = %#v, want empty", got)
	}
}

func TestValidate(t *testing.T) {
	if err := sampleBase().Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Base)
		want   string
	}{
		{"duplicate table", func(b *Base) { b.Tables = append(b.Tables, b.Tables[0]) }, "duplicate table id"},
		{"missing table id", func(b *Base) { b.Tables[0].ID = "" }, "has no id"},
		{"duplicate field", func(b *Base) { b.Tables[0].Fields[1].ID = "fldNotes" }, "duplicate field id"},
		{"duplicate view", func(b *Base) { b.Tables[0].Views = append(b.Tables[0].Views, b.Tables[0].Views[0]) }, "duplicate view id"},
		{"unknown field", func(b *Base) {
			b.Tables[0].Views[0].VisibleFieldIDs = append(b.Tables[0].Views[0].VisibleFieldIDs, "fldNope")
		}, "unknown field"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := sampleBase()
			tt.mutate(b)
			err := b.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Validate error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestDefaultView(t *testing.T) {
	table := sampleBase().Tables[0]
	v := DefaultView(table)
	if v.Name != DefaultViewName {
		t.Fatalf("Name = %q, want %q", v.Name, DefaultViewName)
	}
	if len(v.VisibleFieldIDs) != 3 || v.VisibleFieldIDs[0] != "fldNotes" {
		t.Fatalf("VisibleFieldIDs = %v, want storage order", v.VisibleFieldIDs)
	}
}

func navBase() *Base {
	b := sampleBase()
	b.Tables[0].Views = append(b.Tables[0].Views, View{ID: "viwDue", Name: "By due", VisibleFieldIDs: []string{"fldDue"}})
	b.Tables = append(b.Tables, Table{ID: "tblPeople", Name: "People", Views: []View{{ID: "viwPeople", Name: "Everyone"}}})
	return b
}

func TestResolveSelection(t *testing.T) {
	b := navBase()
	tests := []struct {
		table, view         string
		wantTable, wantView string
	}{
		{"tblTasks", "viwDue", "tblTasks", "viwDue"},
		{"Tasks", "By due", "tblTasks", "viwDue"},
		{"Tasks", "", "tblTasks", "viwAll"},
		{"People", "", "tblPeople", "viwPeople"},
		{"tblTasks", "viwNew", "tblTasks", "viwNew"},
		{"tblNew", "viwNew", "tblNew", "viwNew"},
	}
	for _, tt := range tests {
		gotTable, gotView := b.ResolveSelection(tt.table, tt.view)
		if gotTable != tt.wantTable || gotView != tt.wantView {
			t.Fatalf("ResolveSelection(%q, %q) = (%q, %q), want (%q, %q)",
				tt.table, tt.view, gotTable, gotView, tt.wantTable, tt.wantView)
		}
	}

	var empty *Base
	if gotTable, gotView := empty.ResolveSelection("tblTasks", ""); gotTable != "tblTasks" || gotView != "" {
		t.Fatalf("nil base ResolveSelection = (%q, %q)", gotTable, gotView)
	}
}

func TestAdjacent(t *testing.T) {
	b := navBase()

	if got := b.AdjacentTable("tblTasks", 1); got == nil || got.ID != "tblPeople" {
		t.Fatalf("AdjacentTable(+1) = %#v, want tblPeople", got)
	}
	if got := b.AdjacentTable("tblTasks", -1); got == nil || got.ID != "tblPeople" {
		t.Fatalf("AdjacentTable(-1) = %#v, want wrap to tblPeople", got)
	}
	if got := b.AdjacentTable("tblMissing", 1); got == nil || got.ID != "tblTasks" {
		t.Fatalf("AdjacentTable(unknown) = %#v, want tblTasks", got)
	}

	table := b.TableByIDIfExists("tblTasks")
	if got := table.AdjacentView("viwDue", 1); got == nil || got.ID != "viwAll" {
		t.Fatalf("AdjacentView(+1) = %#v, want wrap to viwAll", got)
	}

	var none *Base
	if got := none.AdjacentTable("x", 1); got != nil {
		t.Fatalf("nil base AdjacentTable = %#v, want nil", got)
	}
}
