package source

import (
	"strings"

	"github.com/five82/schemaview/internal/base"
	"github.com/five82/schemaview/internal/fieldtype"
)

// document is the on-disk schema format shared by the TOML, YAML and JSON
// loaders.
type document struct {
	Name   string          `toml:"name" yaml:"name" json:"name"`
	Tables []tableDocument `toml:"tables" yaml:"tables" json:"tables"`
}

type tableDocument struct {
	ID          string          `toml:"id" yaml:"id" json:"id"`
	Name        string          `toml:"name" yaml:"name" json:"name"`
	Description string          `toml:"description" yaml:"description" json:"description"`
	Fields      []fieldDocument `toml:"fields" yaml:"fields" json:"fields"`
	Views       []viewDocument  `toml:"views" yaml:"views" json:"views"`
}

type fieldDocument struct {
	ID          string         `toml:"id" yaml:"id" json:"id"`
	Name        string         `toml:"name" yaml:"name" json:"name"`
	Type        string         `toml:"type" yaml:"type" json:"type"`
	Description string         `toml:"description" yaml:"description" json:"description"`
	Options     map[string]any `toml:"options" yaml:"options" json:"options"`
}

type viewDocument struct {
	ID            string   `toml:"id" yaml:"id" json:"id"`
	Name          string   `toml:"name" yaml:"name" json:"name"`
	VisibleFields []string `toml:"visible_fields" yaml:"visible_fields" json:"visible_fields"`
}

// toBase converts a decoded document. Missing ids default to the name, field
// types are trimmed, and a table without views gets the default grid view.
// Descriptions are kept verbatim: their whitespace is significant.
func (d document) toBase() (*base.Base, []string) {
	var warnings []string
	b := &base.Base{Name: strings.TrimSpace(d.Name)}

	for _, td := range d.Tables {
		table := base.Table{
			ID:          idOrName(td.ID, td.Name),
			Name:        strings.TrimSpace(td.Name),
			Description: td.Description,
		}
		for _, fd := range td.Fields {
			kind := fieldtype.Type(strings.TrimSpace(fd.Type))
			if !fieldtype.Known(kind) {
				warnings = append(warnings, "table "+table.Name+": field "+fd.Name+" has unknown type "+string(kind))
			}
			table.Fields = append(table.Fields, base.Field{
				ID:          idOrName(fd.ID, fd.Name),
				Name:        strings.TrimSpace(fd.Name),
				Description: fd.Description,
				Type:        kind,
				Options:     fd.Options,
			})
		}
		for _, vd := range td.Views {
			view := base.View{
				ID:   idOrName(vd.ID, vd.Name),
				Name: strings.TrimSpace(vd.Name),
			}
			for _, ref := range vd.VisibleFields {
				view.VisibleFieldIDs = append(view.VisibleFieldIDs, resolveFieldRef(table, ref))
			}
			table.Views = append(table.Views, view)
		}
		if len(table.Views) == 0 {
			table.Views = []base.View{base.DefaultView(table)}
		}
		b.Tables = append(b.Tables, table)
	}
	return b, warnings
}

func idOrName(id, name string) string {
	if trimmed := strings.TrimSpace(id); trimmed != "" {
		return trimmed
	}
	return strings.TrimSpace(name)
}

// resolveFieldRef lets views list fields by id or, for hand-written files,
// by name.
func resolveFieldRef(table base.Table, ref string) string {
	ref = strings.TrimSpace(ref)
	if table.FieldByIDIfExists(ref) != nil {
		return ref
	}
	for _, f := range table.Fields {
		if f.Name == ref {
			return f.ID
		}
	}
	return ref
}
