// Package textout renders a composed layout tree as plain text for the dump
// command and for piping into other tools.
package textout

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/five82/schemaview/internal/compose"
)

// Output formats.
const (
	FormatTable    = "table"
	FormatMarkdown = "md"
	FormatJSON     = "json"
)

// TypeColumnLabel heads the type column, which the text layout splits out of
// the field cell.
const TypeColumnLabel = "Type"

// Options controls rendering. Width of zero leaves columns unbounded.
type Options struct {
	Format string
	Width  int
}

// Row is the flattened form of one field row.
type Row struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Document is the flattened form of a whole tree.
type Document struct {
	Heading     string `json:"heading"`
	Description string `json:"description,omitempty"`
	Fields      []Row  `json:"fields"`
}

// Flatten extracts the heading, description and field rows from tree.
func Flatten(tree compose.Node) Document {
	var doc Document
	if h := tree.Find(compose.RoleHeading); len(h) > 0 {
		doc.Heading = h[0].Text
	}
	if d := tree.Find(compose.RoleDescription); len(d) > 0 {
		doc.Description = d[0].Text
	}
	for _, row := range tree.Find(compose.RoleFieldRow) {
		doc.Fields = append(doc.Fields, Row{
			Name:        first(row, compose.RoleFieldName).Text,
			Type:        first(row, compose.RoleFieldType).PlainText(),
			Description: first(row, compose.RoleFieldDesc).Text,
		})
	}
	if doc.Fields == nil {
		doc.Fields = []Row{}
	}
	return doc
}

// Render writes tree to w. An empty tree prints a loading marker.
func Render(w io.Writer, tree compose.Node, opts Options) error {
	if tree.Empty() {
		if opts.Format == FormatJSON {
			_, err := fmt.Fprintln(w, "null")
			return err
		}
		_, err := fmt.Fprintln(w, "(loading)")
		return err
	}

	doc := Flatten(tree)
	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatMarkdown, "markdown":
		return renderTable(w, doc, opts, true)
	case "", FormatTable:
		return renderTable(w, doc, opts, false)
	default:
		return fmt.Errorf("unknown format %q (want table, md or json)", opts.Format)
	}
}

func renderTable(w io.Writer, doc Document, opts Options, markdown bool) error {
	if markdown {
		_, _ = fmt.Fprintf(w, "## %s\n\n", doc.Heading)
	} else {
		_, _ = fmt.Fprintln(w, doc.Heading)
	}
	if doc.Description != "" {
		_, _ = fmt.Fprintln(w, doc.Description)
	}
	_, _ = fmt.Fprintln(w)

	if len(doc.Fields) == 0 {
		_, _ = fmt.Fprintln(w, "(0 fields)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{compose.FieldColumnLabel, TypeColumnLabel, compose.DescriptionColumnLabel})
	for _, f := range doc.Fields {
		t.AppendRow(table.Row{f.Name, f.Type, f.Description})
	}
	if opts.Width > 0 {
		t.SetColumnConfigs(columnConfigs(opts.Width))
	}

	if markdown {
		t.RenderMarkdown()
	} else {
		t.Render()
		_, _ = fmt.Fprintf(w, "(%d fields)\n", len(doc.Fields))
	}
	return nil
}

// columnConfigs splits width between the field cell (name and type) and the
// description the same way the tree does.
func columnConfigs(width int) []table.ColumnConfig {
	field := width * compose.FieldColumnWidth / 100
	desc := width * compose.DescriptionColumnWidth / 100
	name := max(field/2, 8)
	kind := max(field-name, 8)
	return []table.ColumnConfig{
		{Number: 1, WidthMax: name, WidthMaxEnforcer: text.WrapSoft},
		{Number: 2, WidthMax: kind, WidthMaxEnforcer: text.WrapSoft},
		{Number: 3, WidthMax: max(desc, 16), WidthMaxEnforcer: text.WrapSoft},
	}
}

func first(n compose.Node, role string) compose.Node {
	if found := n.Find(role); len(found) > 0 {
		return found[0]
	}
	return compose.Node{}
}
