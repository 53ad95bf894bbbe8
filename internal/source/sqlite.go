package source

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/five82/schemaview/internal/base"
	"github.com/five82/schemaview/internal/fieldtype"
)

// DescriptionsTable optionally carries descriptions SQLite itself cannot
// store. A row with an empty column_name describes the table.
const DescriptionsTable = "schemaview_descriptions"

var (
	// fromClause captures the FROM target, with an optional schema qualifier,
	// and everything after it.
	fromClause = regexp.MustCompile(`(?is)\bfrom\s+` +
		`(?:["\x60\[]?[A-Za-z_][A-Za-z0-9_]*["\x60\]]?\s*\.\s*)?` +
		`["\x60\[]?([A-Za-z_][A-Za-z0-9_]*)["\x60\]]?(.*)$`)
	selectKeyword = regexp.MustCompile(`(?i)\bselect\b`)
	joinKeyword   = regexp.MustCompile(`(?i)\bjoin\b`)
	// fromListEnd marks where the FROM list stops.
	fromListEnd = regexp.MustCompile(`(?i)\b(where|group|order|limit|having|window)\b`)
)

type sqliteObject struct{ name, kind, sql string }

type column struct {
	name     string
	declType string
	pk       bool
}

func openSQLite(path string) (*sql.DB, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return sql.Open("sqlite", sqliteURI(abs))
}

// sqliteURI builds a read-only file URI. The path is escaped so that '?'
// and '#' in file names are not taken as URI delimiters.
func sqliteURI(abs string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: "mode=ro"}
	return u.String()
}

// loadSQLite introspects a SQLite catalog. Each table becomes a table with
// a default grid view; each SQL view selecting from a single table becomes
// a view on that table showing the columns it exposes.
func loadSQLite(ctx context.Context, path string) (*base.Base, []string, error) {
	db, err := openSQLite(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return nil, nil, fmt.Errorf("open sqlite: %w", err)
	}

	rows, err := db.QueryContext(ctx, `SELECT name, type, COALESCE(sql, '') FROM sqlite_master
		WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%' ORDER BY rowid`)
	if err != nil {
		return nil, nil, fmt.Errorf("list sqlite objects: %w", err)
	}
	var objects []sqliteObject
	for rows.Next() {
		var o sqliteObject
		if err := rows.Scan(&o.name, &o.kind, &o.sql); err != nil {
			_ = rows.Close()
			return nil, nil, fmt.Errorf("scan sqlite object: %w", err)
		}
		objects = append(objects, o)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, nil, fmt.Errorf("list sqlite objects: %w", err)
	}
	if err := rows.Close(); err != nil {
		return nil, nil, fmt.Errorf("list sqlite objects: %w", err)
	}

	descriptions, err := readDescriptions(ctx, db, objects)
	if err != nil {
		return nil, nil, err
	}

	b := &base.Base{Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))}
	index := make(map[string]int)
	for _, o := range objects {
		if o.kind != "table" || o.name == DescriptionsTable {
			continue
		}
		cols, err := tableInfo(ctx, db, o.name)
		if err != nil {
			return nil, nil, err
		}
		table := base.Table{
			ID:          o.name,
			Name:        o.name,
			Description: descriptions[o.name][""],
		}
		for _, c := range cols {
			table.Fields = append(table.Fields, base.Field{
				ID:          c.name,
				Name:        c.name,
				Description: descriptions[o.name][c.name],
				Type:        kindForColumn(c),
				Options:     map[string]any{"declared_type": c.declType},
			})
		}
		table.Views = []base.View{base.DefaultView(table)}
		index[o.name] = len(b.Tables)
		b.Tables = append(b.Tables, table)
	}

	var warnings []string
	for _, o := range objects {
		if o.kind != "view" {
			continue
		}
		source, err := viewSource(o.sql)
		if err != nil {
			warnings = append(warnings, "view "+o.name+": "+err.Error())
			continue
		}
		i, ok := index[source]
		if !ok {
			warnings = append(warnings, "view "+o.name+": source "+source+" is not a table")
			continue
		}
		cols, err := tableInfo(ctx, db, o.name)
		if err != nil {
			return nil, nil, err
		}
		table := &b.Tables[i]
		view := base.View{ID: o.name, Name: o.name}
		for _, c := range cols {
			if table.FieldByIDIfExists(c.name) != nil {
				view.VisibleFieldIDs = append(view.VisibleFieldIDs, c.name)
			}
		}
		table.Views = append(table.Views, view)
	}
	return b, warnings, nil
}

// viewSource returns the single table a view selects from. Joins, FROM
// lists, subqueries and compound selects have no single source table.
func viewSource(stmt string) (string, error) {
	if n := len(selectKeyword.FindAllStringIndex(stmt, -1)); n != 1 {
		if n == 0 {
			return "", fmt.Errorf("cannot find source table")
		}
		return "", fmt.Errorf("selects from more than one query")
	}
	if joinKeyword.MatchString(stmt) {
		return "", fmt.Errorf("joins more than one table")
	}
	match := fromClause.FindStringSubmatch(stmt)
	if match == nil {
		return "", fmt.Errorf("cannot find source table")
	}
	rest := match[2]
	if loc := fromListEnd.FindStringIndex(rest); loc != nil {
		rest = rest[:loc[0]]
	}
	if strings.Contains(rest, ",") {
		return "", fmt.Errorf("selects from more than one table")
	}
	return match[1], nil
}

func tableInfo(ctx context.Context, db *sql.DB, name string) ([]column, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(name)))
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", name, err)
	}
	defer func() { _ = rows.Close() }()

	var cols []column
	for rows.Next() {
		var (
			cid      int
			c        column
			notNull  int
			defaultV sql.NullString
			pk       int
		)
		if err := rows.Scan(&cid, &c.name, &c.declType, &notNull, &defaultV, &pk); err != nil {
			return nil, fmt.Errorf("inspect %s: %w", name, err)
		}
		c.pk = pk > 0
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("inspect %s: %w", name, err)
	}
	return cols, nil
}

func readDescriptions(ctx context.Context, db *sql.DB, objects []sqliteObject) (map[string]map[string]string, error) {
	out := make(map[string]map[string]string)
	present := false
	for _, o := range objects {
		if o.kind == "table" && o.name == DescriptionsTable {
			present = true
			break
		}
	}
	if !present {
		return out, nil
	}

	rows, err := db.QueryContext(ctx, "SELECT table_name, COALESCE(column_name, ''), COALESCE(description, '') FROM "+DescriptionsTable)
	if err != nil {
		return nil, fmt.Errorf("read descriptions: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var table, col, desc string
		if err := rows.Scan(&table, &col, &desc); err != nil {
			return nil, fmt.Errorf("read descriptions: %w", err)
		}
		if out[table] == nil {
			out[table] = make(map[string]string)
		}
		out[table][col] = desc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read descriptions: %w", err)
	}
	return out, nil
}

// kindForColumn maps a declared SQLite type onto a field kind using the
// affinity rules: the first matching substring wins.
func kindForColumn(c column) fieldtype.Type {
	decl := strings.ToUpper(c.declType)
	switch {
	case c.pk && strings.Contains(decl, "INT"):
		return fieldtype.AutoNumber
	case strings.Contains(decl, "BOOL"):
		return fieldtype.Checkbox
	case strings.Contains(decl, "DATETIME"), strings.Contains(decl, "TIMESTAMP"):
		return fieldtype.DateTime
	case strings.Contains(decl, "DATE"):
		return fieldtype.Date
	case strings.Contains(decl, "INT"),
		strings.Contains(decl, "REAL"),
		strings.Contains(decl, "FLOA"),
		strings.Contains(decl, "DOUB"),
		strings.Contains(decl, "NUMERIC"),
		strings.Contains(decl, "DECIMAL"):
		return fieldtype.Number
	case strings.Contains(decl, "BLOB"):
		return fieldtype.MultipleAttachments
	case strings.Contains(decl, "CLOB"), strings.Contains(decl, "JSON"):
		return fieldtype.MultilineText
	default:
		return fieldtype.SingleLineText
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
