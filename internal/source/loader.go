package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/five82/schemaview/internal/base"
)

// Format identifies how a schema source is read.
type Format string

const (
	FormatTOML   Format = "toml"
	FormatYAML   Format = "yaml"
	FormatJSON   Format = "json"
	FormatSQLite Format = "sqlite"
)

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("unsupported schema source %q (want .toml, .yaml, .json or .sqlite)", path)
	}
}

// Loader reads a schema source into a validated Base.
type Loader struct {
	Path   string
	Logger *slog.Logger
}

// NewLoader builds a Loader for path.
func NewLoader(path string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{Path: path, Logger: logger}
}

// Load reads and validates the source. Every call returns a fresh Base.
func (l *Loader) Load(ctx context.Context) (*base.Base, error) {
	format, err := DetectFormat(l.Path)
	if err != nil {
		return nil, err
	}

	var (
		b        *base.Base
		warnings []string
	)
	if format == FormatSQLite {
		b, warnings, err = loadSQLite(ctx, l.Path)
	} else {
		b, warnings, err = loadDocument(l.Path, format)
	}
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		l.Logger.Warn("schema warning", "source", l.Path, "detail", w)
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("validate schema: %w", err)
	}
	return b, nil
}

func loadDocument(path string, format Format) (*base.Base, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read schema: %w", err)
	}
	doc, err := decodeDocument(data, format)
	if err != nil {
		return nil, nil, fmt.Errorf("parse schema: %w", err)
	}
	b, warnings := doc.toBase()
	if b.Name == "" {
		b.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return b, warnings, nil
}

// decodeDocument rejects keys the document format does not define, so a
// misspelled key fails the load instead of silently dropping data.
func decodeDocument(data []byte, format Format) (document, error) {
	var doc document
	var err error
	switch format {
	case FormatTOML:
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&doc)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(&doc); errors.Is(err, io.EOF) {
			err = nil
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	default:
		err = fmt.Errorf("format %q is not a document format", format)
	}
	return doc, err
}
