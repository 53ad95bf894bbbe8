package app

import (
	"context"
	"io"

	"github.com/five82/schemaview/internal/refresh"
	"github.com/five82/schemaview/internal/textout"
)

// Dump loads the schema, runs one derivation pass for the initial selection
// and writes it to w.
func Dump(ctx context.Context, opts Options, w io.Writer, out textout.Options) error {
	s, err := Open(ctx, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	result := refresh.New(s.Store, s.Cursor, refresh.WithLogger(s.Logger)).Derive()
	return textout.Render(w, result.Tree, out)
}
