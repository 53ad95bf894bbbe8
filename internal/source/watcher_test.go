package source

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/schemaview/internal/base"
)

type recordingSink struct {
	mu      sync.Mutex
	bases   []*base.Base
	errs    []error
	sources []string
}

func (r *recordingSink) Update(source string, b *base.Base, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = append(r.sources, source)
	r.bases = append(r.bases, b)
	r.errs = append(r.errs, err)
}

func (r *recordingSink) last() (*base.Base, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.bases)
	if n == 0 {
		return nil, 0, nil
	}
	return r.bases[n-1], n, r.errs[n-1]
}

func TestReload(t *testing.T) {
	path := writeFile(t, "work.toml", tasksTOML)
	sink := &recordingSink{}

	require.NoError(t, Reload(context.Background(), NewLoader(path, nil), sink))
	b, n, err := sink.last()
	require.Equal(t, 1, n)
	require.NoError(t, err)
	assert.Equal(t, "Work", b.Name)
	assert.Equal(t, path, sink.sources[0])

	require.NoError(t, os.WriteFile(path, []byte("tables = ["), 0o644))
	assert.Error(t, Reload(context.Background(), NewLoader(path, nil), sink))
	b, _, err = sink.last()
	assert.Nil(t, b)
	assert.Error(t, err)
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := writeFile(t, "work.toml", tasksTOML)
	sink := &recordingSink{}
	w := NewWatcher(NewLoader(path, nil), sink, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// The watch is registered asynchronously, so keep saving until a reload lands.
	updated := strings.Replace(tasksTOML, `name = "Work"`, `name = "Renamed"`, 1)
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(updated), 0o644)
		b, _, err := sink.last()
		return err == nil && b != nil && b.Name == "Renamed"
	}, 5*time.Second, 250*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_RunFailsForMissingDirectory(t *testing.T) {
	w := NewWatcher(NewLoader("/nonexistent/dir/schema.toml", nil), &recordingSink{}, 0)
	err := w.Run(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, context.Canceled))
}
