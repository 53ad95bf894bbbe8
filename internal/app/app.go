package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/five82/schemaview/internal/base"
	"github.com/five82/schemaview/internal/config"
	"github.com/five82/schemaview/internal/cursor"
	"github.com/five82/schemaview/internal/events"
	"github.com/five82/schemaview/internal/prefs"
	"github.com/five82/schemaview/internal/source"
	"github.com/five82/schemaview/internal/state"
	"github.com/five82/schemaview/internal/ui"
)

// Options configure the schemaview application. Non-empty fields override
// the matching config file settings.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/schemaview/prefs.toml
	SchemaPath string
	NATSURL    string
	Table      string // id or name
	View       string // id or name
	Theme      string
	PollEvery  int // seconds; zero uses the config value
}

// Session holds the shared state for one viewer process.
type Session struct {
	Config config.Config
	Prefs  prefs.Prefs
	Store  *state.Store
	Cursor *cursor.Cursor
	Loader *source.Loader
	Logger *slog.Logger

	closeLog func() error
}

// Open loads configuration, performs the first schema load and picks the
// initial selection. The first load must succeed.
func Open(ctx context.Context, opts Options) (*Session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	applyOverrides(&cfg, opts)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, closeLog, err := openLog(cfg.LogPath)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("load prefs failed", "error", err)
	}

	s := &Session{
		Config:   cfg,
		Prefs:    userPrefs,
		Store:    &state.Store{},
		Cursor:   &cursor.Cursor{},
		Loader:   source.NewLoader(cfg.SchemaPath, logger),
		Logger:   logger,
		closeLog: closeLog,
	}
	if err := source.Reload(ctx, s.Loader, s.Store); err != nil {
		_ = s.Close()
		return nil, err
	}
	s.Cursor.SetActive(initialSelection(s.Store.Base(), cfg, s.Prefs))
	logger.Info("schema loaded",
		"source", cfg.SchemaPath,
		"tables", len(s.Store.Base().Tables),
	)
	return s, nil
}

// Reload re-reads the schema source into the store.
func (s *Session) Reload(ctx context.Context) error {
	return source.Reload(ctx, s.Loader, s.Store)
}

// Select moves the cursor to a table and view given by id or name.
func (s *Session) Select(tableRef, viewRef string) {
	s.Cursor.SetActive(s.Store.Base().ResolveSelection(tableRef, viewRef))
}

// Close releases the log file.
func (s *Session) Close() error {
	if s.closeLog == nil {
		return nil
	}
	return s.closeLog()
}

// Run boots the schemaview TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	s, err := Open(ctx, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Watch the schema source for saves
	watcher := source.NewWatcher(s.Loader, s.Store, source.DefaultDebounce)
	go func() {
		if err := watcher.Run(ctx); err != nil {
			s.Logger.Warn("file watch stopped", "source", s.Loader.Path, "error", err)
		}
	}()

	if s.Config.NATSURL != "" {
		stop, err := s.subscribe(ctx)
		if err != nil {
			return err
		}
		defer stop()
	}

	if s.Config.PollInterval > 0 {
		StartPoller(ctx, s.Reload, s.Config.PollInterval, s.Logger)
	}

	themeName := s.Prefs.Theme
	if opts.Theme != "" {
		themeName = opts.Theme
	}

	return ui.Run(ui.Options{
		Context:   ctx,
		Store:     s.Store,
		Cursor:    s.Cursor,
		Reload:    s.Reload,
		Logger:    s.Logger,
		ThemeName: themeName,
		PrefsPath: prefsPath(opts.PrefsPath),
	})
}

// subscribe connects to the configured bus and routes its messages to the
// session. The returned func closes the subscription and the connection.
func (s *Session) subscribe(ctx context.Context) (func(), error) {
	sub, err := events.NewNATSSubscriber(s.Config.NATSURL)
	if err != nil {
		return nil, fmt.Errorf("connect event bus: %w", err)
	}
	ch, cancel, err := sub.Subscribe(s.Config.NATSSubject)
	if err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", s.Config.NATSSubject, err)
	}

	d := &events.Dispatcher{
		Reload: s.Reload,
		Select: s.Select,
		Logger: s.Logger,
	}
	go d.Run(ctx, ch)

	s.Logger.Info("listening for schema events", "url", s.Config.NATSURL, "subject", s.Config.NATSSubject)
	return func() {
		cancel()
		_ = sub.Close()
	}, nil
}

func prefsPath(path string) string {
	if path == "" {
		return prefs.DefaultPath()
	}
	return path
}

func applyOverrides(cfg *config.Config, opts Options) {
	if opts.SchemaPath != "" {
		cfg.SchemaPath = config.ExpandPath(opts.SchemaPath)
	}
	if opts.NATSURL != "" {
		cfg.NATSURL = opts.NATSURL
	}
	if opts.Table != "" {
		cfg.InitialTable = opts.Table
		cfg.InitialView = opts.View
	} else if opts.View != "" {
		cfg.InitialView = opts.View
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = time.Duration(opts.PollEvery) * time.Second
	}
}

// initialSelection picks the startup table and view. An explicit table from
// flags or config is used even when it does not resolve yet. Otherwise the
// last selection from prefs is restored when it still exists, and the first
// table is the fallback.
func initialSelection(b *base.Base, cfg config.Config, p prefs.Prefs) (tableID, viewID string) {
	if cfg.InitialTable != "" {
		return b.ResolveSelection(cfg.InitialTable, cfg.InitialView)
	}
	if p.LastTable != "" {
		if table := b.TableByIDIfExists(p.LastTable); table != nil {
			if table.ViewByIDIfExists(p.LastView) != nil {
				return table.ID, p.LastView
			}
			return b.ResolveSelection(table.ID, "")
		}
	}
	first := b.AdjacentTable("", 0)
	if first == nil {
		return "", ""
	}
	return b.ResolveSelection(first.ID, cfg.InitialView)
}

func openLog(path string) (*slog.Logger, func() error, error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return newLogger(f), f.Close, nil
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
