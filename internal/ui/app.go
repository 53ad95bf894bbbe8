package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/schemaview/internal/cursor"
	"github.com/five82/schemaview/internal/prefs"
	"github.com/five82/schemaview/internal/refresh"
	"github.com/five82/schemaview/internal/snapshot"
	"github.com/five82/schemaview/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Cursor    *cursor.Cursor
	Reload    func(context.Context) error
	Logger    *slog.Logger
	Tick      time.Duration
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	cursor    *cursor.Cursor
	reload    func(context.Context) error
	logger    *slog.Logger
	prefsPath string
	tick      time.Duration

	// UI state
	keys     keyMap
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool
	viewport viewport.Model

	// Data state
	result    refresh.Result
	status    state.Snapshot
	reloading bool
	errorMsg  string // transient, cleared by the next successful action
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	cur := opts.Cursor
	if cur == nil {
		cur = &cursor.Cursor{}
	}

	return Model{
		ctx:       ctx,
		store:     store,
		cursor:    cur,
		reload:    opts.Reload,
		logger:    logger,
		prefsPath: opts.PrefsPath,
		tick:      tick,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(themeName),
		status:    store.Snapshot(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.tick),
		fetchStatusCmd(m.store),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, m.contentHeight())
			m.ready = true
		}
		m.viewport.Width = msg.Width
		m.viewport.Height = m.contentHeight()
		m.updateContent()
		return m, nil

	case resultMsg:
		previous := m.result.Snapshot
		m.result = refresh.Result(msg)
		m.updateContent()
		if selectionMoved(previous, m.result.Snapshot) {
			m.viewport.GotoTop()
		}
		return m, nil

	case statusMsg:
		m.status = state.Snapshot(msg)
		return m, nil

	case reloadDoneMsg:
		m.reloading = false
		if msg.err != nil {
			m.errorMsg = "reload failed"
		} else {
			m.errorMsg = ""
		}
		return m, fetchStatusCmd(m.store)

	case tickMsg:
		return m, tea.Batch(fetchStatusCmd(m.store), tickCmd(m.tick))
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.savePrefs()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.updateContent()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		if m.reload == nil || m.reloading {
			return m, nil
		}
		m.reloading = true
		return m, reloadCmd(m.ctx, m.reload)

	case key.Matches(msg, m.keys.NextTable):
		m.moveTable(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevTable):
		m.moveTable(-1)
		return m, nil

	case key.Matches(msg, m.keys.NextView):
		m.moveView(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevView):
		m.moveView(-1)
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.viewport.ScrollUp(1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.viewport.ScrollDown(1)
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.PageUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.PageDown()
		return m, nil

	case key.Matches(msg, m.keys.HalfPageUp):
		m.viewport.HalfPageUp()
		return m, nil

	case key.Matches(msg, m.keys.HalfPageDown):
		m.viewport.HalfPageDown()
		return m, nil
	}

	return m, nil
}

// moveTable selects the table delta positions away, on its first view. The
// rendered output follows once the refresh controller delivers a pass.
func (m *Model) moveTable(delta int) {
	b := m.store.Base()
	table := b.AdjacentTable(m.cursor.ActiveTableID(), delta)
	if table == nil {
		return
	}
	m.cursor.SetActive(b.ResolveSelection(table.ID, ""))
}

// moveView cycles through the views of the active table.
func (m *Model) moveView(delta int) {
	tableID, viewID := m.cursor.Selection()
	table := m.store.Base().TableByIDIfExists(tableID)
	view := table.AdjacentView(viewID, delta)
	if view == nil {
		return
	}
	m.cursor.SetActiveView(view.ID)
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	tableID, viewID := m.cursor.Selection()
	p := prefs.Prefs{Theme: m.theme.Name, LastTable: tableID, LastView: viewID}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", "path", m.prefsPath, "error", err)
	}
}

func (m Model) contentHeight() int {
	// Header and command bar take one line each.
	return max(m.height-2, 1)
}

func (m *Model) updateContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(renderTree(m.result.Tree, m.theme, m.viewport.Width))
}

// selectionMoved reports whether next shows a different table or view than
// prev, in which case scrolling restarts from the top.
func selectionMoved(prev, next *snapshot.Snapshot) bool {
	if prev == nil || next == nil {
		return prev != next
	}
	return prev.TableID != next.TableID || prev.ViewID != next.ViewID
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	// Header line 1: logo + status
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	// Header line 2: command bar
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	// Main content
	b.WriteString(m.viewport.View())

	return b.String()
}

// Messages

type tickMsg time.Time

type resultMsg refresh.Result

type statusMsg state.Snapshot

type reloadDoneMsg struct{ err error }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchStatusCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return statusMsg(store.Snapshot())
	}
}

func reloadCmd(ctx context.Context, reload func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return reloadDoneMsg{err: reload(ctx)}
	}
}

// Run starts the Bubble Tea program and a refresh controller feeding it.
// It returns when the user quits or opts.Context is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	opts.Context = ctx

	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	controller := refresh.New(m.store, m.cursor, refresh.WithLogger(m.logger))
	go func() {
		_ = controller.Run(ctx, func(r refresh.Result) { p.Send(resultMsg(r)) })
	}()

	unwatch := m.store.Watch([]string{state.KeyStatus}, func() {
		p.Send(statusMsg(m.store.Snapshot()))
	})
	defer unwatch()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
