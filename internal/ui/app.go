package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/foreman/internal/attendance"
	"github.com/five82/foreman/internal/config"
	"github.com/five82/foreman/internal/factory"
	"github.com/five82/foreman/internal/logtail"
	"github.com/five82/foreman/internal/prefs"
	"github.com/five82/foreman/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Config    config.Config
	API       factory.AttendanceAPI
	Store     *state.Store
	Logger    zerolog.Logger
	Prefs     prefs.Prefs
	PrefsPath string
	PollTick  time.Duration
	Now       func() time.Time // nil uses time.Now
}

// Model is the root application state for Bubble Tea. The attendance sheet
// it holds is only touched from Update.
type Model struct {
	// Configuration
	ctx       context.Context
	config    config.Config
	store     *state.Store
	logger    zerolog.Logger
	prefs     prefs.Prefs
	prefsPath string
	pollTick  time.Duration
	now       func() time.Time

	// Attendance
	sheet      *attendance.Sheet
	reconciler *attendance.Reconciler
	batcher    *attendance.Batcher
	bulk       *attendance.Bulk
	notices    *noticeLog

	// UI state
	theme  Theme
	keys   keyMap
	width  int
	height int
	ready  bool

	// Directory state
	snapshot       state.Snapshot
	rosterRevision uint64

	// Grid cursor
	cursorRow   int
	cursorDay   int
	rowOffset   int
	keyPainting bool

	// Remote work in flight
	loading    bool
	saving     bool
	bulkCancel context.CancelFunc

	// Overlays
	showHelp bool
	modal    Modal
	logs     logView
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultUIInterval
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	cfg := opts.Config
	notices := &noticeLog{now: now}
	sheet := attendance.NewSheet(attendance.Options{
		Now:      now,
		Notifier: notices,
		Logger:   opts.Logger,
	})
	sheet.SetBranchFilter(opts.Prefs.Branch(cfg.CompanyID))

	return Model{
		ctx:        ctx,
		config:     cfg,
		store:      opts.Store,
		logger:     opts.Logger,
		prefs:      opts.Prefs,
		prefsPath:  prefsPath,
		pollTick:   pollTick,
		now:        now,
		sheet:      sheet,
		reconciler: attendance.NewReconciler(opts.API, cfg.CompanyID, opts.Logger),
		batcher:    attendance.NewBatcher(opts.API, cfg.CompanyID, cfg.SaveConcurrency, opts.Logger),
		bulk:       attendance.NewBulk(opts.API, cfg.CompanyID, opts.Logger),
		notices:    notices,
		theme:      GetTheme(opts.Prefs.Theme),
		keys:       DefaultKeyMap(),
		cursorDay:  1,
		loading:    true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.pollTick),
		loadCmd(m.ctx, m.reconciler, m.sheet.Reload()),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.logs.resize(m.width, m.bodyHeight())
		m.ensureCursorVisible()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		return m.handleSnapshot(state.Snapshot(msg))

	case loadMsg:
		err := m.sheet.ApplyLoad(attendance.LoadResult(msg))
		if !errors.Is(err, attendance.ErrStaleLoad) {
			m.loading = false
		}
		m.clampCursor()
		return m, nil

	case saveMsg:
		m.saving = false
		ticket, ok := m.sheet.FinishSave(attendance.SaveReport(msg))
		if !ok {
			return m, nil
		}
		cmd := m.startLoad(ticket)
		return m, cmd

	case bulkMsg:
		if m.bulkCancel != nil {
			m.bulkCancel()
			m.bulkCancel = nil
		}
		ticket, ok := m.sheet.FinishMarkAll(attendance.BulkReport(msg))
		if !ok {
			return m, nil
		}
		cmd := m.startLoad(ticket)
		return m, cmd

	case logLinesMsg:
		m.logs.setEntries(msg.entries, msg.err, m.theme.Styles())
		return m, nil
	}

	if m.modal != nil {
		next, cmd, _ := m.modal.Update(msg, m.keys)
		m.modal = next
		return m, cmd
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
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.logs.open {
		cmds = append(cmds, readLogsCmd(m.config.LogFile))
	}
	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// handleSnapshot installs a new directory revision. The first directory
// triggers a reload so default fill covers every known employee.
func (m Model) handleSnapshot(snap state.Snapshot) (tea.Model, tea.Cmd) {
	m.snapshot = snap
	if !snap.HasDirectory || snap.Revision == m.rosterRevision {
		return m, nil
	}
	first := m.rosterRevision == 0
	m.rosterRevision = snap.Revision
	m.sheet.SetRoster(snap.Employees, snap.Branches)
	m.clampCursor()
	if first {
		cmd := m.startLoad(m.sheet.Reload())
		return m, cmd
	}
	return m, nil
}

// startLoad marks a load in flight and returns the command that runs it.
func (m *Model) startLoad(ticket attendance.LoadTicket) tea.Cmd {
	m.loading = true
	return loadCmd(m.ctx, m.reconciler, ticket)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	if m.logs.open {
		b.WriteString(m.logs.view(m.theme, m.width, m.bodyHeight()))
	} else {
		b.WriteString(m.renderGrid())
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())

	return b.String()
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type loadMsg attendance.LoadResult

type saveMsg attendance.SaveReport

type bulkMsg attendance.BulkReport

type logLinesMsg struct {
	entries []logtail.Entry
	err     error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func loadCmd(ctx context.Context, r *attendance.Reconciler, ticket attendance.LoadTicket) tea.Cmd {
	return func() tea.Msg {
		return loadMsg(r.Fetch(ctx, ticket))
	}
}

func saveCmd(ctx context.Context, b *attendance.Batcher, plan attendance.SavePlan) tea.Cmd {
	return func() tea.Msg {
		return saveMsg(b.Execute(ctx, plan))
	}
}

func bulkCmd(ctx context.Context, b *attendance.Bulk, plan attendance.BulkPlan) tea.Cmd {
	return func() tea.Msg {
		return bulkMsg(b.Execute(ctx, plan))
	}
}

func readLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		entries, err := logtail.ReadEntries(path, LogTailLines)
		return logLinesMsg{entries: entries, err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
