// Package console is the terminal rendition of the admin dashboard. The
// bubbletea loop is the single owner of the dashstate.State: key presses and
// fetch results are both fed through dashstate.Reduce, and the commands it
// returns become tea.Cmds.
package console

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	metricsstore "github.com/dalemusser/arenadash/internal/app/store/metrics"
	platformstore "github.com/dalemusser/arenadash/internal/app/store/platform"
	userstore "github.com/dalemusser/arenadash/internal/app/store/users"
	"github.com/dalemusser/arenadash/internal/app/system/dashstate"
	"github.com/dalemusser/arenadash/internal/app/system/search"
	"github.com/dalemusser/arenadash/internal/app/system/timeouts"
	"github.com/dalemusser/arenadash/internal/domain/models"
	"go.uber.org/zap"
)

// eventMsg carries a dashstate event into Update. Fetch results arrive this way.
type eventMsg struct{ ev dashstate.Event }

// Options configures a Model.
type Options struct {
	// Timeout bounds each platform call. Zero uses timeouts.Medium.
	Timeout time.Duration
}

// Model is the bubbletea model for one dashboard session.
type Model struct {
	state dashstate.State

	metrics *metricsstore.Client
	details *userstore.DetailFetcher
	timeout time.Duration
	log     *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	search  textinput.Model

	searching bool
	cursor    int
	width     int
	height    int

	notice     dashstate.Notice
	haveNotice bool
	exitNotice string
}

// New builds a Model whose fetches go through gw.
func New(gw platformstore.Gateway, opts Options, logger *zap.Logger) Model {
	if opts.Timeout <= 0 {
		opts.Timeout = timeouts.Medium()
	}
	ctx, cancel := context.WithCancel(context.Background())

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorAccent)

	ti := textinput.New()
	ti.Placeholder = "Search users"
	ti.Prompt = "/ "
	ti.CharLimit = 120

	return Model{
		state:   dashstate.New(),
		metrics: metricsstore.New(gw, logger),
		details: userstore.NewDetailFetcher(gw, logger),
		timeout: opts.Timeout,
		log:     logger,
		ctx:     ctx,
		cancel:  cancel,
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		search:  ti,
	}
}

// State returns the current dashboard snapshot.
func (m Model) State() dashstate.State { return m.state }

// ExitNotice is the message to print after the program ends because the
// session was redirected away. It is empty for a normal quit.
func (m Model) ExitNotice() string { return m.exitNotice }

// Init mounts the dashboard.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, send(dashstate.Mounted{}))
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m.apply(msg.ev)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Refresh):
		return m.apply(dashstate.RefreshRequested{})

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.state.Filtered)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if u, ok := m.selected(); ok {
			return m.apply(dashstate.DetailRequested{ID: u.ID})
		}
		return m, nil

	case key.Matches(msg, m.keys.Close):
		if m.state.Detail.Open() {
			return m.apply(dashstate.DetailClosed{})
		}
		return m, nil
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyCtrlC:
		return m.quit()
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != before {
		next, evCmd := m.apply(dashstate.CriterionChanged{Criterion: search.Criterion(v)})
		return next, tea.Batch(cmd, evCmd)
	}
	return m, cmd
}

// apply runs ev through the reducer and turns the resulting commands into
// tea.Cmds. Notices are taken over into the notice line and acknowledged.
func (m Model) apply(ev dashstate.Event) (Model, tea.Cmd) {
	next, cmds := dashstate.Reduce(m.state, ev)
	m.state = next

	if n := len(m.state.Notices); n > 0 {
		m.notice = m.state.Notices[n-1]
		m.haveNotice = true
		m.state, _ = dashstate.Reduce(m.state, dashstate.NoticesAcknowledged{Through: m.state.LastNoticeSeq()})
	}
	m.clampCursor()

	var out []tea.Cmd
	for _, c := range cmds {
		switch c := c.(type) {
		case dashstate.LoadMetrics:
			out = append(out, m.loadMetrics())
		case dashstate.FetchDetail:
			out = append(out, m.fetchDetail(c))
		case dashstate.Redirect:
			m.exitNotice = c.Reason
			m.log.Info("dashboard redirect", zap.String("reason", c.Reason))
			m.cancel()
			return m, tea.Quit
		}
	}
	return m, tea.Batch(out...)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	m.state, _ = dashstate.Reduce(m.state, dashstate.Teardown{})
	return m, tea.Quit
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.state.Filtered) {
		m.cursor = len(m.state.Filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selected() (models.UserSummary, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.Filtered) {
		return models.UserSummary{}, false
	}
	return m.state.Filtered[m.cursor], true
}

func (m Model) loadMetrics() tea.Cmd {
	parent, timeout, log, metrics := m.ctx, m.timeout, m.log, m.metrics
	return func() tea.Msg {
		ctx, cancel := timeouts.WithTimeout(parent, timeout, log, "load dashboard metrics")
		defer cancel()

		res, err := metrics.Load(ctx)
		if err != nil {
			return eventMsg{dashstate.MetricsFailed{Err: err}}
		}
		return eventMsg{dashstate.MetricsLoaded{
			Authorized: res.Authorized,
			Metrics:    res.Metrics,
			Users:      res.Users,
		}}
	}
}

func (m Model) fetchDetail(c dashstate.FetchDetail) tea.Cmd {
	parent, timeout, log, details := m.ctx, m.timeout, m.log, m.details
	return func() tea.Msg {
		ctx, cancel := timeouts.WithTimeout(parent, timeout, log, "fetch user detail")
		defer cancel()

		u, err := details.FetchDetail(ctx, c.ID)
		switch {
		case errors.Is(err, models.ErrUserNotFound):
			return eventMsg{dashstate.DetailNotFound{Token: c.Token}}
		case err != nil:
			return eventMsg{dashstate.DetailFetchFailed{Token: c.Token, Err: err}}
		}
		return eventMsg{dashstate.DetailLoaded{Token: c.Token, User: u}}
	}
}

func send(ev dashstate.Event) tea.Cmd {
	return func() tea.Msg { return eventMsg{ev} }
}
