// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Root model, route navigation, and dispatch to per-view handlers
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"crmterm/api"
)

// viewMode is the state of the active route: the table itself, the modal
// form it owns, a delete confirmation, or a blocking alert.
type viewMode int

const (
	viewTable viewMode = iota
	viewForm
	viewConfirmDelete
	viewAlert
)

// Model is the main bubbletea model. It is the layout: navigation chrome
// wrapping whichever view the current route selects.
type Model struct {
	backend Backend
	log     *zap.Logger

	user   string
	logout func() error

	route string
	mode  viewMode

	lists   map[string]*listState
	dash    *dashboardState
	form    *formState
	confirm *confirmState

	alertText string

	width     int
	height    int
	loggedOut bool
}

// NewModel creates the root model. logout invalidates the session; it is
// injected so tests can observe it without touching the filesystem.
func NewModel(backend Backend, log *zap.Logger, user string, logout func() error) Model {
	return Model{
		backend: backend,
		log:     log,
		user:    user,
		logout:  logout,
		route:   routeDashboard,
		mode:    viewTable,
		lists:   make(map[string]*listState),
		dash:    &dashboardState{loading: true},
		width:   100,
		height:  30,
	}
}

func (m Model) Init() tea.Cmd {
	return m.fetchStats()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case recordsLoadedMsg:
		return m.handleRecordsLoaded(msg)
	case lookupLoadedMsg:
		return m.handleLookupLoaded(msg)
	case statsLoadedMsg:
		return m.handleStatsLoaded(msg)
	case saveDoneMsg:
		return m.handleSaveDone(msg)
	case deleteDoneMsg:
		return m.handleDeleteDone(msg)
	case toggleDoneMsg:
		return m.handleToggleDone(msg)
	}
	return m, nil
}

func (m Model) View() string {
	if m.loggedOut {
		return "Signed out. Set CRM_TOKEN or restore the session file to sign back in.\n"
	}

	header := titleStyle.Render("CRM System") + "  " +
		userStyle.Render("Welcome, "+m.user)
	nav := m.renderNav()

	var body string
	switch {
	case m.mode == viewForm && m.form != nil:
		body = m.renderFormView()
	case m.mode == viewConfirmDelete && m.confirm != nil:
		body = m.renderConfirmDeleteView()
	case m.mode == viewAlert:
		body = m.renderAlertView()
	case m.route == routeDashboard:
		body = m.renderDashboardView()
	default:
		body = m.renderListView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, "", nav, "", body)
}

// renderNav renders the route tabs. The active entry is an exact match on
// the current path.
func (m Model) renderNav() string {
	var rendered []string
	for _, entry := range navEntries {
		if entry.route == m.route {
			rendered = append(rendered, tabActiveStyle.Render(entry.label))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(entry.label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case viewForm:
		return m.handleFormKeys(msg)
	case viewConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	case viewAlert:
		return m.handleAlertKeys(msg)
	}

	// Layout-level keys, available on every table and the dashboard.
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "L":
		if err := m.logout(); err != nil {
			m.log.Error("logout failed", zap.Error(err))
		}
		m.loggedOut = true
		return m, tea.Quit
	case "1", "2", "3", "4", "5":
		idx := int(msg.String()[0] - '1')
		return m.navigate(navEntries[idx].route)
	case "tab":
		return m.navigate(m.adjacentRoute(1))
	case "shift+tab":
		return m.navigate(m.adjacentRoute(-1))
	case "r":
		return m.navigate(m.route)
	}

	if m.route == routeDashboard {
		return m, nil
	}
	return m.handleListKeys(msg)
}

func (m Model) adjacentRoute(step int) string {
	for i, entry := range navEntries {
		if entry.route == m.route {
			next := (i + step + len(navEntries)) % len(navEntries)
			return navEntries[next].route
		}
	}
	return routeDashboard
}

// navigate enters a route. Entering a route mounts its view fresh: the own
// collection and every related lookup are fetched concurrently, and the
// loading gate tracks the own fetch alone.
func (m Model) navigate(route string) (tea.Model, tea.Cmd) {
	m.route = route
	m.mode = viewTable
	m.form = nil
	m.confirm = nil
	m.alertText = ""

	if route == routeDashboard {
		m.dash = &dashboardState{loading: true}
		return m, m.fetchStats()
	}

	res := resources[route]
	m.lists[route] = newListState(res)

	cmds := []tea.Cmd{m.fetchRecords(res)}
	for _, lookupRoute := range res.lookups {
		cmds = append(cmds, m.fetchLookup(route, lookupRoute))
	}
	return m, tea.Batch(cmds...)
}

// closeForm clears the form and unconditionally refetches the owning list.
// This refetch-on-close is the only synchronization between form and list.
func (m Model) closeForm() (tea.Model, tea.Cmd) {
	res := m.form.res
	m.form = nil
	m.mode = viewTable
	return m, m.fetchRecords(res)
}

// Commands

func (m Model) fetchRecords(res *resource) tea.Cmd {
	return func() tea.Msg {
		records, err := res.fetch(context.Background(), m.backend)
		return recordsLoadedMsg{route: res.route, records: records, err: err}
	}
}

func (m Model) fetchLookup(ownerRoute, lookupRoute string) tea.Cmd {
	return func() tea.Msg {
		options, err := lookupFetchers[lookupRoute](context.Background(), m.backend)
		return lookupLoadedMsg{route: ownerRoute, lookupRoute: lookupRoute, options: options, err: err}
	}
}

func (m Model) fetchStats() tea.Cmd {
	return func() tea.Msg {
		stats, err := m.backend.DashboardStats(context.Background())
		return statsLoadedMsg{stats: stats, err: err}
	}
}

// Message handlers

func (m Model) handleRecordsLoaded(msg recordsLoadedMsg) (tea.Model, tea.Cmd) {
	ls := m.lists[msg.route]
	if ls == nil {
		return m, nil
	}
	ls.loading = false
	if msg.err != nil {
		m.log.Error("failed to fetch "+ls.res.name+" list", zap.Error(msg.err))
		return m, nil
	}
	ls.records = msg.records
	if ls.cursor >= len(ls.records) {
		ls.cursor = 0
	}
	return m, nil
}

func (m Model) handleLookupLoaded(msg lookupLoadedMsg) (tea.Model, tea.Cmd) {
	ls := m.lists[msg.route]
	if ls == nil {
		return m, nil
	}
	if msg.err != nil {
		m.log.Error("failed to fetch related collection",
			zap.String("route", msg.lookupRoute), zap.Error(msg.err))
		return m, nil
	}
	ls.lookups[msg.lookupRoute] = lookup{loaded: true, options: msg.options}
	return m, nil
}

func (m Model) handleStatsLoaded(msg statsLoadedMsg) (tea.Model, tea.Cmd) {
	m.dash.loading = false
	if msg.err != nil {
		m.log.Error("failed to fetch dashboard stats", zap.Error(msg.err))
		return m, nil
	}
	m.dash.stats = msg.stats
	return m, nil
}

func (m Model) handleSaveDone(msg saveDoneMsg) (tea.Model, tea.Cmd) {
	if m.form == nil || m.form.res.route != msg.route {
		return m, nil
	}
	m.form.submitting = false
	if msg.err != nil {
		m.log.Error("failed to save "+m.form.res.name, zap.Error(msg.err))
		m.form.errMsg = saveErrorMessage(msg.err, m.form.res.name)
		return m, nil
	}
	return m.closeForm()
}

func (m Model) handleDeleteDone(msg deleteDoneMsg) (tea.Model, tea.Cmd) {
	res := resources[msg.route]
	if msg.err != nil {
		m.log.Error("failed to delete "+res.name, zap.Error(msg.err))
		m.alertText = "Error deleting " + res.name
		m.mode = viewAlert
		return m, nil
	}
	return m, m.fetchRecords(res)
}

func (m Model) handleToggleDone(msg toggleDoneMsg) (tea.Model, tea.Cmd) {
	res := resources[msg.route]
	if msg.err != nil {
		m.log.Error("failed to update "+res.name, zap.Error(msg.err))
		m.alertText = "Error updating " + res.name
		m.mode = viewAlert
		return m, nil
	}
	return m, m.fetchRecords(res)
}

func (m Model) handleAlertKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", " ":
		m.alertText = ""
		m.mode = viewTable
	}
	return m, nil
}

func (m Model) renderAlertView() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		warningStyle.Render(m.alertText),
		"",
		helpStyle.Render("Enter: Dismiss"),
	)
	return alertBoxStyle.Render(content)
}

// saveErrorMessage prefers the server's own error text, then local widget
// validation text, then the generic fallback.
func saveErrorMessage(err error, entityName string) string {
	var srvErr *api.ServerError
	if errors.As(err, &srvErr) && srvErr.Message != "" {
		return srvErr.Message
	}
	var fe fieldError
	if errors.As(err, &fe) {
		return string(fe)
	}
	return "Error saving " + entityName
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	alertBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(1, 2).
			Width(50).
			Align(lipgloss.Center)
)
