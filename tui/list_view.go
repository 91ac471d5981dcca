// ABOUTME: Generic entity list view
// ABOUTME: Table rendering, cursor movement, and create/edit/delete/toggle keys
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// listState is one entity screen's component-local state. Records are
// replaced wholesale on every fetch, never patched.
type listState struct {
	res     *resource
	records []record
	lookups map[string]lookup
	loading bool
	cursor  int
}

func newListState(res *resource) *listState {
	return &listState{
		res:     res,
		lookups: make(map[string]lookup),
		loading: true,
	}
}

func (m Model) renderListView() string {
	ls := m.lists[m.route]
	if ls == nil {
		return ""
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render(ls.res.title))
	s.WriteString("\n\n")

	if ls.loading {
		s.WriteString(loadingStyle.Render("Loading " + strings.ToLower(ls.res.title) + "..."))
		s.WriteString("\n")
		return s.String()
	}

	if len(ls.records) == 0 {
		s.WriteString(emptyStyle.Render("No " + strings.ToLower(ls.res.title) + " found. Add your first " + ls.res.name + "!"))
		s.WriteString("\n\n")
		s.WriteString(m.renderListHelp(ls))
		return s.String()
	}

	rows := make([]table.Row, 0, len(ls.records))
	for _, rec := range ls.records {
		rows = append(rows, ls.res.rowFor(rec, ls.lookups))
	}

	height := m.height - 12
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(ls.res.columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	if ls.cursor < len(rows) {
		t.SetCursor(ls.cursor)
	}

	s.WriteString(t.View())
	s.WriteString("\n\n")
	s.WriteString(m.renderListHelp(ls))
	return s.String()
}

func (m Model) renderListHelp(ls *listState) string {
	help := []string{
		"↑/↓: Navigate",
		"Tab/1-5: Switch view",
		"n: New",
		"e: Edit",
		"d: Delete",
	}
	if ls.res.toggle != nil {
		help = append(help, "c: Toggle complete")
	}
	help = append(help, "r: Refresh", "L: Logout", "q: Quit")
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ls := m.lists[m.route]
	if ls == nil {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if ls.cursor > 0 {
			ls.cursor--
		}
	case "down", "j":
		if ls.cursor < len(ls.records)-1 {
			ls.cursor++
		}
	case "n":
		m.form = newFormState(ls.res, nil, ls.lookups)
		m.mode = viewForm
	case "enter", "e":
		if ls.cursor < len(ls.records) {
			rec := ls.records[ls.cursor]
			m.form = newFormState(ls.res, &rec, ls.lookups)
			m.mode = viewForm
		}
	case "d":
		if ls.cursor < len(ls.records) {
			m.confirm = &confirmState{res: ls.res, rec: ls.records[ls.cursor]}
			m.mode = viewConfirmDelete
		}
	case "c":
		if ls.res.toggle != nil && ls.cursor < len(ls.records) {
			return m, m.toggleComplete(ls.res, ls.records[ls.cursor])
		}
	}
	return m, nil
}

// toggleComplete issues a full-record update with only the completed flag
// flipped, then the completion message triggers a refetch.
func (m Model) toggleComplete(res *resource, rec record) tea.Cmd {
	return func() tea.Msg {
		err := res.toggle(context.Background(), m.backend, rec)
		return toggleDoneMsg{route: res.route, err: err}
	}
}

var (
	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)
