// ABOUTME: Delete confirmation view
// ABOUTME: Gates every delete behind an explicit y/n answer
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// confirmState holds the record pending deletion. Nothing is removed
// optimistically, so declining needs no rollback.
type confirmState struct {
	res *resource
	rec record
}

func (m Model) renderConfirmDeleteView() string {
	c := m.confirm
	ls := m.lists[c.res.route]

	display := ""
	if ls != nil {
		if row := c.res.rowFor(c.rec, ls.lookups); len(row) > 0 {
			display = row[0]
		}
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		warningStyle.Render("DELETE CONFIRMATION"),
		"",
		"Are you sure you want to delete this "+c.res.name+"?",
		"",
		display,
		"",
		lipgloss.JoinHorizontal(
			lipgloss.Left,
			confirmButtonStyle.Render("Yes, Delete (y)"),
			cancelButtonStyle.Render("Cancel (n/esc)"),
		),
	)

	return confirmBoxStyle.Render(content)
}

func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		c := m.confirm
		m.confirm = nil
		m.mode = viewTable
		return m, m.deleteRecord(c.res, c.rec.id)
	case "n", "N", "esc":
		// Declined: no request is issued and the list is untouched.
		m.confirm = nil
		m.mode = viewTable
	}
	return m, nil
}

func (m Model) deleteRecord(res *resource, id int) tea.Cmd {
	return func() tea.Msg {
		err := res.deleteByID(context.Background(), m.backend, id)
		return deleteDoneMsg{route: res.route, err: err}
	}
}

var (
	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(1, 2).
			Width(60).
			Align(lipgloss.Center)

	confirmButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("9")).
				Padding(0, 2).
				MarginRight(2)

	cancelButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("8")).
				Padding(0, 2)
)
