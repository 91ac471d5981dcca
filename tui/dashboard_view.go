// ABOUTME: Read-only dashboard view
// ABOUTME: Stat cards and the deals-by-stage breakdown from one fetch
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"crmterm/models"
)

// dashboardState holds the single aggregate fetch. A nil stats after loading
// means the fetch failed.
type dashboardState struct {
	loading bool
	stats   *models.DashboardStats
}

func (m Model) renderDashboardView() string {
	if m.dash.loading {
		return loadingStyle.Render("Loading dashboard...")
	}
	if m.dash.stats == nil {
		return errorStyle.Render("Error loading dashboard")
	}
	stats := m.dash.stats

	cards := lipgloss.JoinHorizontal(
		lipgloss.Top,
		statCard("Total Customers", strconv.Itoa(stats.TotalCustomers)),
		statCard("Active Customers", strconv.Itoa(stats.ActiveCustomers)),
		statCard("Total Deals", strconv.Itoa(stats.TotalDeals)),
		statCard("Total Deal Value", "$"+formatAmount(stats.TotalDealValue)),
	)

	var s strings.Builder
	s.WriteString(titleStyle.Render("Dashboard"))
	s.WriteString("\n\n")
	s.WriteString(cards)
	s.WriteString("\n\n")
	s.WriteString(stageHeaderStyle.Render("Deals by Stage"))
	s.WriteString("\n\n")

	if len(stats.DealsByStage) == 0 {
		s.WriteString(emptyStyle.Render("No deals yet"))
	} else {
		for _, stage := range stats.DealsByStage {
			s.WriteString(fmt.Sprintf("  %-16s %s  %s\n",
				stage.Stage,
				stageCountStyle.Render(fmt.Sprintf("%d deals", stage.Count)),
				"$"+formatAmount(stage.Value)))
		}
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("Tab/1-5: Switch view • r: Refresh • L: Logout • q: Quit"))
	return s.String()
}

func statCard(label, value string) string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		statLabelStyle.Render(label),
		statValueStyle.Render(value),
	)
	return statCardStyle.Render(content)
}

var (
	statCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 2).
			MarginRight(2).
			Align(lipgloss.Center)

	statLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	statValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	stageHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Underline(true)

	stageCountStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)
