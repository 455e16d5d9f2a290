package admin

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0b0d12")).
			Background(lipgloss.Color("#4ade80")).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0")).
			Width(12)

	focusedLabelStyle = labelStyle.
				Foreground(lipgloss.Color("#34d474")).
				Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#22d3ee"))

	busyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f59e0b"))

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#505868")).
			Padding(0, 1)

	focusedPanelStyle = panelStyle.
				BorderForeground(lipgloss.Color("#34d474"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#b45555")).
			Foreground(lipgloss.Color("#e4e4ec")).
			Padding(1, 2)

	confirmStyle = modalStyle.
			BorderForeground(lipgloss.Color("#f59e0b"))
)

// renderHelp renders key/label pairs as a single help line.
func renderHelp(pairs ...[2]string) string {
	out := ""
	for i, p := range pairs {
		if i > 0 {
			out += helpLabelStyle.Render("  ")
		}
		out += helpKeyStyle.Render(p[0]) + " " + helpLabelStyle.Render(p[1])
	}
	return out
}
