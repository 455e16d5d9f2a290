package admin

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const listWidth = 36

func (a App) View() string {
	if a.screen == screenLogin {
		return a.viewLogin()
	}

	var body string
	switch {
	case a.modal != "":
		body = modalStyle.Render(a.modal + "\n\n" + dimStyle.Render("enter/esc to dismiss"))
	case a.confirmDelete && a.selected != nil:
		body = confirmStyle.Render(fmt.Sprintf("Delete %q?\n\n%s", a.selected.Title, dimStyle.Render("y to confirm, n to cancel")))
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top, a.viewList(), " ", a.viewForm())
	}

	return strings.Join([]string{
		titleStyle.Render("Portfolio Admin"),
		a.viewSearch(),
		body,
		a.viewStatus(),
		renderHelp(
			[2]string{"tab", "focus"},
			[2]string{"enter", "select"},
			[2]string{"^r", "refresh"},
			[2]string{"^n", "add"},
			[2]string{"^s", "update"},
			[2]string{"^d", "delete"},
			[2]string{"^y", "copy link"},
			[2]string{"esc", "clear"},
			[2]string{"^c", "quit"},
		),
	}, "\n")
}

func (a App) viewLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Portfolio Admin"))
	b.WriteString("\n\n")
	b.WriteString(focusedLabelStyle.Render("Password"))
	b.WriteString(cursorStyle.Render(strings.Repeat("•", len([]rune(a.password))) + "█"))
	b.WriteString("\n\n")
	switch {
	case a.busy:
		b.WriteString(busyStyle.Render("Signing in…"))
	case a.loginErr != "":
		b.WriteString(modalStyle.Render(a.loginErr))
	default:
		b.WriteString(renderHelp([2]string{"enter", "sign in"}, [2]string{"esc", "quit"}))
	}
	return b.String()
}

func (a App) viewSearch() string {
	label := labelStyle
	if a.focus == focusSearch {
		label = focusedLabelStyle
	}
	text := a.search
	if a.focus == focusSearch {
		text += "█"
	}
	return label.Render("Search") + normalStyle.Render(text)
}

func (a App) viewList() string {
	var b strings.Builder
	if len(a.visible) == 0 {
		b.WriteString(dimStyle.Render("No projects"))
	}
	for i, p := range a.visible {
		line := truncStr(fmt.Sprintf("%d: %s", p.ID, p.Title), listWidth-4)
		switch {
		case a.selected != nil && a.selected.ID == p.ID:
			line = selectedStyle.Render(line)
		case i == a.cursor && a.focus == focusList:
			line = cursorStyle.Render("› " + line)
		default:
			line = normalStyle.Render("  " + line)
		}
		b.WriteString(line)
		if i < len(a.visible)-1 {
			b.WriteString("\n")
		}
	}

	style := panelStyle
	if a.focus == focusList {
		style = focusedPanelStyle
	}
	return style.Width(listWidth).Render(b.String())
}

func (a App) viewForm() string {
	lines := make([]string, 0, numFields)
	for f := formField(0); f < numFields; f++ {
		focused := a.focus == focusForm+focus(f)
		label := labelStyle
		value := a.form[f]
		if focused {
			label = focusedLabelStyle
			value += "█"
		}
		lines = append(lines, label.Render(fieldNames[f])+normalStyle.Render(value))
	}

	style := panelStyle
	if a.focus >= focusForm {
		style = focusedPanelStyle
	}
	width := a.width - listWidth - 6
	if width < 30 {
		width = 30
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func (a App) viewStatus() string {
	switch {
	case a.busy:
		return busyStyle.Render("Working…")
	case a.status != "":
		return statusStyle.Render(a.status)
	case a.selected != nil:
		return dimStyle.Render(fmt.Sprintf("Editing #%d, updated %s", a.selected.ID, a.selected.UpdatedAt.Local().Format("2006-01-02 15:04")))
	}
	return ""
}
