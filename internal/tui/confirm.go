package tui

import tea "github.com/charmbracelet/bubbletea"

type confirmModel struct {
	message string
	// onYes runs when the user confirms.
	onYes func() tea.Cmd
}

func (m confirmModel) View() string {
	content := "Delete \"" + m.message + "\"?\n\n"
	content += helpStyle.Render("y yes    n no")
	return overlayBoxStyle.Render(content)
}
