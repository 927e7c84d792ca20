package submodels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	focusedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFF"))

	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(hotPink).
			Padding(1, 2)
)

// ConfirmMsg carries the answer to a ConfirmModel prompt.
type ConfirmMsg struct {
	Accepted bool
}

// ConfirmModel is a y/n question.
type ConfirmModel struct {
	Title string
	Label string
}

func NewConfirmModel(title, label string) ConfirmModel {
	return ConfirmModel{Title: title, Label: label}
}

func (m ConfirmModel) Update(msg tea.Msg) (ConfirmModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch strings.ToLower(msg.String()) {
		case "y":
			return m, answer(true)
		case "n", "esc", "q":
			return m, answer(false)
		}
	}
	return m, nil
}

func answer(ok bool) tea.Cmd {
	return func() tea.Msg { return ConfirmMsg{Accepted: ok} }
}

func (m ConfirmModel) View() string {
	return confirmBoxStyle.Render(fmt.Sprintf(
		"%s\n\n%s\n\n%s",
		focusedStyle.Render(m.Title),
		m.Label,
		continueStyle.Render("y confirm · n cancel"),
	))
}
