package submodels

import (
	tea "github.com/charmbracelet/bubbletea"
)

// SubmitMsg is sent when a form's submit button is pressed.
type SubmitMsg struct{}

type SubmitButton struct {
	label   string
	focused bool
}

func NewSubmitButton(label string) SubmitButton {
	return SubmitButton{label: label}
}

func (b *SubmitButton) Focus() {
	b.focused = true
}

func (b *SubmitButton) Blur() {
	b.focused = false
}

func (b SubmitButton) Focused() bool {
	return b.focused
}

func (b SubmitButton) Update(msg tea.Msg) (SubmitButton, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if b.focused && msg.Type == tea.KeyEnter {
			return b, submit
		}
	}
	return b, nil
}

func (b SubmitButton) View() string {
	if b.focused {
		return formInputStyle.Render("[ " + b.label + " ]")
	}
	return continueStyle.Render("[ " + b.label + " ]")
}

func submit() tea.Msg {
	return SubmitMsg{}
}
