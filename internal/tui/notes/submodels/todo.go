package submodels

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TodoForm collects a new todo and whether it repeats daily.
type TodoForm struct {
	Task  textinput.Model
	Daily bool
	width int
}

func NewTodoForm() TodoForm {
	t := NewTextInput("What needs doing?", 200)
	t.Focus()
	return TodoForm{Task: t, width: 50}
}

// Update submits on enter and flips the daily flag on ctrl+d.
func (f TodoForm) Update(msg tea.Msg) (TodoForm, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			return f, submit
		case tea.KeyCtrlD:
			f.Daily = !f.Daily
			return f, nil
		}
	}

	var cmd tea.Cmd
	f.Task, cmd = f.Task.Update(msg)
	return f, cmd
}

func (f TodoForm) Values() (string, bool) {
	return f.Task.Value(), f.Daily
}

func (f *TodoForm) Reset() {
	f.Task.Reset()
	f.Daily = false
}

func (f *TodoForm) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	f.width = width
	f.Task.Width = width
}

func (f TodoForm) View() string {
	box := "[ ]"
	if f.Daily {
		box = "[x]"
	}
	return fmt.Sprintf(
		"%s\n%s\n%s\n\n%s\n\n%s\n",
		formTitleStyle.Render("New todo"),
		formInputStyle.Width(f.width).Render("Task"),
		f.Task.View(),
		formInputStyle.Render(box+" Daily (ctrl+d)"),
		continueStyle.Render("enter save · esc cancel"),
	)
}
