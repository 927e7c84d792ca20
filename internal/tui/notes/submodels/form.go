package submodels

import (
	"fmt"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	title = iota
	tags
	content
	button
)

const (
	hotPink  = lipgloss.Color("#0AF")
	darkGray = lipgloss.Color("#767676")
)

var (
	formInputStyle = lipgloss.NewStyle().Foreground(hotPink)
	formTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0AF")).
			Background(lipgloss.Color("transparent")).
			Padding(1, 0)

	continueStyle = lipgloss.NewStyle().Foreground(darkGray)
)

// NewTextInput returns a single line input with a static cursor.
func NewTextInput(placeholder string, limit int) textinput.Model {
	t := textinput.New()
	t.Placeholder = placeholder
	t.CharLimit = limit
	t.Width = 50
	t.Prompt = ""
	t.Cursor.SetMode(cursor.CursorStatic)
	return t
}

// NewTextArea returns an unbounded multi-line input. The limits must be
// lifted before any SetValue or long notes are cut off.
func NewTextArea(placeholder string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(50)
	ta.SetHeight(8)
	ta.Cursor.SetMode(cursor.CursorStatic)
	return ta
}

// NoteForm collects a new note: title, comma separated tags and markdown
// content.
type NoteForm struct {
	Title   textinput.Model
	Tags    textinput.Model
	Content textarea.Model
	Focused int
	btn     SubmitButton
	width   int
}

func NewNoteForm() NoteForm {
	f := NoteForm{
		Title:   NewTextInput("Title", 200),
		Tags:    NewTextInput("tag1, tag2", 256),
		Content: NewTextArea("Write some markdown..."),
		btn:     NewSubmitButton("Add note"),
		width:   50,
	}
	f.focus()
	return f
}

func (f NoteForm) Update(msg tea.Msg) (NoteForm, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyTab:
			f.Focused = (f.Focused + 1) % (button + 1)
			f.focus()
			return f, nil
		case tea.KeyShiftTab:
			f.Focused = (f.Focused + button) % (button + 1)
			f.focus()
			return f, nil
		case tea.KeyEnter:
			if f.Focused == title || f.Focused == tags {
				f.Focused++
				f.focus()
				return f, nil
			}
		}
	}

	var cmd tea.Cmd
	switch f.Focused {
	case title:
		f.Title, cmd = f.Title.Update(msg)
	case tags:
		f.Tags, cmd = f.Tags.Update(msg)
	case content:
		f.Content, cmd = f.Content.Update(msg)
	case button:
		f.btn, cmd = f.btn.Update(msg)
	}
	return f, cmd
}

func (f *NoteForm) focus() {
	f.Title.Blur()
	f.Tags.Blur()
	f.Content.Blur()
	f.btn.Blur()

	switch f.Focused {
	case title:
		f.Title.Focus()
	case tags:
		f.Tags.Focus()
	case content:
		f.Content.Focus()
	default:
		f.btn.Focus()
	}
}

// Values returns the raw field contents.
func (f NoteForm) Values() (string, string, string) {
	return f.Title.Value(), f.Content.Value(), f.Tags.Value()
}

// Reset clears every field and focuses the title.
func (f *NoteForm) Reset() {
	f.Title.Reset()
	f.Tags.Reset()
	f.Content.Reset()
	f.Focused = title
	f.focus()
}

func (f *NoteForm) SetSize(width, height int) {
	if width < 20 {
		width = 20
	}
	f.width = width
	f.Title.Width = width
	f.Tags.Width = width
	f.Content.SetWidth(width)
	if h := height - 10; h > 3 {
		f.Content.SetHeight(h)
	}
}

func (f NoteForm) View() string {
	return fmt.Sprintf(
		"%s\n%s\n%s\n\n%s\n%s\n\n%s\n%s\n\n%s\n%s\n",
		formTitleStyle.Render("New note"),
		formInputStyle.Width(f.width).Render("Title"),
		f.Title.View(),
		formInputStyle.Width(f.width).Render("Tags (comma separated)"),
		f.Tags.View(),
		formInputStyle.Width(f.width).Render("Content"),
		f.Content.View(),
		f.btn.View(),
		continueStyle.Render("tab next · ctrl+s save · esc cancel"),
	)
}
