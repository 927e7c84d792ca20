package notes

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/noteplan/internal/editor"
	"github.com/Paintersrp/noteplan/internal/tui/notes/submodels"
)

type editorField int

const (
	fieldTitle editorField = iota
	fieldTags
	fieldContent
	fieldCount
)

const timeLayout = "2006-01-02 15:04"

// noteEditor is the screen for the note held by the editor session.
type noteEditor struct {
	title    textinput.Model
	tags     textinput.Model
	content  textarea.Model
	field    editorField
	preview  bool
	rendered string
	view     editor.View
	width    int
	height   int
}

func newNoteEditor() *noteEditor {
	return &noteEditor{
		title:   submodels.NewTextInput("Title", 200),
		tags:    submodels.NewTextInput("tag1, tag2", 256),
		content: submodels.NewTextArea("Write some markdown..."),
	}
}

// load fills the fields from a freshly opened note.
func (e *noteEditor) load(v editor.View) {
	e.view = v
	e.title.SetValue(v.Title)
	e.tags.SetValue(v.TagsText())
	e.content.SetValue(v.Content)
	e.preview = false
	e.rendered = ""
	e.field = fieldContent
	e.focus()
}

// saved records what the session now holds without touching the inputs.
func (e *noteEditor) saved(v editor.View) {
	e.view = v
}

func (e *noteEditor) draft() editor.Draft {
	return editor.Draft{
		Title:   e.title.Value(),
		Content: e.content.Value(),
		Tags:    e.tags.Value(),
	}
}

func (e *noteEditor) dirty() bool {
	return e.title.Value() != e.view.Title ||
		e.content.Value() != e.view.Content ||
		e.tags.Value() != e.view.TagsText()
}

func (e *noteEditor) next() {
	e.field = (e.field + 1) % fieldCount
	e.focus()
}

func (e *noteEditor) prev() {
	e.field = (e.field + fieldCount - 1) % fieldCount
	e.focus()
}

func (e *noteEditor) focus() {
	e.title.Blur()
	e.tags.Blur()
	e.content.Blur()
	switch e.field {
	case fieldTitle:
		e.title.Focus()
	case fieldTags:
		e.tags.Focus()
	default:
		e.content.Focus()
	}
}

func (e *noteEditor) update(msg tea.Msg) tea.Cmd {
	if e.preview {
		return nil
	}

	var cmd tea.Cmd
	switch e.field {
	case fieldTitle:
		e.title, cmd = e.title.Update(msg)
	case fieldTags:
		e.tags, cmd = e.tags.Update(msg)
	default:
		e.content, cmd = e.content.Update(msg)
	}
	return cmd
}

func (e *noteEditor) setSize(width, height int) {
	if width < 20 {
		width = 20
	}
	e.width = width
	e.height = height
	e.title.Width = width
	e.tags.Width = width
	e.content.SetWidth(width)
	if h := height - 9; h > 3 {
		e.content.SetHeight(h)
	}
}

func (e *noteEditor) header() string {
	name := e.view.Title
	if e.dirty() {
		name += " *"
	}
	return fmt.Sprintf("Editing %s", name)
}

func (e *noteEditor) timestamps() string {
	return fmt.Sprintf(
		"Created: %s  ·  Last updated: %s",
		formatTime(e.view.CreatedAt),
		formatTime(e.view.UpdatedAt),
	)
}

func (e *noteEditor) body() string {
	if e.preview {
		return previewStyle.Render(e.rendered)
	}
	return e.content.View()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}
