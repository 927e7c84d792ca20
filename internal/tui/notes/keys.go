package notes

import "github.com/charmbracelet/bubbles/key"

type listKeyMap struct {
	up         key.Binding
	down       key.Binding
	nextPane   key.Binding
	prevPane   key.Binding
	open       key.Binding
	toggle     key.Binding
	selectAll  key.Binding
	addNote    key.Binding
	addTodo    key.Binding
	delete     key.Binding
	refresh    key.Binding
	toggleHelp key.Binding
	quit       key.Binding
}

func newListKeyMap() *listKeyMap {
	return &listKeyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		nextPane: key.NewBinding(
			key.WithKeys("tab", "l"),
			key.WithHelp("tab", "next pane"),
		),
		prevPane: key.NewBinding(
			key.WithKeys("shift+tab", "h"),
			key.WithHelp("shift+tab", "previous pane"),
		),
		open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "select/open"),
		),
		toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle todo"),
		),
		selectAll: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "all notes"),
		),
		addNote: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add note"),
		),
		addTodo: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "add todo"),
		),
		delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		toggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (m listKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{m.nextPane, m.open, m.addNote, m.addTodo, m.delete, m.toggleHelp, m.quit}
}

func (m listKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.up, m.down, m.nextPane, m.prevPane},
		{m.open, m.toggle, m.selectAll, m.refresh},
		{m.addNote, m.addTodo, m.delete},
		{m.toggleHelp, m.quit},
	}
}

type editorKeyMap struct {
	save      key.Binding
	close     key.Binding
	nextField key.Binding
	prevField key.Binding
	preview   key.Binding
	copy      key.Binding
}

func newEditorKeyMap() *editorKeyMap {
	return &editorKeyMap{
		save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		nextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		prevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		preview: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "preview"),
		),
		copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy markdown"),
		),
	}
}

func (m editorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{m.save, m.close, m.nextField, m.preview, m.copy}
}

func (m editorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.ShortHelp(), {m.prevField}}
}

type formKeyMap struct {
	submit key.Binding
	cancel key.Binding
}

func newFormKeyMap() *formKeyMap {
	return &formKeyMap{
		submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
