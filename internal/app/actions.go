package app

import (
	"github.com/Paintersrp/noteplan/internal/editor"
)

// ActionKind keys the dispatch table.
type ActionKind string

const (
	ActionStartup        ActionKind = "startup"
	ActionFocus          ActionKind = "focus"
	ActionRefresh        ActionKind = "refresh"
	ActionExternalChange ActionKind = "external-change"
	ActionSelectAll      ActionKind = "select-all"
	ActionSelectTag      ActionKind = "select-tag"
	ActionOpenNote       ActionKind = "open-note"
	ActionSaveNote       ActionKind = "save-note"
	ActionCloseEditor    ActionKind = "close-editor"
	ActionAddNote        ActionKind = "add-note"
	ActionAddTodo        ActionKind = "add-todo"
	ActionDeleteNote     ActionKind = "delete-note"
	ActionDeleteTodo     ActionKind = "delete-todo"
	ActionToggleTodo     ActionKind = "toggle-todo"
)

// Action is one user or system event. Only the fields relevant to Kind are
// read.
type Action struct {
	Kind ActionKind

	// ID is a note or todo id. A unique prefix is accepted.
	ID  string
	Tag string

	Title   string
	Content string
	// TagsText is the raw comma separated tag input.
	TagsText string

	Task    string
	IsDaily bool

	Draft editor.Draft
}

func Startup() Action        { return Action{Kind: ActionStartup} }
func Focus() Action          { return Action{Kind: ActionFocus} }
func Refresh() Action        { return Action{Kind: ActionRefresh} }
func ExternalChange() Action { return Action{Kind: ActionExternalChange} }
func SelectAll() Action      { return Action{Kind: ActionSelectAll} }
func CloseEditor() Action    { return Action{Kind: ActionCloseEditor} }

func SelectTag(tag string) Action {
	return Action{Kind: ActionSelectTag, Tag: tag}
}

func OpenNote(id string) Action {
	return Action{Kind: ActionOpenNote, ID: id}
}

func SaveNote(d editor.Draft) Action {
	return Action{Kind: ActionSaveNote, Draft: d}
}

func AddNote(title, content, tags string) Action {
	return Action{Kind: ActionAddNote, Title: title, Content: content, TagsText: tags}
}

func AddTodo(task string, daily bool) Action {
	return Action{Kind: ActionAddTodo, Task: task, IsDaily: daily}
}

func DeleteNote(id string) Action {
	return Action{Kind: ActionDeleteNote, ID: id}
}

func DeleteTodo(id string) Action {
	return Action{Kind: ActionDeleteTodo, ID: id}
}

func ToggleTodo(id string) Action {
	return Action{Kind: ActionToggleTodo, ID: id}
}
