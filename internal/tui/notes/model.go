// Package notes is the interactive terminal interface: a tag sidebar, the
// note list, the todo list and a note editor, all driven by app actions.
package notes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/Paintersrp/noteplan/internal/app"
	"github.com/Paintersrp/noteplan/internal/cache"
	"github.com/Paintersrp/noteplan/internal/render"
	"github.com/Paintersrp/noteplan/internal/state"
	"github.com/Paintersrp/noteplan/internal/tui/notes/submodels"
	"github.com/Paintersrp/noteplan/internal/views"
)

type pane int

const (
	paneSidebar pane = iota
	paneNotes
	paneTodos
	paneCount
)

type mode int

const (
	modeBrowse mode = iota
	modeEditor
	modeAddNote
	modeAddTodo
	modeConfirm
)

const previewCacheSize = 32

type dispatchedMsg struct {
	action app.Action
	snap   app.Snapshot
	err    error
}

type dismissedMsg struct {
	snap app.Snapshot
}

type focusMsg struct{}

type copiedMsg struct {
	err error
}

// Options configure the model. A nil Watcher disables change detection and
// the focus heartbeat.
type Options struct {
	Watcher       *state.DataWatcher
	Heartbeat     time.Duration
	GlamourStyle  string
	ConfirmDelete bool
	Logger        zerolog.Logger
	Clipboard     func(string) error
}

type Model struct {
	ctrl       *app.Controller
	opts       Options
	snap       app.Snapshot
	keys       *listKeyMap
	editorKeys *editorKeyMap
	formKeys   *formKeyMap
	help       help.Model
	pane       pane
	mode       mode
	cursors    [paneCount]int
	editor     *noteEditor
	noteForm   submodels.NoteForm
	todoForm   submodels.TodoForm
	confirm    submodels.ConfirmModel
	pending    app.Action
	previews   *cache.PreviewCache
	notice     string
	openID     string
	busy       int
	width      int
	height     int
	log        zerolog.Logger
}

func New(ctrl *app.Controller, opts Options) *Model {
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.GlamourStyle == "" {
		opts.GlamourStyle = render.DefaultStyle
	}

	m := &Model{
		ctrl:       ctrl,
		opts:       opts,
		snap:       ctrl.Snapshot(),
		keys:       newListKeyMap(),
		editorKeys: newEditorKeyMap(),
		formKeys:   newFormKeyMap(),
		help:       help.New(),
		pane:       paneNotes,
		editor:     newNoteEditor(),
		noteForm:   submodels.NewNoteForm(),
		todoForm:   submodels.NewTodoForm(),
		previews:   cache.NewPreviewCache(previewCacheSize),
		log:        opts.Logger,
	}

	if opts.Heartbeat > 0 {
		opts.Watcher.SetHeartbeat(func() tea.Cmd {
			return func() tea.Msg { return focusMsg{} }
		}, opts.Heartbeat)
	}
	return m
}

// OpenOnStart makes Init open the note with id once startup has loaded.
func (m *Model) OpenOnStart(id string) {
	m.openID = id
}

func (m *Model) Init() tea.Cmd {
	load := m.dispatch(app.Startup())
	if m.openID != "" {
		load = tea.Sequence(load, m.dispatch(app.OpenNote(m.openID)))
	}
	return tea.Batch(load, m.opts.Watcher.Start())
}

func (m *Model) dispatch(a app.Action) tea.Cmd {
	m.busy++
	ctrl := m.ctrl
	return func() tea.Msg {
		snap, err := ctrl.Dispatch(context.Background(), a)
		return dispatchedMsg{action: a, snap: snap, err: err}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case dispatchedMsg:
		return m, m.applyDispatch(msg)

	case dismissedMsg:
		m.snap = m.ctrl.Snapshot()
		return m, nil

	case focusMsg:
		return m, tea.Batch(m.dispatch(app.Focus()), m.opts.Watcher.Start())

	case state.DataChangedMsg:
		m.log.Debug().Str("path", msg.Path).Msg("data file changed")
		return m, tea.Batch(m.dispatch(app.ExternalChange()), m.opts.Watcher.Start())

	case state.DataWatcherErrMsg:
		m.log.Warn().Err(msg.Err).Msg("data watcher error")
		return m, m.opts.Watcher.Start()

	case copiedMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("clipboard copy failed")
			m.notice = fmt.Sprintf("Copy failed: %v", msg.err)
		} else {
			m.notice = "Copied markdown to clipboard."
		}
		return m, nil

	case submodels.SubmitMsg:
		return m, m.submitForm()

	case submodels.ConfirmMsg:
		m.mode = modeBrowse
		if !msg.Accepted {
			return m, nil
		}
		return m, m.dispatch(m.pending)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

// applyDispatch installs the newest published snapshot. Dispatches are
// serialized by the controller but their messages may arrive out of order,
// so only action-specific data is taken from msg.
func (m *Model) applyDispatch(msg dispatchedMsg) tea.Cmd {
	if m.busy > 0 {
		m.busy--
	}
	m.snap = m.ctrl.Snapshot()
	m.notice = ""

	switch msg.action.Kind {
	case app.ActionOpenNote:
		if msg.err == nil && msg.snap.Screen == app.ScreenEditor {
			m.editor.load(msg.snap.Editor)
			m.mode = modeEditor
		}
	case app.ActionSaveNote:
		if msg.err == nil {
			m.editor.saved(msg.snap.Editor)
		}
	case app.ActionCloseEditor:
		m.mode = modeBrowse
	case app.ActionAddNote:
		if msg.err == nil {
			m.noteForm.Reset()
			m.mode = modeBrowse
		}
	case app.ActionAddTodo:
		if msg.err == nil {
			m.todoForm.Reset()
			m.mode = modeBrowse
		}
	case app.ActionSelectAll, app.ActionSelectTag:
		m.cursors[paneNotes] = 0
	}

	if m.mode == modeEditor && m.snap.Screen != app.ScreenEditor {
		m.mode = modeBrowse
	}
	m.clampCursors()
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}

	if m.snap.Alert != nil {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc, tea.KeySpace:
			m.snap.Alert = nil
			ctrl := m.ctrl
			return func() tea.Msg { return dismissedMsg{snap: ctrl.DismissAlert()} }
		}
		return nil
	}

	switch m.mode {
	case modeEditor:
		return m.handleEditorKey(msg)
	case modeAddNote:
		return m.handleNoteFormKey(msg)
	case modeAddTodo:
		return m.handleTodoFormKey(msg)
	case modeConfirm:
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return cmd
	default:
		return m.handleBrowseKey(msg)
	}
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.quit):
		return tea.Quit
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.nextPane):
		m.pane = (m.pane + 1) % paneCount
	case key.Matches(msg, m.keys.prevPane):
		m.pane = (m.pane + paneCount - 1) % paneCount
	case key.Matches(msg, m.keys.up):
		m.cursors[m.pane] = clamp(m.cursors[m.pane]-1, m.paneLen(m.pane))
	case key.Matches(msg, m.keys.down):
		m.cursors[m.pane] = clamp(m.cursors[m.pane]+1, m.paneLen(m.pane))
	case key.Matches(msg, m.keys.selectAll):
		return m.dispatch(app.SelectAll())
	case key.Matches(msg, m.keys.refresh):
		return m.dispatch(app.Refresh())
	case key.Matches(msg, m.keys.addNote):
		m.mode = modeAddNote
	case key.Matches(msg, m.keys.addTodo):
		m.mode = modeAddTodo
	case key.Matches(msg, m.keys.open):
		return m.activate()
	case key.Matches(msg, m.keys.toggle):
		if todo, ok := m.currentTodo(); ok {
			return m.dispatch(app.ToggleTodo(todo))
		}
	case key.Matches(msg, m.keys.delete):
		return m.requestDelete()
	}
	return nil
}

// activate runs the primary action of the row under the cursor.
func (m *Model) activate() tea.Cmd {
	switch m.pane {
	case paneSidebar:
		rows := m.snap.Sidebar.Rows()
		if len(rows) == 0 {
			return nil
		}
		row := rows[clamp(m.cursors[paneSidebar], len(rows))]
		switch row.Kind {
		case views.RowAll:
			return m.dispatch(app.SelectAll())
		case views.RowTag:
			return m.dispatch(app.SelectTag(row.Tag))
		case views.RowNote:
			return m.dispatch(app.OpenNote(row.NoteID))
		}
	case paneNotes:
		if id, _, ok := m.currentNote(); ok {
			return m.dispatch(app.OpenNote(id))
		}
	case paneTodos:
		if id, ok := m.currentTodo(); ok {
			return m.dispatch(app.ToggleTodo(id))
		}
	}
	return nil
}

func (m *Model) requestDelete() tea.Cmd {
	var (
		action app.Action
		title  string
		label  string
	)

	switch m.pane {
	case paneTodos:
		id, ok := m.currentTodo()
		if !ok {
			return nil
		}
		action = app.DeleteTodo(id)
		title = "Delete todo?"
		label = m.snap.Todos.Todos[clamp(m.cursors[paneTodos], len(m.snap.Todos.Todos))].Task
	case paneSidebar:
		rows := m.snap.Sidebar.Rows()
		if len(rows) == 0 {
			return nil
		}
		row := rows[clamp(m.cursors[paneSidebar], len(rows))]
		if row.Kind != views.RowNote {
			return nil
		}
		action = app.DeleteNote(row.NoteID)
		title = "Delete note?"
		label = row.Label
	default:
		id, name, ok := m.currentNote()
		if !ok {
			return nil
		}
		action = app.DeleteNote(id)
		title = "Delete note?"
		label = name
	}

	if !m.opts.ConfirmDelete {
		return m.dispatch(action)
	}
	m.pending = action
	m.confirm = submodels.NewConfirmModel(title, label)
	m.mode = modeConfirm
	return nil
}

func (m *Model) handleEditorKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.editorKeys.save):
		return m.dispatch(app.SaveNote(m.editor.draft()))
	case key.Matches(msg, m.editorKeys.close):
		return m.dispatch(app.CloseEditor())
	case key.Matches(msg, m.editorKeys.preview):
		m.editor.preview = !m.editor.preview
		if m.editor.preview {
			m.editor.rendered = m.renderPreview(m.editor.content.Value(), m.editor.width)
		}
		return nil
	case key.Matches(msg, m.editorKeys.copy):
		content := m.editor.content.Value()
		write := m.opts.Clipboard
		return func() tea.Msg { return copiedMsg{err: write(content)} }
	case key.Matches(msg, m.editorKeys.nextField):
		if !m.editor.preview {
			m.editor.next()
		}
		return nil
	case key.Matches(msg, m.editorKeys.prevField):
		if !m.editor.preview {
			m.editor.prev()
		}
		return nil
	}
	return m.editor.update(msg)
}

func (m *Model) handleNoteFormKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.formKeys.submit):
		return m.submitForm()
	case key.Matches(msg, m.formKeys.cancel):
		m.mode = modeBrowse
		return nil
	}
	var cmd tea.Cmd
	m.noteForm, cmd = m.noteForm.Update(msg)
	return cmd
}

func (m *Model) handleTodoFormKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.formKeys.cancel) {
		m.mode = modeBrowse
		return nil
	}
	var cmd tea.Cmd
	m.todoForm, cmd = m.todoForm.Update(msg)
	return cmd
}

func (m *Model) submitForm() tea.Cmd {
	switch m.mode {
	case modeAddNote:
		title, content, tags := m.noteForm.Values()
		return m.dispatch(app.AddNote(title, content, tags))
	case modeAddTodo:
		task, daily := m.todoForm.Values()
		return m.dispatch(app.AddTodo(task, daily))
	}
	return nil
}

func (m *Model) renderPreview(src string, width int) string {
	style := m.opts.GlamourStyle
	out, err := m.previews.Render(src, width, func(s string, w int) (string, error) {
		return render.Terminal(s, w, style)
	})
	if err != nil {
		m.log.Warn().Err(err).Msg("preview render failed")
		return errorStyle.Render(fmt.Sprintf("Error rendering markdown: %v", err))
	}
	return out
}

func (m *Model) currentNote() (string, string, bool) {
	cards := m.snap.Notes.Cards
	if len(cards) == 0 {
		return "", "", false
	}
	card := cards[clamp(m.cursors[paneNotes], len(cards))]
	return card.ID, card.Title, true
}

func (m *Model) currentTodo() (string, bool) {
	if m.pane != paneTodos {
		return "", false
	}
	todos := m.snap.Todos.Todos
	if len(todos) == 0 {
		return "", false
	}
	return todos[clamp(m.cursors[paneTodos], len(todos))].ID, true
}

func (m *Model) paneLen(p pane) int {
	switch p {
	case paneSidebar:
		return len(m.snap.Sidebar.Rows())
	case paneNotes:
		return len(m.snap.Notes.Cards)
	default:
		return len(m.snap.Todos.Todos)
	}
}

func (m *Model) clampCursors() {
	for p := pane(0); p < paneCount; p++ {
		m.cursors[p] = clamp(m.cursors[p], m.paneLen(p))
	}
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	w, h := m.contentSize()
	m.editor.setSize(w, h)
	m.noteForm.SetSize(w, h)
	m.todoForm.SetWidth(w)
}

func (m *Model) contentSize() (int, int) {
	width, height := m.width, m.height
	if width <= 0 {
		width = 120
	}
	if height <= 0 {
		height = 40
	}
	fh, fv := appStyle.GetFrameSize()
	return width - fh, height - fv - 2
}

func (m *Model) status() string {
	parts := []string{}
	if m.busy > 0 {
		parts = append(parts, "working…")
	}
	switch {
	case m.notice != "":
		parts = append(parts, m.notice)
	case m.snap.Status != "":
		parts = append(parts, m.snap.Status)
	}
	return strings.Join(parts, " ")
}

func (m *Model) View() string {
	w, h := m.contentSize()

	header := lipgloss.JoinHorizontal(lipgloss.Left,
		titleStyle.Render("noteplan"),
		statusStyle(m.status()),
	)

	var body, footer string
	switch m.mode {
	case modeEditor:
		body = m.editorView()
		footer = m.help.View(m.editorKeys)
	case modeAddNote:
		body = m.noteForm.View()
	case modeAddTodo:
		body = m.todoForm.View()
	case modeConfirm:
		body = lipgloss.Place(w, h-1, lipgloss.Center, lipgloss.Center, m.confirm.View())
	default:
		body = m.mainView(w, h-1)
		footer = m.help.View(m.keys)
	}

	if alert := m.snap.Alert; alert != nil {
		box := alertStyle.Render(fmt.Sprintf(
			"%s\n\n%s",
			errorStyle.Render(alertTitle(alert.Kind)),
			alert.Message,
		) + "\n\n" + dimStyle.Render("enter to dismiss"))
		body = lipgloss.Place(w, h-1, lipgloss.Center, lipgloss.Center, box)
	}

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		renderHelpWithinWidth(w, footer),
	))
}

func alertTitle(kind app.AlertKind) string {
	switch kind {
	case app.AlertValidation:
		return "Invalid input"
	case app.AlertNotFound:
		return "Note not found"
	default:
		return "Something went wrong"
	}
}

func (m *Model) mainView(width, height int) string {
	const (
		sidebarWidth = 24
		todoWidth    = 30
		frame        = 4
	)
	notesWidth := width - sidebarWidth - todoWidth - 3*frame
	if notesWidth < 20 {
		notesWidth = 20
	}
	inner := height - 2
	if inner < 3 {
		inner = 3
	}

	style := func(p pane, w int) lipgloss.Style {
		s := paneStyle
		if m.pane == p {
			s = focusedPaneStyle
		}
		return s.Copy().Width(w + 2).Height(inner)
	}

	sidebar := style(paneSidebar, sidebarWidth).Render(renderSidebar(
		m.snap.Sidebar.Rows(), m.cursors[paneSidebar], m.pane == paneSidebar, sidebarWidth, inner,
	))
	notes := style(paneNotes, notesWidth).Render(renderNoteList(
		m.snap.Notes, m.snap.Filter, m.cursors[paneNotes], m.pane == paneNotes, notesWidth, inner,
	))
	todos := style(paneTodos, todoWidth).Render(renderTodoList(
		m.snap.Todos, m.cursors[paneTodos], m.pane == paneTodos, todoWidth, inner,
	))

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, notes, todos)
}

func (m *Model) editorView() string {
	return fmt.Sprintf(
		"%s\n%s\n\n%s\n%s\n\n%s",
		paneTitleStyle.Render(m.editor.header()),
		dimStyle.Render(m.editor.timestamps()),
		m.editor.title.View(),
		m.editor.tags.View(),
		m.editor.body(),
	)
}
