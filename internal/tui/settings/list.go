package settings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/erikgeiser/promptkit/selection"

	"github.com/Paintersrp/noteplan/internal/config"
	"github.com/Paintersrp/noteplan/internal/constants"
)

var glamourStyles = []string{"dracula", "dark", "light", "pink", "notty", "ascii"}

// field is one editable config value. Fields with choices are edited with a
// selection prompt, the others with a text input.
type field struct {
	name    string
	choices []string
	secret  bool
	get     func(*config.Config) string
	set     func(*config.Config, string) error
}

func setString(dst func(*config.Config) *string) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		*dst(c) = v
		return nil
	}
}

func getString(src func(*config.Config) *string) func(*config.Config) string {
	return func(c *config.Config) string { return *src(c) }
}

func stringField(name string, ptr func(*config.Config) *string, choices ...string) field {
	return field{name: name, choices: choices, get: getString(ptr), set: setString(ptr)}
}

func fields() []field {
	dsn := stringField("Postgres DSN", func(c *config.Config) *string { return &c.Backend.DSN })
	dsn.secret = true

	return []field{
		stringField("Backend driver", func(c *config.Config) *string { return &c.Backend.Driver },
			constants.DriverFile, constants.DriverBolt, constants.DriverPostgres),
		stringField("Data path", func(c *config.Config) *string { return &c.Backend.Path }),
		dsn,
		stringField("Log level", func(c *config.Config) *string { return &c.Log.Level },
			"trace", "debug", "info", "warn", "error", "disabled"),
		stringField("Log file", func(c *config.Config) *string { return &c.Log.File }),
		stringField("Glamour style", func(c *config.Config) *string { return &c.UI.GlamourStyle }, glamourStyles...),
		{
			name: "Heartbeat",
			get:  func(c *config.Config) string { return c.UI.Heartbeat.String() },
			set: func(c *config.Config, v string) error {
				d, err := time.ParseDuration(v)
				if err != nil {
					return fmt.Errorf("heartbeat: %w", err)
				}
				if d <= 0 {
					return fmt.Errorf("heartbeat must be positive")
				}
				c.UI.Heartbeat = d
				return nil
			},
		},
		{
			name:    "Confirm deletes",
			choices: []string{"true", "false"},
			get:     func(c *config.Config) string { return strconv.FormatBool(c.UI.ConfirmDelete) },
			set: func(c *config.Config, v string) error {
				b, err := strconv.ParseBool(v)
				if err != nil {
					return err
				}
				c.UI.ConfirmDelete = b
				return nil
			},
		},
		stringField("S3 bucket", func(c *config.Config) *string { return &c.Export.S3.Bucket }),
		stringField("S3 region", func(c *config.Config) *string { return &c.Export.S3.Region }),
		stringField("S3 endpoint", func(c *config.Config) *string { return &c.Export.S3.Endpoint }),
		stringField("S3 prefix", func(c *config.Config) *string { return &c.Export.S3.Prefix }),
	}
}

type ListItem struct {
	field field
	value string
}

func (i ListItem) Title() string { return i.field.name }

func (i ListItem) Description() string {
	switch {
	case i.value == "":
		return "(not set)"
	case i.field.secret:
		return "********"
	default:
		return i.value
	}
}

func (i ListItem) FilterValue() string { return i.field.name }

type listKeyMap struct {
	edit   key.Binding
	cancel key.Binding
}

func newListKeyMap() *listKeyMap {
	return &listKeyMap{
		edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit item"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "exit input mode"),
		),
	}
}

type ListModel struct {
	list        list.Model
	keys        *listKeyMap
	config      *config.Config
	save        func(*config.Config) error
	editing     *field
	input       textinput.Model
	inputActive bool
	choice      *selection.Model[string]
}

// NewListModel edits cfg in place. save persists a validated candidate and
// defaults to writing the config file.
func NewListModel(cfg *config.Config, save func(*config.Config) error) ListModel {
	if save == nil {
		save = func(c *config.Config) error { return c.Save() }
	}

	keys := newListKeyMap()
	l := list.New(items(cfg), newItemDelegate(), 0, 0)
	l.Title = "Configuration"
	l.Styles.Title = titleStyle
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.edit}
	}

	input := textinput.New()
	input.Cursor.Style = cursorStyle
	input.PromptStyle = focusedStyle
	input.TextStyle = focusedStyle

	return ListModel{
		list:   l,
		keys:   keys,
		config: cfg,
		save:   save,
		input:  input,
	}
}

func items(cfg *config.Config) []list.Item {
	fs := fields()
	out := make([]list.Item, len(fs))
	for i, f := range fs {
		out[i] = ListItem{field: f, value: f.get(cfg)}
	}
	return out
}

func (m ListModel) Init() tea.Cmd {
	return nil
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := appStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
		return m, nil

	case tea.KeyMsg:
		if m.choice != nil {
			return m.updateChoice(msg)
		}
		if m.inputActive {
			return m.updateInput(msg)
		}
		if m.list.FilterState() != list.Filtering && key.Matches(msg, m.keys.edit) {
			return m.startEdit()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m ListModel) startEdit() (tea.Model, tea.Cmd) {
	item, ok := m.list.SelectedItem().(ListItem)
	if !ok {
		return m, nil
	}
	f := item.field
	m.editing = &f

	if len(f.choices) > 0 {
		sel := selection.New("Select "+f.name+".", f.choices)
		sel.Filter = nil
		m.choice = selection.NewModel(sel)
		return m, m.choice.Init()
	}

	m.input.SetValue(item.value)
	m.input.CursorEnd()
	m.inputActive = true
	return m, m.input.Focus()
}

func (m ListModel) updateChoice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.cancel):
		m.choice = nil
		m.editing = nil
		return m, nil
	case key.Matches(msg, m.keys.edit):
		value, err := m.choice.Value()
		m.choice = nil
		if err != nil {
			m.editing = nil
			return m, nil
		}
		return m.apply(value)
	}

	_, cmd := m.choice.Update(msg)
	return m, cmd
}

func (m ListModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.cancel):
		m.input.Blur()
		m.inputActive = false
		m.editing = nil
		return m, nil
	case key.Matches(msg, m.keys.edit):
		value := m.input.Value()
		m.input.Reset()
		m.input.Blur()
		m.inputActive = false
		return m.apply(value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// apply validates and saves a candidate config with the edited value; the
// live config only changes when both succeed.
func (m ListModel) apply(value string) (tea.Model, tea.Cmd) {
	f := m.editing
	m.editing = nil
	if f == nil {
		return m, nil
	}

	next := *m.config
	if err := f.set(&next, value); err != nil {
		return m, m.list.NewStatusMessage(errorMessageStyle("Not saved: " + err.Error()))
	}
	if err := next.Validate(); err != nil {
		return m, m.list.NewStatusMessage(errorMessageStyle("Not saved: " + err.Error()))
	}
	if err := m.save(&next); err != nil {
		return m, m.list.NewStatusMessage(errorMessageStyle("Not saved: " + err.Error()))
	}

	*m.config = next
	idx := m.list.Index()
	setCmd := m.list.SetItem(idx, ListItem{field: *f, value: f.get(m.config)})
	return m, tea.Batch(setCmd, m.list.NewStatusMessage(statusMessageStyle("Updated and Saved: "+f.name)))
}

func (m ListModel) View() string {
	if m.choice != nil {
		return appStyle.Render(m.choice.View())
	}
	if m.inputActive && m.editing != nil {
		return appStyle.Render(inputStyle.Render(
			textStyle.Render("Editing: "+m.editing.name) + "\n" + m.input.View(),
		))
	}
	return appStyle.Render(m.list.View())
}

func Run(c *config.Config) error {
	if _, err := tea.NewProgram(NewListModel(c, nil), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running settings: %w", err)
	}
	return nil
}
