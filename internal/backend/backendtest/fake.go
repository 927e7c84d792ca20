// Package backendtest provides an in-memory backend with failure injection
// and a behavioural suite shared by every backend implementation.
package backendtest

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/Paintersrp/noteplan/internal/backend"
	"github.com/Paintersrp/noteplan/internal/note"
	"github.com/Paintersrp/noteplan/internal/parser"
)

// Op names a backend operation for failure injection and call recording.
type Op string

const (
	OpGetNotes   Op = "get_notes"
	OpAddNote    Op = "add_note"
	OpUpdateNote Op = "update_note"
	OpDeleteNote Op = "delete_note"
	OpGetTags    Op = "get_all_tags"
	OpGetTodos   Op = "get_todos"
	OpAddTodo    Op = "add_todo"
	OpDeleteTodo Op = "delete_todo"
	OpToggleTodo Op = "toggle_todo_status"
	OpResetDaily Op = "check_and_reset_daily_todos"
)

// Clock is a manually advanced time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(start time.Time) *Clock {
	return &Clock{now: start.UTC()}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Fake is an in-memory backend.Backend. Errors set through Fail are returned
// by the named operation until cleared.
type Fake struct {
	mu        sync.Mutex
	notes     []note.Note
	todos     []note.Todo
	lastReset string
	seq       int
	failures  map[Op]error
	calls     []Op
	clock     func() time.Time
}

var _ backend.Backend = (*Fake)(nil)

func NewFake(clock func() time.Time) *Fake {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &Fake{failures: make(map[Op]error), clock: clock}
}

// Fail makes op return err. A nil err clears the failure.
func (f *Fake) Fail(op Op, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.failures, op)
		return
	}
	f.failures[op] = err
}

// Calls returns the operations invoked so far, in order.
func (f *Fake) Calls() []Op {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

func (f *Fake) ResetCalls() {
	f.mu.Lock()
	f.calls = nil
	f.mu.Unlock()
}

// CallCount returns how many times op was invoked.
func (f *Fake) CallCount(op Op) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

// SeedNote inserts n as is, bypassing normalization.
func (f *Fake) SeedNote(n note.Note) {
	f.mu.Lock()
	f.notes = append(f.notes, n.Clone())
	f.mu.Unlock()
}

func (f *Fake) SeedTodo(t note.Todo) {
	f.mu.Lock()
	f.todos = append(f.todos, t)
	f.mu.Unlock()
}

func (f *Fake) begin(ctx context.Context, op Op) error {
	f.calls = append(f.calls, op)
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.failures[op]
}

func (f *Fake) nextID() string {
	f.seq++
	return "id-" + strconv.Itoa(f.seq)
}

func (f *Fake) GetNotes(ctx context.Context) ([]note.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx, OpGetNotes); err != nil {
		return nil, err
	}
	out := make([]note.Note, len(f.notes))
	for i, n := range f.notes {
		out[i] = n.Clone()
	}
	return out, nil
}

func (f *Fake) AddNote(ctx context.Context, title, content string, tags []string) (note.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx, OpAddNote); err != nil {
		return note.Note{}, err
	}
	now := f.clock()
	n := note.Note{
		ID:        f.nextID(),
		Title:     title,
		Content:   content,
		Tags:      parser.NormalizeTags(tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.notes = append(f.notes, n)
	return n.Clone(), nil
}

func (f *Fake) UpdateNote(ctx context.Context, id, title, content string, tags []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx, OpUpdateNote); err != nil {
		return err
	}
	for i := range f.notes {
		if f.notes[i].ID == id {
			f.notes[i].Apply(note.Fields{Title: title, Content: content, Tags: parser.NormalizeTags(tags)}, f.clock())
			return nil
		}
	}
	return fmt.Errorf("note %s: %w", id, backend.ErrNotFound)
}

func (f *Fake) DeleteNote(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx, OpDeleteNote); err != nil {
		return err
	}
	f.notes = slices.DeleteFunc(f.notes, func(n note.Note) bool { return n.ID == id })
	return nil
}

func (f *Fake) GetAllTags(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx, OpGetTags); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	tags := []string{}
	for _, n := range f.notes {
		for _, tag := range n.Tags {
			if _, ok := seen[tag]; !ok {
				seen[tag] = struct{}{}
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags, nil
}

func (f *Fake) GetTodos(ctx context.Context) ([]note.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx, OpGetTodos); err != nil {
		return nil, err
	}
	return slices.Clone(f.todos), nil
}

func (f *Fake) AddTodo(ctx context.Context, task string, isDaily bool) (note.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx, OpAddTodo); err != nil {
		return note.Todo{}, err
	}
	t := note.Todo{ID: f.nextID(), Task: task, IsDaily: isDaily, CreatedAt: f.clock()}
	f.todos = append(f.todos, t)
	return t, nil
}

func (f *Fake) DeleteTodo(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx, OpDeleteTodo); err != nil {
		return err
	}
	f.todos = slices.DeleteFunc(f.todos, func(t note.Todo) bool { return t.ID == id })
	return nil
}

func (f *Fake) ToggleTodoStatus(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx, OpToggleTodo); err != nil {
		return err
	}
	for i := range f.todos {
		if f.todos[i].ID == id {
			f.todos[i].Completed = !f.todos[i].Completed
			return nil
		}
	}
	return fmt.Errorf("todo %s: %w", id, backend.ErrNotFound)
}

func (f *Fake) CheckAndResetDailyTodos(ctx context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx, OpResetDaily); err != nil {
		return false, err
	}
	today := f.clock().UTC().Format(backend.DateFormat)
	if !backend.NeedsDailyReset(f.lastReset, today) {
		return false, nil
	}
	modified := false
	for i := range f.todos {
		if f.todos[i].IsDaily && f.todos[i].Completed {
			f.todos[i].Completed = false
			modified = true
		}
	}
	f.lastReset = today
	return modified, nil
}

func (f *Fake) Close() error {
	return nil
}
