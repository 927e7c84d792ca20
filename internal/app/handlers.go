package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Paintersrp/noteplan/internal/cache"
	"github.com/Paintersrp/noteplan/internal/editor"
	"github.com/Paintersrp/noteplan/internal/note"
	"github.com/Paintersrp/noteplan/internal/parser"
)

func (c *Controller) loadNotes(ctx context.Context, log zerolog.Logger) {
	if err := c.notes.Refresh(ctx, c.backend); err != nil {
		log.Error().Err(err).Msg("failed to load notes")
	}
}

func (c *Controller) loadTodos(ctx context.Context, log zerolog.Logger) {
	if err := c.todos.Refresh(ctx, c.backend); err != nil {
		log.Error().Err(err).Msg("failed to load todos")
	}
}

// loadTags re-fetches the vocabulary. Failures keep the previous sidebar
// and are already logged by the sidebar controller.
func (c *Controller) loadTags(ctx context.Context) {
	_ = c.sidebar.Reload(ctx, c.backend, c.notes.Notes(), c.filter)
}

func (c *Controller) loadAll(ctx context.Context, log zerolog.Logger) {
	c.loadNotes(ctx, log)
	c.loadTodos(ctx, log)
	c.loadTags(ctx)
}

// checkDailyReset asks the backend to reset daily todos and reports whether
// the todo list changed. Failures only produce a status line.
func (c *Controller) checkDailyReset(ctx context.Context, log zerolog.Logger) bool {
	reset, err := c.backend.CheckAndResetDailyTodos(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("daily todo reset check failed")
		c.status = fmt.Sprintf("Daily todo check failed: %v", err)
		return false
	}
	if reset {
		log.Info().Msg("daily todos reset")
		c.status = "Daily todos were reset."
	}
	return reset
}

func (c *Controller) handleStartup(ctx context.Context, log zerolog.Logger, _ Action) error {
	c.checkDailyReset(ctx, log)
	c.loadAll(ctx, log)
	return nil
}

func (c *Controller) handleFocus(ctx context.Context, log zerolog.Logger, _ Action) error {
	if c.checkDailyReset(ctx, log) {
		c.loadTodos(ctx, log)
	}
	return nil
}

func (c *Controller) handleRefresh(ctx context.Context, log zerolog.Logger, _ Action) error {
	c.loadAll(ctx, log)
	return nil
}

// handleExternalChange runs when another process rewrote the data file.
// Backends without a file of their own simply reload.
func (c *Controller) handleExternalChange(ctx context.Context, log zerolog.Logger, _ Action) error {
	if r, ok := c.backend.(reloader); ok {
		changed, err := r.Reload()
		if err != nil {
			log.Warn().Err(err).Msg("failed to reload data file")
			c.status = fmt.Sprintf("Data file could not be reloaded: %v", err)
			return nil
		}
		if !changed {
			return nil
		}
		log.Info().Msg("data file changed on disk")
	}

	c.checkDailyReset(ctx, log)
	c.loadAll(ctx, log)
	return nil
}

func (c *Controller) handleSelectAll(ctx context.Context, _ zerolog.Logger, _ Action) error {
	c.filter.SelectAll()
	c.loadTags(ctx)
	return nil
}

func (c *Controller) handleSelectTag(_ context.Context, _ zerolog.Logger, a Action) error {
	c.filter.SelectTag(parser.NormalizeTag(a.Tag))
	return nil
}

func (c *Controller) handleOpenNote(ctx context.Context, log zerolog.Logger, a Action) error {
	id, err := resolve(c.notes.ResolveID, a.ID)
	if err != nil {
		return err
	}

	if err := c.session.Open(ctx, id, c.notes, c.backend); err != nil {
		c.session.Close()
		c.screen = ScreenMain
		c.loadAll(ctx, log)
		return err
	}
	c.screen = ScreenEditor
	return nil
}

func (c *Controller) handleSaveNote(ctx context.Context, log zerolog.Logger, a Action) error {
	err := c.session.Save(ctx, a.Draft, c.notes, c.backend)
	if errors.Is(err, editor.ErrNoSession) {
		log.Debug().Msg("save ignored, no open note")
		return nil
	}
	if err != nil {
		return err
	}

	c.loadTags(ctx)
	c.status = "Note saved."
	return nil
}

func (c *Controller) handleCloseEditor(ctx context.Context, log zerolog.Logger, _ Action) error {
	c.session.Close()
	c.screen = ScreenMain
	c.loadAll(ctx, log)
	return nil
}

func (c *Controller) handleAddNote(ctx context.Context, log zerolog.Logger, a Action) error {
	in := note.NoteInput{
		Title:   a.Title,
		Content: a.Content,
		Tags:    parser.ParseTags(a.TagsText),
	}.Trimmed()
	if err := note.Validate(in); err != nil {
		return err
	}

	n, err := c.backend.AddNote(ctx, in.Title, in.Content, in.Tags)
	if err != nil {
		return fmt.Errorf("failed to add note: %w", err)
	}

	c.created = n.ID
	c.loadNotes(ctx, log)
	c.loadTags(ctx)
	c.status = "Note added."
	return nil
}

func (c *Controller) handleAddTodo(ctx context.Context, log zerolog.Logger, a Action) error {
	in := note.TodoInput{Task: a.Task, IsDaily: a.IsDaily}.Trimmed()
	if err := note.Validate(in); err != nil {
		return err
	}

	t, err := c.backend.AddTodo(ctx, in.Task, in.IsDaily)
	if err != nil {
		return fmt.Errorf("failed to add todo: %w", err)
	}

	c.created = t.ID
	c.loadTodos(ctx, log)
	c.status = "Todo added."
	return nil
}

func (c *Controller) handleDeleteNote(ctx context.Context, log zerolog.Logger, a Action) error {
	if !c.notes.Loaded() {
		c.loadNotes(ctx, log)
	}
	id, err := resolve(c.notes.ResolveID, a.ID)
	if err != nil {
		return err
	}

	if err := c.backend.DeleteNote(ctx, id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	c.loadNotes(ctx, log)
	c.loadTags(ctx)
	c.status = "Note deleted."
	return nil
}

func (c *Controller) handleDeleteTodo(ctx context.Context, log zerolog.Logger, a Action) error {
	if !c.todos.Loaded() {
		c.loadTodos(ctx, log)
	}
	id, err := resolve(c.todos.ResolveID, a.ID)
	if err != nil {
		return err
	}

	if err := c.backend.DeleteTodo(ctx, id); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	c.loadTodos(ctx, log)
	c.status = "Todo deleted."
	return nil
}

func (c *Controller) handleToggleTodo(ctx context.Context, log zerolog.Logger, a Action) error {
	if !c.todos.Loaded() {
		c.loadTodos(ctx, log)
	}
	id, err := resolve(c.todos.ResolveID, a.ID)
	if err != nil {
		return err
	}

	if err := c.backend.ToggleTodoStatus(ctx, id); err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}

	c.loadTodos(ctx, log)
	return nil
}

// resolve expands an id prefix. Unknown ids are passed through unchanged
// so the backend decides; only an ambiguous prefix is an error.
func resolve(lookup func(string) (string, error), id string) (string, error) {
	full, err := lookup(id)
	switch {
	case err == nil:
		return full, nil
	case errors.Is(err, cache.ErrAmbiguousID):
		return "", err
	default:
		return id, nil
	}
}
