package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/erikgeiser/promptkit/confirmation"
	"golang.org/x/term"

	"github.com/Paintersrp/noteplan/internal/app"
	"github.com/Paintersrp/noteplan/internal/logging"
	"github.com/Paintersrp/noteplan/internal/state"
)

const defaultWidth = 80

// Controller builds an application controller over the state's backend and
// runs the startup load, like the interactive UI does.
func Controller(ctx context.Context, s *state.State) (*app.Controller, app.Snapshot, error) {
	if !s.Loaded() {
		return nil, app.Snapshot{}, errors.New("state configuration is not initialized")
	}

	ctrl := app.New(s.Backend, app.WithLogger(logging.Component(s.Logger, "cli")))
	snap, err := ctrl.Dispatch(ctx, app.Startup())
	if err != nil {
		return nil, snap, err
	}
	return ctrl, snap, nil
}

// Dispatch runs a and reports a blocking alert as an error.
func Dispatch(ctx context.Context, ctrl *app.Controller, a app.Action) (app.Snapshot, error) {
	snap, err := ctrl.Dispatch(ctx, a)
	if err != nil {
		return snap, err
	}
	if snap.Alert != nil {
		return snap, errors.New(snap.Alert.Message)
	}
	return snap, nil
}

// TermWidth returns the width of stdout, or a default when it is not a
// terminal.
func TermWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// Confirm asks a yes/no question. Tests replace it.
var Confirm = func(prompt string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, fmt.Errorf("%s: refusing to prompt without a terminal, pass --yes", prompt)
	}
	return confirmation.New(prompt, confirmation.No).RunPrompt()
}

// ConfigOnly is a command annotation. Annotated commands get a State with
// the config and logger loaded but no backend.
const ConfigOnly = "noteplan/config-only"
