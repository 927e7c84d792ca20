package noteShow

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/noteplan/internal/note"
	"github.com/Paintersrp/noteplan/internal/parser"
	"github.com/Paintersrp/noteplan/internal/render"
	"github.com/Paintersrp/noteplan/internal/state"
	"github.com/Paintersrp/noteplan/pkg/arg"
	"github.com/Paintersrp/noteplan/pkg/cmd/cmdutil"
)

var writeClipboard = clipboard.WriteAll

type options struct {
	html bool
	copy bool
}

func NewCmdNoteShow(s *state.State) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:     "show [id]",
		Aliases: []string{"cat", "s"},
		Short:   "Render a note in the terminal.",
		Long: heredoc.Doc(`
			Renders the note's markdown for the terminal. --html prints the HTML
			rendering instead and --copy puts the raw markdown on the clipboard.
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, s, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.html, "html", false, "Print the note rendered as HTML")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the note's markdown to the clipboard")

	return cmd
}

func run(cmd *cobra.Command, args []string, s *state.State, opts options) error {
	id, err := arg.HandleID(args)
	if err != nil {
		return err
	}

	ctrl, snap, err := cmdutil.Controller(cmd.Context(), s)
	if err != nil {
		return err
	}
	if snap.Notes.Err != nil {
		return snap.Notes.Err
	}

	n, err := ctrl.Note(id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.copy {
		if err := writeClipboard(n.Content); err != nil {
			return fmt.Errorf("failed to copy note: %w", err)
		}
		fmt.Fprintf(out, "Copied %s to the clipboard.\n", n.Title)
		return nil
	}

	if opts.html {
		html, err := render.Markdown(n.Content)
		if err != nil {
			return err
		}
		fmt.Fprint(out, html)
		return nil
	}

	rendered, err := render.Terminal(source(n), cmdutil.TermWidth(), s.Config.UI.GlamourStyle)
	if err != nil {
		return err
	}
	fmt.Fprint(out, rendered)
	return nil
}

func source(n note.Note) string {
	md := "# " + n.Title + "\n\n"
	if len(n.Tags) > 0 {
		md += "*Tags: " + parser.FormatTags(n.Tags) + "*\n\n"
	}
	md += n.Content + "\n\n"
	md += fmt.Sprintf("---\n\nCreated %s · Last updated %s\n",
		n.CreatedAt.Local().Format("2006-01-02 15:04"),
		n.UpdatedAt.Local().Format("2006-01-02 15:04"),
	)
	return md
}
