package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/noteplan/internal/app"
	"github.com/Paintersrp/noteplan/internal/export"
	"github.com/Paintersrp/noteplan/internal/logging"
	"github.com/Paintersrp/noteplan/internal/state"
	"github.com/Paintersrp/noteplan/pkg/cmd/cmdutil"
)

type ExportOptions struct {
	Tag string
	Out string
	S3  bool
	Now func() time.Time
}

func NewCmdExport(s *state.State) *cobra.Command {
	opts := &ExportOptions{Now: time.Now}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export notes as a single HTML page.",
		Long: heredoc.Doc(`
			Renders the notes passing the tag filter, newest first, into one HTML
			page. The page is written to --out, or to the current directory, or
			uploaded to the bucket in export.s3 with --s3.
		`),
		Example: heredoc.Doc(`
			noteplan export --tag work --out ~/work.html
			noteplan export --s3
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportRun(cmd, s, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Tag, "tag", "t", "", "Only export notes with this tag")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "File to write")
	cmd.Flags().BoolVar(&opts.S3, "s3", false, "Upload to the configured S3 bucket")
	cmd.MarkFlagsMutuallyExclusive("out", "s3")

	return cmd
}

func exportRun(cmd *cobra.Command, s *state.State, opts *ExportOptions) error {
	ctx := cmd.Context()
	ctrl, snap, err := cmdutil.Controller(ctx, s)
	if err != nil {
		return err
	}
	if snap.Notes.Err != nil {
		return snap.Notes.Err
	}

	title := "All notes"
	if opts.Tag != "" {
		if _, err := cmdutil.Dispatch(ctx, ctrl, app.SelectTag(opts.Tag)); err != nil {
			return err
		}
		title = "#" + opts.Tag
	}

	notes := ctrl.FilteredNotes()
	if len(notes) == 0 {
		return errors.New("no notes to export")
	}

	data, err := export.Build(title, notes)
	if err != nil {
		return err
	}

	name := export.FileName(opts.Now())
	out := cmd.OutOrStdout()

	if opts.S3 {
		uploader, err := export.NewS3(ctx, export.OptionsFromConfig(s.Config.Export.S3), logging.Component(s.Logger, "export"))
		if err != nil {
			return err
		}
		location, err := uploader.Upload(ctx, name, data)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Exported %d notes to %s\n", len(notes), location)
		return nil
	}

	path := opts.Out
	if path == "" {
		path = name
	}
	path = filepath.Clean(path)
	if err := export.WriteFile(path, data); err != nil {
		return err
	}

	fmt.Fprintf(out, "Exported %d notes to %s\n", len(notes), path)
	return nil
}
