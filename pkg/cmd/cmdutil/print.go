package cmdutil

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Paintersrp/noteplan/internal/note"
	"github.com/Paintersrp/noteplan/internal/views"
)

const timeLayout = "2006-01-02 15:04"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func chips(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = "#" + tag
	}
	return strings.Join(out, " ")
}

// PrintNotes writes the cards of a note list, or its message when empty.
func PrintNotes(output io.Writer, cards []views.NoteCard, empty string) {
	if len(cards) == 0 {
		fmt.Fprintln(output, empty)
		return
	}

	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tUPDATED\tTITLE\tTAGS")
	for _, card := range cards {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
			note.ShortID(card.ID), formatTime(card.UpdatedAt), card.Title, chips(card.Tags))
	}
	_ = writer.Flush()
}

// PrintTodos writes a todo list, or its message when empty.
func PrintTodos(output io.Writer, list views.TodoList) {
	if list.Empty() {
		fmt.Fprintln(output, list.Message)
		return
	}

	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tDONE\tTASK\tDAILY")
	for _, todo := range list.Todos {
		done := "[ ]"
		if todo.Completed {
			done = "[x]"
		}
		daily := ""
		if todo.IsDaily {
			daily = "daily"
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", note.ShortID(todo.ID), done, todo.Task, daily)
	}
	_ = writer.Flush()
}

// PrintSidebar writes the flattened tag tree, one row per line.
func PrintSidebar(output io.Writer, rows []views.SidebarRow) {
	for _, row := range rows {
		marker := " "
		if row.Active {
			marker = "*"
		}
		indent := strings.Repeat("  ", row.Depth)

		switch row.Kind {
		case views.RowAll:
			fmt.Fprintf(output, "%s %s%s (%d)\n", marker, indent, row.Label, row.Count)
		case views.RowTag:
			fmt.Fprintf(output, "%s %s#%s (%d)\n", marker, indent, row.Label, row.Count)
		case views.RowNote:
			fmt.Fprintf(output, "  %s%s  %s\n", indent, note.ShortID(row.NoteID), row.Label)
		default:
			fmt.Fprintf(output, "  %s%s\n", indent, row.Label)
		}
	}
}
