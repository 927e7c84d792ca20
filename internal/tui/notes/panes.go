package notes

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"

	"github.com/Paintersrp/noteplan/internal/views"
)

const ellipsis = "…"

func clip(s string, width int) string {
	if width <= 0 {
		return s
	}
	return truncate.StringWithTail(s, uint(width), ellipsis)
}

// window returns the [start, end) range of n items that keeps cursor
// visible within size slots.
func window(n, cursor, size int) (int, int) {
	if size <= 0 || n <= size {
		return 0, n
	}
	start := cursor - size + 1
	if start < 0 {
		start = 0
	}
	return start, start + size
}

func clamp(v, n int) int {
	if n == 0 || v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

func sidebarLine(row views.SidebarRow, width int) string {
	switch row.Kind {
	case views.RowAll:
		return clip(fmt.Sprintf("  %s (%d)", "All notes", row.Count), width)
	case views.RowTag:
		icon := "▸"
		if row.Expanded {
			icon = "▾"
		}
		return clip(fmt.Sprintf("%s #%s (%d)", icon, row.Label, row.Count), width)
	case views.RowNote:
		return clip("    • "+row.Label, width)
	default:
		return clip("    "+row.Label, width)
	}
}

func renderSidebar(rows []views.SidebarRow, cursor int, focused bool, width, height int) string {
	var b strings.Builder
	b.WriteString(paneTitleStyle.Render("Tags"))
	b.WriteString("\n")

	start, end := window(len(rows), cursor, height-1)
	for i := start; i < end; i++ {
		row := rows[i]
		line := sidebarLine(row, width)

		switch {
		case focused && i == cursor:
			line = selectedItemStyle.Render(line)
		case row.Kind == views.RowPlaceholder:
			line = placeholderStyle.Render(line)
		case row.Active:
			line = activeTagStyle.Render(line)
		case row.Kind == views.RowNote:
			line = dimStyle.Render(line)
		default:
			line = textStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

const cardHeight = 4

func renderNoteList(list views.NoteList, filter string, cursor int, focused bool, width, height int) string {
	var b strings.Builder
	b.WriteString(paneTitleStyle.Render(fmt.Sprintf("Notes · %s", filter)))
	b.WriteString("\n")

	if list.Empty() {
		msg := list.Message
		if list.Err != nil {
			b.WriteString(errorStyle.Render(clip(msg, width)))
		} else {
			b.WriteString(placeholderStyle.Render(clip(msg, width)))
		}
		return b.String()
	}

	start, end := window(len(list.Cards), cursor, (height-1)/cardHeight)
	for i := start; i < end; i++ {
		card := list.Cards[i]
		titleLine := clip(card.Title, width)
		if focused && i == cursor {
			titleLine = selectedItemStyle.Render(titleLine)
		} else {
			titleLine = activeTagStyle.Render(titleLine)
		}

		preview := strings.Join(strings.Fields(card.Preview), " ")
		chips := make([]string, len(card.Tags))
		for j, tag := range card.Tags {
			chips[j] = "#" + tag
		}

		b.WriteString(titleLine + "\n")
		b.WriteString(textStyle.Render(clip(preview, width)) + "\n")
		b.WriteString(chipStyle.Render(clip(strings.Join(chips, " "), width)) + "\n")
		b.WriteString(dimStyle.Render(clip("Last updated: "+formatTime(card.UpdatedAt), width)) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderTodoList(list views.TodoList, cursor int, focused bool, width, height int) string {
	var b strings.Builder
	b.WriteString(paneTitleStyle.Render("Todos"))
	b.WriteString("\n")

	if list.Empty() {
		if list.Err != nil {
			b.WriteString(errorStyle.Render(clip(list.Message, width)))
		} else {
			b.WriteString(placeholderStyle.Render(clip(list.Message, width)))
		}
		return b.String()
	}

	start, end := window(len(list.Todos), cursor, height-1)
	for i := start; i < end; i++ {
		todo := list.Todos[i]
		box := "[ ]"
		if todo.Completed {
			box = "[x]"
		}
		marker := ""
		if todo.IsDaily {
			marker = " [daily]"
		}
		line := clip(fmt.Sprintf("%s %s%s", box, todo.Task, marker), width)

		switch {
		case focused && i == cursor:
			line = selectedItemStyle.Render(line)
		case todo.Completed:
			line = completedStyle.Render(line)
		case todo.IsDaily:
			line = dailyStyle.Render(line)
		default:
			line = textStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
