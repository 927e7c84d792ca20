// Package render turns note markdown into HTML and styled terminal output.
package render

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/Paintersrp/noteplan/internal/note"
	"github.com/Paintersrp/noteplan/internal/parser"
)

// DefaultStyle is the glamour style used when none is configured.
const DefaultStyle = "dracula"

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// Markdown converts note content to an HTML fragment.
func Markdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML makes text safe for HTML. Anything that is not a string
// yields "".
func EscapeHTML(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return escaper.Replace(s)
}

type termKey struct {
	style string
	width int
}

var (
	termMu        sync.Mutex
	termRenderers = make(map[termKey]*glamour.TermRenderer)
)

func termRenderer(style string, width int) (*glamour.TermRenderer, error) {
	if style == "" {
		style = DefaultStyle
	}
	if width <= 0 {
		width = 100
	}

	termMu.Lock()
	defer termMu.Unlock()
	key := termKey{style: style, width: width}
	if r, ok := termRenderers[key]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.ANSI256),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s renderer: %w", style, err)
	}
	termRenderers[key] = r
	return r, nil
}

// Terminal renders markdown for display in a terminal of the given width.
func Terminal(src string, width int, style string) (string, error) {
	r, err := termRenderer(style, width)
	if err != nil {
		return "", err
	}

	termMu.Lock()
	defer termMu.Unlock()
	out, err := r.Render(src)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

// Document builds a standalone HTML page listing notes in the given order.
func Document(title string, notes []note.Note) (string, error) {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", EscapeHTML(title))
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", EscapeHTML(title))

	for _, n := range notes {
		body, err := Markdown(n.Content)
		if err != nil {
			return "", fmt.Errorf("note %s: %w", note.ShortID(n.ID), err)
		}
		fmt.Fprintf(&b, "<article id=\"note-%s\">\n", EscapeHTML(n.ID))
		fmt.Fprintf(&b, "<h2>%s</h2>\n", EscapeHTML(n.Title))
		if len(n.Tags) > 0 {
			fmt.Fprintf(&b, "<p class=\"tags\">%s</p>\n", EscapeHTML(parser.FormatTags(n.Tags)))
		}
		fmt.Fprintf(&b, "<p class=\"updated\"><small>Last updated: %s</small></p>\n",
			n.UpdatedAt.Local().Format(time.DateTime))
		b.WriteString(body)
		b.WriteString("</article>\n")
	}

	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}
