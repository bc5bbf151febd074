// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// IO carries the streams a command reads and writes. Commands never
// touch os.Stdin or os.Stdout directly, so tests can run them against
// buffers.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StandardIO returns the process's standard streams.
func StandardIO() IO {
	return IO{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// ColorEnabled resolves a color mode ("auto", "always", "never") for
// output written to w. Auto colors only terminals, and honors NO_COLOR.
func ColorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		return IsTerminal(w) && os.Getenv("NO_COLOR") == "", nil
	default:
		return false, Validation("unknown color mode %q (want auto, always, or never)", mode)
	}
}

// Highlight writes source to w, syntax-highlighted for language when
// enabled. Unknown languages and highlighter failures fall back to the
// plain text.
func Highlight(w io.Writer, source, language string, enabled bool) error {
	if enabled {
		var buffer bytes.Buffer
		if err := quick.Highlight(&buffer, source, language, "terminal256", "monokai"); err == nil {
			_, err = w.Write(buffer.Bytes())
			return err
		}
	}
	_, err := io.WriteString(w, source)
	return err
}

// Styles renders the few text roles the tool's tables use. A disabled
// Styles returns text unchanged.
type Styles struct {
	enabled bool

	header    lipgloss.Style
	literal   lipgloss.Style
	reference lipgloss.Style
	faint     lipgloss.Style
	problem   lipgloss.Style
}

// NewStyles creates styles for output written to w. The color profile
// is forced to ANSI256 when enabled: the caller has already decided,
// via [ColorEnabled], that w should be colored, and lipgloss would
// otherwise re-detect from the environment.
func NewStyles(w io.Writer, enabled bool) *Styles {
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(termenv.ANSI256))
	renderer.SetColorProfile(termenv.ANSI256)
	return &Styles{
		enabled:   enabled,
		header:    renderer.NewStyle().Bold(true).Underline(true),
		literal:   renderer.NewStyle().Foreground(lipgloss.Color("114")),
		reference: renderer.NewStyle().Foreground(lipgloss.Color("75")),
		faint:     renderer.NewStyle().Foreground(lipgloss.Color("245")),
		problem:   renderer.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
	}
}

func (s *Styles) render(style lipgloss.Style, text string) string {
	if !s.enabled || text == "" {
		return text
	}
	return style.Render(text)
}

// Header styles a table heading.
func (s *Styles) Header(text string) string { return s.render(s.header, text) }

// Literal styles text that appears literally in a stream.
func (s *Styles) Literal(text string) string { return s.render(s.literal, text) }

// Reference styles back-reference tokens and their targets.
func (s *Styles) Reference(text string) string { return s.render(s.reference, text) }

// Faint styles secondary detail.
func (s *Styles) Faint(text string) string { return s.render(s.faint, text) }

// Problem styles errors and failed checks.
func (s *Styles) Problem(text string) string { return s.render(s.problem, text) }

// Table lays out rows of cells in aligned columns. Widths are measured
// on the visible text, so cells may carry ANSI styling.
type Table struct {
	styles *Styles
	header []string
	rows   [][]string
}

// NewTable creates a table with the given column headings.
func NewTable(styles *Styles, header ...string) *Table {
	return &Table{styles: styles, header: header}
}

// AddRow appends a row. Missing trailing cells render empty.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Len returns the number of rows added.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render writes the table to w, columns separated by two spaces.
func (t *Table) Render(w io.Writer) error {
	widths := make([]int, len(t.header))
	measure := func(cells []string) {
		for index, cell := range cells {
			if index >= len(widths) {
				widths = append(widths, 0)
			}
			widths[index] = max(widths[index], ansi.StringWidth(cell))
		}
	}
	measure(t.header)
	for _, row := range t.rows {
		measure(row)
	}

	formatRow := func(cells []string, style func(string) string) string {
		var line strings.Builder
		for index := range widths {
			cell := ""
			if index < len(cells) {
				cell = cells[index]
			}
			line.WriteString(style(cell))
			if index < len(widths)-1 {
				line.WriteString(strings.Repeat(" ", widths[index]-ansi.StringWidth(cell)+2))
			}
		}
		return strings.TrimRight(line.String(), " ") + "\n"
	}

	var output strings.Builder
	if len(t.header) > 0 {
		output.WriteString(formatRow(t.header, t.styles.Header))
	}
	plain := func(cell string) string { return cell }
	for _, row := range t.rows {
		output.WriteString(formatRow(row, plain))
	}
	_, err := io.WriteString(w, output.String())
	return err
}
