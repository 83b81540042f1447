// Package output renders plain-text tables and wrapped paragraphs for
// terminal display.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// Formatter writes text to an underlying writer.
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a formatter writing to w.
func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{writer: w}
}

// Writer returns the formatter's writer
func (f *Formatter) Writer() io.Writer {
	return f.writer
}

// Text outputs plain text to the formatter's writer
func (f *Formatter) Text(format string, args ...interface{}) {
	fmt.Fprintf(f.writer, format, args...)
}

// Textln outputs plain text with a newline to the formatter's writer
func (f *Formatter) Textln(format string, args ...interface{}) {
	fmt.Fprintf(f.writer, format+"\n", args...)
}

// Line outputs a blank line
func (f *Formatter) Line() {
	fmt.Fprintln(f.writer)
}

// Paragraph writes s word-wrapped to width and indented by margin spaces.
func (f *Formatter) Paragraph(s string, width, margin int) {
	fmt.Fprintln(f.writer, Wrap(s, width, margin))
}

// Wrap word-wraps s so that, after indenting by margin, no line exceeds width.
func Wrap(s string, width, margin int) string {
	if s == "" {
		return ""
	}
	limit := width - margin
	if limit < 20 {
		limit = 20
	}
	wrapped := wordwrap.String(s, limit)
	if margin <= 0 {
		return wrapped
	}
	return indent.String(wrapped, uint(margin))
}

// Table outputs tabular data in text format
type Table struct {
	writer  io.Writer
	headers []string
	rows    [][]string
	widths  []int
	styles  []func(string) string
}

// NewTable creates a new table. With no headers the header and separator
// rows are omitted and the column count comes from the first row.
func NewTable(w io.Writer, headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	return &Table{
		writer:  w,
		headers: headers,
		rows:    [][]string{},
		widths:  widths,
	}
}

// StyleColumn applies render to every cell of column i after padding.
func (t *Table) StyleColumn(i int, render func(string) string) {
	for len(t.styles) <= i {
		t.styles = append(t.styles, nil)
	}
	t.styles[i] = render
}

// AddRow adds a row to the table
func (t *Table) AddRow(cols ...string) {
	for i, c := range cols {
		w := runewidth.StringWidth(c)
		if i >= len(t.widths) {
			t.widths = append(t.widths, w)
			continue
		}
		if w > t.widths[i] {
			t.widths[i] = w
		}
	}
	t.rows = append(t.rows, cols)
}

// Render outputs the table
func (t *Table) Render() {
	if len(t.headers) > 0 {
		t.renderRow(t.headers, false)
		seps := make([]string, len(t.widths))
		for i, w := range t.widths {
			seps[i] = strings.Repeat("-", w)
		}
		t.renderRow(seps, false)
	}
	for _, row := range t.rows {
		t.renderRow(row, true)
	}
}

func (t *Table) renderRow(cols []string, styled bool) {
	var b strings.Builder
	b.WriteString("  ")
	for i, w := range t.widths {
		cell := ""
		if i < len(cols) {
			cell = cols[i]
		}
		last := i == len(t.widths)-1
		if !last {
			cell = runewidth.FillRight(cell, w)
		}
		if styled && i < len(t.styles) && t.styles[i] != nil {
			cell = t.styles[i](cell)
		}
		b.WriteString(cell)
		if !last {
			b.WriteString("  ")
		}
	}
	fmt.Fprintln(t.writer, strings.TrimRight(b.String(), " "))
}

// Truncate shortens s to at most maxWidth display columns, adding "..."
// when something was cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// Pluralize returns singular or plural form based on count
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}

// CountStr returns "N item(s)" string
func CountStr(count int, singular, plural string) string {
	return fmt.Sprintf("%d %s", count, Pluralize(count, singular, plural))
}
