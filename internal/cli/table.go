// Package cli holds the terminal output helpers: tables, message boxes, and
// confirmation prompts.
package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Table renders rows of cells as a box-drawn CLI table, sizing each column to
// its widest cell.
type Table struct {
	headers []string
	rows    [][]string
	widths  []int
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	return &Table{headers: headers, widths: widths}
}

// AddRow appends a row. Rows with the wrong number of cells are dropped.
func (t *Table) AddRow(cells ...string) {
	if len(cells) != len(t.headers) {
		return
	}
	t.rows = append(t.rows, cells)
	for i, cell := range cells {
		if w := utf8.RuneCountInString(cell); w > t.widths[i] {
			t.widths[i] = w
		}
	}
}

// String returns the formatted table.
func (t *Table) String() string {
	var sb strings.Builder

	t.writeBorder(&sb, "┌", "┬", "┐")
	t.writeRow(&sb, t.headers)
	t.writeBorder(&sb, "├", "┼", "┤")
	for _, row := range t.rows {
		t.writeRow(&sb, row)
	}
	t.writeBorder(&sb, "└", "┴", "┘")

	return sb.String()
}

func (t *Table) writeRow(sb *strings.Builder, cells []string) {
	sb.WriteString("│")
	for i, cell := range cells {
		pad := t.widths[i] - utf8.RuneCountInString(cell)
		fmt.Fprintf(sb, " %s%s │", cell, strings.Repeat(" ", pad))
	}
	sb.WriteString("\n")
}

func (t *Table) writeBorder(sb *strings.Builder, left, middle, right string) {
	sb.WriteString(left)
	for i, w := range t.widths {
		sb.WriteString(strings.Repeat("─", w+2))
		if i < len(t.widths)-1 {
			sb.WriteString(middle)
		}
	}
	sb.WriteString(right)
	sb.WriteString("\n")
}
