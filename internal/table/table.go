// Package table turns uploaded results files into rows of optional strings
// and finds the score and tournament columns in them.
package table

import (
	"fmt"
	"strings"
)

// missingTokens are the cell values treated as missing. They match the
// default NA markers of common dataframe CSV readers.
var missingTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// Table is a parsed results table. A nil cell is a missing value.
type Table struct {
	Columns []string
	Rows    [][]*string
}

// New builds a table, renaming duplicate headers and padding short rows.
func New(columns []string, rows [][]*string) *Table {
	cols := DedupColumnNames(columns)
	for i, row := range rows {
		if len(row) < len(cols) {
			padded := make([]*string, len(cols))
			copy(padded, row)
			rows[i] = padded
		} else if len(row) > len(cols) {
			rows[i] = row[:len(cols)]
		}
	}
	return &Table{Columns: cols, Rows: rows}
}

// Cell converts a raw field into a table cell.
func Cell(raw string) *string {
	if _, missing := missingTokens[strings.TrimSpace(raw)]; missing {
		return nil
	}
	return &raw
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of a column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Value returns the cell at row/column index, nil when out of range.
func (t *Table) Value(row, col int) *string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return nil
	}
	return t.Rows[row][col]
}

// DedupColumnNames renames repeated headers to "name.1", "name.2", ...
func DedupColumnNames(columns []string) []string {
	taken := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		taken[c] = struct{}{}
	}

	seen := make(map[string]int, len(columns))
	out := make([]string, len(columns))
	for i, c := range columns {
		n, dup := seen[c]
		if !dup {
			seen[c] = 0
			out[i] = c
			continue
		}
		name := c
		for {
			n++
			name = fmt.Sprintf("%s.%d", c, n)
			if _, exists := taken[name]; !exists {
				break
			}
		}
		seen[c] = n
		taken[name] = struct{}{}
		out[i] = name
	}
	return out
}
