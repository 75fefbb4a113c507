// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package ingest

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/tomtom215/northstar/internal/models"
)

// Table is an input table read as text. Rows are numbered from 1 in source
// order, excluding the header.
type Table struct {
	Name    string
	Path    string
	Columns []string

	index map[string]int
	rows  [][]sql.NullString
}

func newTable(name, path string, columns []string) *Table {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := index[c]; !dup {
			index[c] = i
		}
	}
	return &Table{Name: name, Path: path, Columns: columns, index: index}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Has reports whether the table has the column.
func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Require returns ErrMissingColumn naming every absent column.
func (t *Table) Require(columns ...string) error {
	var missing []string
	for _, c := range columns {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s (%s) lacks %s", ErrMissingColumn, t.Name, t.Path, strings.Join(missing, ", "))
	}
	return nil
}

// Value returns the cell at row i (0-based) and column. Absent columns and
// empty cells report false.
func (t *Table) Value(i int, column string) (string, bool) {
	c, ok := t.index[column]
	if !ok {
		return "", false
	}
	cell := t.rows[i][c]
	if !cell.Valid || cell.String == "" {
		return "", false
	}
	return cell.String, true
}

// String returns the cell at row i, or "" when absent.
func (t *Table) String(i int, column string) string {
	v, _ := t.Value(i, column)
	return v
}

// FirstOf returns the first of columns present in the table.
func (t *Table) FirstOf(columns ...string) (string, bool) {
	for _, c := range columns {
		if t.Has(c) {
			return c, true
		}
	}
	return "", false
}

// Records converts every row into an EventRecord holding its non-empty cells.
func (t *Table) Records() []models.EventRecord {
	out := make([]models.EventRecord, len(t.rows))
	for i, row := range t.rows {
		fields := make(map[string]string, len(t.Columns))
		for c, name := range t.Columns {
			if row[c].Valid && row[c].String != "" {
				if _, seen := fields[name]; !seen {
					fields[name] = row[c].String
				}
			}
		}
		out[i] = models.EventRecord{Row: i + 1, Fields: fields}
	}
	return out
}
