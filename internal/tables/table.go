// Package tables builds column-oriented report tables for the admin
// registration pages and renders them as JSON or XLSX.
package tables

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Header identifies a column. Keys are unique within a table.
type Header struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// Cell is one rendered value. Sort overrides Text when ordering rows and
// is written to spreadsheets as a number when it is numeric.
type Cell struct {
	Text string `json:"text"`
	Sort any    `json:"sort,omitempty"`
	Link string `json:"link,omitempty"`
}

// Text is a plain cell.
func Text(s string) Cell {
	return Cell{Text: s}
}

// Int is a numeric cell sorted by value.
func Int(v int) Cell {
	return Cell{Text: strconv.Itoa(v), Sort: v}
}

// Table is built column by column; every column must have one cell per row.
// The first column added fixes the row count. A mismatched column is kept
// out of the table and its error is returned by Err and by the renderers.
type Table struct {
	Title   string
	SortKey string
	headers []Header
	columns [][]Cell
	rows    int
	err     error
}

func New(title, sortKey string) *Table {
	return &Table{Title: title, SortKey: sortKey, rows: -1}
}

// AddColumn appends a column. Adding a key twice is an error.
func (t *Table) AddColumn(h Header, cells []Cell) *Table {
	if t.err != nil {
		return t
	}
	for _, existing := range t.headers {
		if existing.Key == h.Key {
			t.err = fmt.Errorf("table %q: duplicate column %q", t.Title, h.Key)
			return t
		}
	}
	if t.rows >= 0 && len(cells) != t.rows {
		t.err = fmt.Errorf("table %q: column %q has %d cells, want %d", t.Title, h.Key, len(cells), t.rows)
		return t
	}
	t.rows = len(cells)
	t.headers = append(t.headers, h)
	t.columns = append(t.columns, cells)
	return t
}

// AddTextColumn appends a column of plain cells.
func (t *Table) AddTextColumn(h Header, values []string) *Table {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Text(v)
	}
	return t.AddColumn(h, cells)
}

func (t *Table) Err() error {
	return t.err
}

func (t *Table) Headers() []Header {
	return t.headers
}

// Rows returns the table transposed into rows.
func (t *Table) Rows() [][]Cell {
	if t.rows <= 0 {
		return [][]Cell{}
	}
	out := make([][]Cell, t.rows)
	for r := range out {
		row := make([]Cell, len(t.columns))
		for c, col := range t.columns {
			row[c] = col[r]
		}
		out[r] = row
	}
	return out
}

// Column returns the cells under key, or nil.
func (t *Table) Column(key string) []Cell {
	for i, h := range t.headers {
		if h.Key == key {
			return t.columns[i]
		}
	}
	return nil
}

type tableJSON struct {
	Title   string   `json:"title"`
	SortKey string   `json:"sort_key"`
	Head    []Header `json:"head"`
	Data    [][]Cell `json:"data"`
}

func (t *Table) MarshalJSON() ([]byte, error) {
	if t.err != nil {
		return nil, t.err
	}
	head := t.headers
	if head == nil {
		head = []Header{}
	}
	return json.Marshal(tableJSON{Title: t.Title, SortKey: t.SortKey, Head: head, Data: t.Rows()})
}
