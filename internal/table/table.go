// Package table provides an ordered-column string table used as the
// interchange format between CSV ingestion, the prediction pipeline,
// and report rendering. Cells are kept as raw strings until a pipeline
// stage interprets them.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Table is a rectangular grid of string cells with named, ordered columns.
// Column order is significant and preserved through every transformation.
type Table struct {
	headers []string
	rows    [][]string
	index   map[string]int
}

// New creates an empty table with the given column headers.
// Duplicate header names keep the first occurrence in the index.
func New(headers []string) *Table {
	t := &Table{
		headers: append([]string(nil), headers...),
		index:   make(map[string]int, len(headers)),
	}
	for i, h := range headers {
		if _, exists := t.index[h]; !exists {
			t.index[h] = i
		}
	}
	return t
}

// Headers returns the column names in order.
func (t *Table) Headers() []string {
	return t.headers
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.headers)
}

// AppendRow adds a data row. Short rows are padded with empty cells,
// long rows are rejected.
func (t *Table) AppendRow(row []string) error {
	if len(row) > len(t.headers) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(row), len(t.headers))
	}
	r := make([]string, len(t.headers))
	copy(r, row)
	t.rows = append(t.rows, r)
	return nil
}

// Row returns the i-th data row. The returned slice is shared with the
// table; callers must not mutate it.
func (t *Table) Row(i int) []string {
	return t.rows[i]
}

// Cell returns the cell at row i, column col.
func (t *Table) Cell(i, col int) string {
	return t.rows[i][col]
}

// SetCell overwrites the cell at row i, column col.
func (t *Table) SetCell(i, col int, value string) {
	t.rows[i][col] = value
}

// ColumnIndex looks up a column by exact name.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// ColumnIndexFold looks up a column by name, ignoring case and
// surrounding whitespace. Exact matches win over folded matches.
func (t *Table) ColumnIndexFold(name string) (int, bool) {
	if i, ok := t.index[name]; ok {
		return i, true
	}
	want := strings.ToLower(strings.TrimSpace(name))
	for i, h := range t.headers {
		if strings.ToLower(strings.TrimSpace(h)) == want {
			return i, true
		}
	}
	return 0, false
}

// Column returns all values of the named column in row order.
func (t *Table) Column(name string) ([]string, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	out := make([]string, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i]
	}
	return out, true
}

// AddColumn appends a new column with the given values. The value slice
// must match the current row count.
func (t *Table) AddColumn(name string, values []string) error {
	if len(values) != len(t.rows) {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), len(t.rows))
	}
	t.headers = append(t.headers, name)
	if _, exists := t.index[name]; !exists {
		t.index[name] = len(t.headers) - 1
	}
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], values[i])
	}
	return nil
}

// RenameColumn changes a column header in place.
func (t *Table) RenameColumn(old, newName string) error {
	i, ok := t.index[old]
	if !ok {
		return fmt.Errorf("column %q not found", old)
	}
	t.headers[i] = newName
	delete(t.index, old)
	if _, exists := t.index[newName]; !exists {
		t.index[newName] = i
	}
	return nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := New(t.headers)
	c.rows = make([][]string, len(t.rows))
	for i, row := range t.rows {
		c.rows[i] = append([]string(nil), row...)
	}
	return c
}

// Select returns a new table containing only the rows at the given
// indices, in the given order.
func (t *Table) Select(indices []int) *Table {
	c := New(t.headers)
	c.rows = make([][]string, 0, len(indices))
	for _, i := range indices {
		c.rows = append(c.rows, append([]string(nil), t.rows[i]...))
	}
	return c
}

// ReadCSV parses CSV data into a table. The first record is the header
// row. Headers are trimmed of surrounding whitespace; cell values are
// kept verbatim. A header-only file yields a table with zero rows.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv input is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t := New(header)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv record: %w", err)
		}
		if len(record) > len(header) {
			record = record[:len(header)]
		}
		if err := t.AppendRow(record); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// WriteCSV renders the table as CSV, header row first.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.headers); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range t.rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
