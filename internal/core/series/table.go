package series

import (
	"bytes"
	"encoding/json"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Row is one day bucket of an aligned table.
type Row struct {
	Date   string // yyyy-MM-dd
	Day    time.Time
	Values map[ColumnKey]decimal.Decimal
}

// Value returns the cell for column, zero when the column is unknown.
func (r Row) Value(column ColumnKey) decimal.Decimal {
	if v, ok := r.Values[column]; ok {
		return v
	}
	return decimal.Zero
}

// Table is the dense, ascending, rectangular result of an alignment.
type Table struct {
	Columns []ColumnKey
	Rows    []Row
}

// SortRows orders rows ascending by day. Ties keep their relative order.
func SortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Day.Before(rows[j].Day)
	})
}

// ColumnNames returns the display names of the table's columns in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, column := range t.Columns {
		names[i] = column.String()
	}
	return names
}

// Records flattens the table into the sequence-of-records shape charting surfaces
// consume: {"date": "2024-01-01", "<column>": number, ...}.
// Columns whose display names clash collapse to the last one written.
func (t *Table) Records() []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(map[string]interface{}, len(t.Columns)+1)
		rec[DateField] = row.Date
		for _, column := range t.Columns {
			rec[column.String()] = row.Value(column).InexactFloat64()
		}
		out = append(out, rec)
	}
	return out
}

// MarshalJSON encodes the table as its flat records, keeping column order.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range t.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeRow(&buf, row, t.Columns); err != nil {
			return nil, err
		}
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func writeRow(buf *bytes.Buffer, row Row, columns []ColumnKey) error {
	buf.WriteString(`{"date":`)
	date, err := json.Marshal(row.Date)
	if err != nil {
		return err
	}
	buf.Write(date)

	written := make(map[string]int, len(columns))
	type cell struct {
		name  string
		value string
	}
	cells := make([]cell, 0, len(columns))
	for _, column := range columns {
		name := column.String()
		value := row.Value(column).String()
		if idx, ok := written[name]; ok {
			cells[idx].value = value
			continue
		}
		written[name] = len(cells)
		cells = append(cells, cell{name: name, value: value})
	}

	for _, c := range cells {
		name, err := json.Marshal(c.name)
		if err != nil {
			return err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.WriteString(c.value)
	}
	buf.WriteByte('}')
	return nil
}
