package series

import (
	"time"

	"github.com/shopspring/decimal"
)

// cellKey addresses the first record seen for a (day, split value) pair.
type cellKey struct {
	day   string
	split string
}

// Align builds the dense table for the trailing window ending today.
func Align(records []Record, cfg Config) (*Table, error) {
	return AlignAt(time.Now(), records, cfg)
}

// AlignAt builds the dense table for the trailing window ending on now's calendar day.
// now is read once; its location decides calendar-day boundaries for buckets and records.
//
// Cells take the value from the first record (in input order) whose day and split
// value match; later duplicates are ignored, not summed.
func AlignAt(now time.Time, records []Record, cfg Config) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	columns := ResolveColumns(records, cfg)
	index := indexRecords(records, cfg.SplitBy, now.Location())

	days := Window(now, cfg.Range)
	rows := make([]Row, 0, len(days))
	for _, day := range days {
		date := DayKey(day)
		values := make(map[ColumnKey]decimal.Decimal, len(columns))
		for _, column := range columns {
			key := cellKey{day: date}
			if column.Split {
				key.split = column.SplitValue
			}
			rec, ok := index[key]
			if !ok {
				values[column] = decimal.Zero
				continue
			}
			values[column] = CellValue(rec[column.Prop])
		}
		rows = append(rows, Row{Date: date, Day: day, Values: values})
	}

	SortRows(rows)

	return &Table{Columns: columns, Rows: rows}, nil
}

// indexRecords keeps only the first record per (day, split) key, preserving input order
// precedence. Records with malformed dates are skipped.
func indexRecords(records []Record, splitBy string, loc *time.Location) map[cellKey]Record {
	index := make(map[cellKey]Record, len(records))
	for _, rec := range records {
		day, ok := recordDay(rec, loc)
		if !ok {
			continue
		}
		key := cellKey{day: day}
		if splitBy != "" {
			key.split = SplitValue(rec[splitBy])
		}
		if _, exists := index[key]; exists {
			continue
		}
		index[key] = rec
	}
	return index
}
