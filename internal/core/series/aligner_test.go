package series

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func cell(t *testing.T, table *Table, date string, column ColumnKey) decimal.Decimal {
	t.Helper()
	for _, row := range table.Rows {
		if row.Date == date {
			v, ok := row.Values[column]
			require.True(t, ok, "column %q missing on %s", column, date)
			return v
		}
	}
	t.Fatalf("row %s not found", date)
	return decimal.Zero
}

func TestAlignAt_SplitByRegion(t *testing.T) {
	now := time.Date(2024, 1, 3, 15, 30, 0, 0, time.UTC)
	records := []Record{
		{"date": "2024-01-01", "region": "us", "sales": 10},
		{"date": "2024-01-03", "region": "eu", "sales": 5},
	}

	table, err := AlignAt(now, records, Config{Props: []string{"sales"}, SplitBy: "region", Range: 3})
	require.NoError(t, err)

	us := ColumnKey{SplitValue: "us", Prop: "sales", Split: true}
	eu := ColumnKey{SplitValue: "eu", Prop: "sales", Split: true}

	require.Equal(t, []ColumnKey{us, eu}, table.Columns)
	require.Equal(t, []string{"us sales", "eu sales"}, table.ColumnNames())

	dates := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		dates = append(dates, row.Date)
	}
	require.Equal(t, []string{"2023-12-31", "2024-01-01", "2024-01-02", "2024-01-03"}, dates)

	require.True(t, decimal.NewFromInt(10).Equal(cell(t, table, "2024-01-01", us)))
	require.True(t, cell(t, table, "2024-01-01", eu).IsZero())
	require.True(t, cell(t, table, "2024-01-03", us).IsZero())
	require.True(t, decimal.NewFromInt(5).Equal(cell(t, table, "2024-01-03", eu)))
	require.True(t, cell(t, table, "2023-12-31", us).IsZero())
	require.True(t, cell(t, table, "2024-01-02", eu).IsZero())
}

func TestAlignAt_EmptyInput(t *testing.T) {
	now := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)

	table, err := AlignAt(now, nil, Config{Props: []string{"views", "clicks"}, Range: 2})
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)
	require.Equal(t, "2024-05-08", table.Rows[0].Date)
	require.Equal(t, "2024-05-10", table.Rows[2].Date)

	for _, row := range table.Rows {
		require.Len(t, row.Values, 2)
		for _, v := range row.Values {
			require.True(t, v.IsZero())
		}
	}
}

func TestAlignAt_EmptyInputWithSplitHasNoColumns(t *testing.T) {
	now := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)

	table, err := AlignAt(now, nil, Config{Props: []string{"views"}, SplitBy: "region", Range: 1})
	require.NoError(t, err)
	require.Empty(t, table.Columns)
	require.Len(t, table.Rows, 2)
}

func TestAlignAt_FirstMatchWins(t *testing.T) {
	now := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		cfg     Config
		records []Record
		column  ColumnKey
		want    int64
	}{
		{
			name: "without split the first record of the day wins",
			cfg:  Config{Props: []string{"sales"}, Range: 2},
			records: []Record{
				{"date": "2024-01-02T08:00:00Z", "sales": 7},
				{"date": "2024-01-02T20:00:00Z", "sales": 100},
			},
			column: ColumnKey{Prop: "sales"},
			want:   7,
		},
		{
			name: "without split a different region still counts as first",
			cfg:  Config{Props: []string{"sales"}, Range: 2},
			records: []Record{
				{"date": "2024-01-02", "region": "eu", "sales": 3},
				{"date": "2024-01-02", "region": "us", "sales": 9},
			},
			column: ColumnKey{Prop: "sales"},
			want:   3,
		},
		{
			name: "with split duplicates per region are ignored",
			cfg:  Config{Props: []string{"sales"}, SplitBy: "region", Range: 2},
			records: []Record{
				{"date": "2024-01-02", "region": "us", "sales": 4},
				{"date": "2024-01-02", "region": "eu", "sales": 1},
				{"date": "2024-01-02", "region": "us", "sales": 40},
			},
			column: ColumnKey{SplitValue: "us", Prop: "sales", Split: true},
			want:   4,
		},
		{
			name: "first match with missing prop still shadows later records",
			cfg:  Config{Props: []string{"sales"}, Range: 2},
			records: []Record{
				{"date": "2024-01-02", "visits": 2},
				{"date": "2024-01-02", "sales": 11},
			},
			column: ColumnKey{Prop: "sales"},
			want:   0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			table, err := AlignAt(now, tc.records, tc.cfg)
			require.NoError(t, err)
			got := cell(t, table, "2024-01-02", tc.column)
			require.True(t, decimal.NewFromInt(tc.want).Equal(got), "got %s", got)
		})
	}
}

func TestAlignAt_FalsyValuesDefaultToZero(t *testing.T) {
	now := time.Date(2024, 1, 6, 12, 0, 0, 0, time.UTC)
	records := []Record{
		{"date": "2024-01-01", "v": nil},
		{"date": "2024-01-02", "v": ""},
		{"date": "2024-01-03", "v": "n/a"},
		{"date": "2024-01-04", "v": true},
		{"date": "2024-01-05", "v": "12.5"},
		{"date": "2024-01-06", "v": 0},
	}

	table, err := AlignAt(now, records, Config{Props: []string{"v"}, Range: 5})
	require.NoError(t, err)

	column := ColumnKey{Prop: "v"}
	for _, date := range []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-06"} {
		require.True(t, cell(t, table, date, column).IsZero(), date)
	}
	require.True(t, decimal.RequireFromString("12.5").Equal(cell(t, table, "2024-01-05", column)))
}

func TestAlignAt_MalformedDatesNeverMatch(t *testing.T) {
	now := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	records := []Record{
		{"date": "yesterday", "region": "us", "sales": 99},
		{"region": "us", "sales": 98},
		{"date": "2024-01-02", "region": "us", "sales": 2},
	}

	table, err := AlignAt(now, records, Config{Props: []string{"sales"}, SplitBy: "region", Range: 1})
	require.NoError(t, err)

	us := ColumnKey{SplitValue: "us", Prop: "sales", Split: true}
	require.Equal(t, []ColumnKey{us}, table.Columns)
	require.True(t, decimal.NewFromInt(2).Equal(cell(t, table, "2024-01-02", us)))
	require.True(t, cell(t, table, "2024-01-03", us).IsZero())
}

func TestAlignAt_AcceptsSpaceSeparatedAndWeekDates(t *testing.T) {
	now := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	records := []Record{
		{"date": "2024-01-02 10:00:00", "sales": 7},
		{"date": "2024-W01-1", "sales": 3},
		{"date": "2024-003", "sales": 4},
	}

	table, err := AlignAt(now, records, Config{Props: []string{"sales"}, Range: 2})
	require.NoError(t, err)

	sales := ColumnKey{Prop: "sales"}
	require.True(t, decimal.NewFromInt(3).Equal(cell(t, table, "2024-01-01", sales)))
	require.True(t, decimal.NewFromInt(7).Equal(cell(t, table, "2024-01-02", sales)))
	require.True(t, decimal.NewFromInt(4).Equal(cell(t, table, "2024-01-03", sales)))
}

func TestAlignAt_RecordsOutsideWindowContributeColumnsOnly(t *testing.T) {
	now := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	records := []Record{
		{"date": "2023-06-01", "region": "apac", "sales": 5},
		{"date": "2024-01-03", "region": "us", "sales": 1},
	}

	table, err := AlignAt(now, records, Config{Props: []string{"sales"}, SplitBy: "region", Range: 0})
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	require.Equal(t, []string{"apac sales", "us sales"}, table.ColumnNames())

	apac := ColumnKey{SplitValue: "apac", Prop: "sales", Split: true}
	require.True(t, cell(t, table, "2024-01-03", apac).IsZero())
}

func TestAlignAt_UsesLocationOfNowForCalendarDays(t *testing.T) {
	sydney := time.FixedZone("UTC+10", 10*60*60)
	now := time.Date(2024, 1, 3, 9, 0, 0, 0, sydney)
	records := []Record{
		// 23:30 UTC on the 2nd is 09:30 on the 3rd in UTC+10.
		{"date": "2024-01-02T23:30:00Z", "sales": 8},
		// Offset-less timestamps are read in the local zone.
		{"date": "2024-01-02T23:30:00", "sales": 3},
	}

	table, err := AlignAt(now, records, Config{Props: []string{"sales"}, Range: 1})
	require.NoError(t, err)

	column := ColumnKey{Prop: "sales"}
	require.True(t, decimal.NewFromInt(3).Equal(cell(t, table, "2024-01-02", column)))
	require.True(t, decimal.NewFromInt(8).Equal(cell(t, table, "2024-01-03", column)))
}

func TestAlignAt_InvalidConfig(t *testing.T) {
	now := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)

	_, err := AlignAt(now, nil, Config{Props: []string{"sales"}, Range: -1})
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = AlignAt(now, nil, Config{Range: 3})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestAlignAt_DenseRectangularAndShuffleInvariant(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
	cfg := Config{Props: []string{"sales", "refunds"}, SplitBy: "region", Range: 20}

	var records []Record
	regions := []string{"us", "eu", "apac"}
	for i := 0; i < 30; i++ {
		records = append(records, Record{
			"date":    DayKey(day(2024, 2, 20).AddDate(0, 0, i)),
			"region":  regions[i%len(regions)],
			"sales":   i + 1,
			"refunds": float64(i) / 2,
		})
	}

	base, err := AlignAt(now, records, cfg)
	require.NoError(t, err)
	require.Len(t, base.Rows, cfg.Range+1)
	require.Len(t, base.Columns, len(cfg.Props)*len(regions))
	require.Equal(t, "2024-03-15", base.Rows[len(base.Rows)-1].Date)

	for i, row := range base.Rows {
		require.Len(t, row.Values, len(base.Columns))
		if i > 0 {
			require.Equal(t, base.Rows[i-1].Day.AddDate(0, 0, 1), row.Day)
		}
	}

	rng := rand.New(rand.NewSource(42))
	for attempt := 0; attempt < 5; attempt++ {
		shuffled := append([]Record(nil), records...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		got, err := AlignAt(now, shuffled, cfg)
		require.NoError(t, err)
		require.ElementsMatch(t, base.Columns, got.Columns)
		require.Len(t, got.Rows, len(base.Rows))
		for i := range base.Rows {
			require.Equal(t, base.Rows[i].Date, got.Rows[i].Date)
			for _, column := range base.Columns {
				require.True(t, base.Rows[i].Value(column).Equal(got.Rows[i].Value(column)))
			}
		}
	}
}

func TestSortRows_AscendingAndStable(t *testing.T) {
	rows := []Row{
		{Date: "2024-01-03", Day: day(2024, 1, 3)},
		{Date: "2024-01-01", Day: day(2024, 1, 1), Values: map[ColumnKey]decimal.Decimal{{Prop: "a"}: decimal.NewFromInt(1)}},
		{Date: "2024-01-02", Day: day(2024, 1, 2)},
		{Date: "2024-01-01", Day: day(2024, 1, 1), Values: map[ColumnKey]decimal.Decimal{{Prop: "a"}: decimal.NewFromInt(2)}},
	}

	SortRows(rows)

	require.Equal(t, "2024-01-01", rows[0].Date)
	require.Equal(t, "2024-01-01", rows[1].Date)
	require.True(t, decimal.NewFromInt(1).Equal(rows[0].Value(ColumnKey{Prop: "a"})))
	require.True(t, decimal.NewFromInt(2).Equal(rows[1].Value(ColumnKey{Prop: "a"})))
	require.Equal(t, "2024-01-02", rows[2].Date)
	require.Equal(t, "2024-01-03", rows[3].Date)
}
