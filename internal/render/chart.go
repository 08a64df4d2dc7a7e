package render

import (
	"strconv"

	"github.com/aevon-lab/chartline/internal/core/series"
)

// Shades of the palette colour used for the series stroke and its gradient fill.
const (
	strokeShade = 4
	fillShade   = 6
)

// Spec carries the display options of one chart.
type Spec struct {
	Title  string
	Height int
}

// Series describes how one table column is drawn.
type Series struct {
	Key        string `json:"key"`
	Color      string `json:"color"`
	Stroke     string `json:"stroke"`
	Fill       string `json:"fill"`
	GradientID string `json:"gradient_id"`
	StackID    string `json:"stack_id"`
}

// Tooltip is the hover content of one day.
type Tooltip struct {
	Label string   `json:"label"`
	Lines []string `json:"lines"`
}

// Chart is the render-ready form of an aligned table.
type Chart struct {
	Title     string            `json:"title"`
	Height    int               `json:"height"`
	Series    []Series          `json:"series"`
	Data      *series.Table     `json:"data"`
	AxisTicks []string          `json:"axis_ticks"`
	Tooltips  []Tooltip         `json:"tooltips"`
	Totals    map[string]string `json:"totals"`
}

// Build turns an aligned table into a stacked area chart description.
// A nil palette or formatter falls back to DefaultPalette and FormatLargeNumber.
func Build(spec Spec, table *series.Table, palette Palette, formatter Formatter) *Chart {
	if palette == nil {
		palette = DefaultPalette
	}
	if formatter == nil {
		formatter = FormatLargeNumber
	}

	chart := &Chart{
		Title:     spec.Title,
		Height:    spec.Height,
		Series:    make([]Series, 0, len(table.Columns)),
		Data:      table,
		AxisTicks: AxisTicks(table.Rows),
		Tooltips:  make([]Tooltip, 0, len(table.Rows)),
		Totals:    make(map[string]string, len(table.Columns)),
	}

	for i, column := range table.Columns {
		color := palette(i)
		name := column.String()
		chart.Series = append(chart.Series, Series{
			Key:        name,
			Color:      color,
			Stroke:     shade(color, strokeShade),
			Fill:       shade(color, fillShade),
			GradientID: Slugify(name),
			StackID:    "1",
		})
	}

	for _, row := range table.Rows {
		tooltip := Tooltip{Label: FormatDayLabel(row.Date), Lines: make([]string, 0, len(table.Columns))}
		for _, column := range table.Columns {
			tooltip.Lines = append(tooltip.Lines, column.String()+": "+formatter(row.Value(column).InexactFloat64()))
		}
		chart.Tooltips = append(chart.Tooltips, tooltip)
	}

	for _, column := range table.Columns {
		total := 0.0
		for _, row := range table.Rows {
			total += row.Value(column).InexactFloat64()
		}
		chart.Totals[column.String()] = formatter(total)
	}

	return chart
}

// AxisTicks labels every bucket except the first and last, which stay blank.
func AxisTicks(rows []series.Row) []string {
	ticks := make([]string, len(rows))
	for i, row := range rows {
		if i == 0 || i == len(rows)-1 {
			continue
		}
		ticks[i] = FormatDayLabel(row.Date)
	}
	return ticks
}

func shade(color string, level int) string {
	return color + "." + strconv.Itoa(level)
}
