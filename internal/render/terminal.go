package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	defaultTerminalWidth = 100
	minColumnWidth       = 6
)

// TerminalWidth reports the width of stdout, falling back to a fixed width when
// stdout is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < 40 {
		return defaultTerminalWidth
	}
	return width
}

// WriteTable prints the chart as a boxed table: one line per day, one column per series.
// Headers wider than the available space are truncated; values are right-aligned.
func WriteTable(w io.Writer, chart *Chart, formatter Formatter, maxWidth int) error {
	if formatter == nil {
		formatter = FormatLargeNumber
	}
	table := chart.Data

	headers := append([]string{"date"}, table.ColumnNames()...)
	rows := make([][]string, 0, len(table.Rows)+1)
	for _, row := range table.Rows {
		line := make([]string, 0, len(headers))
		line = append(line, row.Date)
		for _, column := range table.Columns {
			line = append(line, formatter(row.Value(column).InexactFloat64()))
		}
		rows = append(rows, line)
	}

	totals := []string{"total"}
	for _, name := range table.ColumnNames() {
		totals = append(totals, chart.Totals[name])
	}

	widths := columnWidths(headers, append(rows, totals), maxWidth)

	if chart.Title != "" {
		if _, err := fmt.Fprintln(w, chart.Title); err != nil {
			return err
		}
	}
	printBorder(w, widths, "┌", "┬", "┐")
	printRow(w, headers, widths)
	printBorder(w, widths, "├", "┼", "┤")
	for _, row := range rows {
		printRow(w, row, widths)
	}
	printBorder(w, widths, "├", "┼", "┤")
	printRow(w, totals, widths)
	printBorder(w, widths, "└", "┴", "┘")
	return nil
}

// columnWidths sizes each column to its widest cell, then shrinks the series columns
// evenly until the table fits maxWidth (each column costs 3 extra cells of border).
func columnWidths(headers []string, rows [][]string, maxWidth int) []int {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = runewidth.StringWidth(header)
	}
	for _, row := range rows {
		for i, value := range row {
			if w := runewidth.StringWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}

	if maxWidth <= 0 {
		return widths
	}
	total := func() int {
		sum := 1
		for _, w := range widths {
			sum += w + 3
		}
		return sum
	}
	for total() > maxWidth {
		widest := 1
		for i := 2; i < len(widths); i++ {
			if widths[i] > widths[widest] {
				widest = i
			}
		}
		if widest >= len(widths) || widths[widest] <= minColumnWidth {
			break
		}
		widths[widest]--
	}
	return widths
}

func printBorder(w io.Writer, widths []int, left, middle, right string) {
	var b strings.Builder
	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	fmt.Fprintln(w, b.String())
}

func printRow(w io.Writer, values []string, widths []int) {
	var b strings.Builder
	b.WriteString("│")
	for i, value := range values {
		value = runewidth.Truncate(value, widths[i], "…")
		pad := strings.Repeat(" ", widths[i]-runewidth.StringWidth(value))
		if i == 0 {
			b.WriteString(" " + value + pad + " │")
		} else {
			b.WriteString(" " + pad + value + " │")
		}
	}
	fmt.Fprintln(w, b.String())
}

// WriteCSV writes the raw (unformatted) table with a date column followed by the series.
func WriteCSV(w io.Writer, chart *Chart) error {
	cw := csv.NewWriter(w)
	table := chart.Data

	if err := cw.Write(append([]string{"date"}, table.ColumnNames()...)); err != nil {
		return err
	}
	for _, row := range table.Rows {
		record := []string{row.Date}
		for _, column := range table.Columns {
			record = append(record, row.Value(column).String())
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
