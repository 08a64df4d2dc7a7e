package render

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Formatter renders a numeric cell for tooltips and axis labels.
type Formatter func(value float64) string

var largeNumberUnits = []struct {
	threshold float64
	suffix    string
}{
	{1e12, "T"},
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "K"},
}

// FormatLargeNumber abbreviates large values: 950 -> "950", 1234 -> "1.2K", 3000000 -> "3M".
func FormatLargeNumber(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "0"
	}

	abs := math.Abs(value)
	for _, unit := range largeNumberUnits {
		if abs >= unit.threshold {
			return trimZeros(strconv.FormatFloat(value/unit.threshold, 'f', 1, 64)) + unit.suffix
		}
	}
	return trimZeros(strconv.FormatFloat(value, 'f', 2, 64))
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// FormatDayLabel renders a yyyy-MM-dd bucket as a short "Jan 2" label.
// Unparseable input is returned unchanged.
func FormatDayLabel(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2")
}
