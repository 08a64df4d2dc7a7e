package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatLargeNumber(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "0"},
		{7, "7"},
		{12.3456, "12.35"},
		{999, "999"},
		{1000, "1K"},
		{1234, "1.2K"},
		{-1560, "-1.6K"},
		{3000000, "3M"},
		{4.56e9, "4.6B"},
		{7.1e12, "7.1T"},
		{math.NaN(), "0"},
	}

	for _, tc := range tests {
		require.Equal(t, tc.want, FormatLargeNumber(tc.input), "input %v", tc.input)
	}
}

func TestFormatDayLabel(t *testing.T) {
	require.Equal(t, "Jan 3", FormatDayLabel("2024-01-03"))
	require.Equal(t, "Dec 31", FormatDayLabel("2023-12-31"))
	require.Equal(t, "soon", FormatDayLabel("soon"))
}

func TestPaletteAndSlugify(t *testing.T) {
	require.Equal(t, "blue", DefaultPalette(0))
	require.Equal(t, "yellow", DefaultPalette(5))
	require.Equal(t, "blue", DefaultPalette(6))

	p := NewPalette("red", "teal")
	require.Equal(t, "teal", p(3))

	require.Equal(t, "us-sales", Slugify("US Sales"))
	require.Equal(t, "undefined-revenue", Slugify("Undefined Revenue!"))
	require.Equal(t, "a_b-c", Slugify("a_b c!"))
}
