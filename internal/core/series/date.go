package series

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

// Layouts tried by ParseDate, most specific first. Layouts without an offset are
// interpreted in the caller's location.
var isoLayouts = buildLayouts()

func buildLayouts() []string {
	clocks := []string{"15:04:05.999999999", "15:04", "15"}
	offsets := []string{"Z07:00", "Z0700", "Z07"}

	var layouts []string
	for _, sep := range []string{"T", " "} {
		for _, clock := range clocks {
			for _, offset := range offsets {
				layouts = append(layouts, dayLayout+sep+clock+offset)
			}
			layouts = append(layouts, dayLayout+sep+clock)
		}
	}
	return append(layouts,
		dayLayout,
		"20060102T150405Z0700",
		"20060102T150405",
		"20060102",
		"2006-01",
		"2006",
	)
}

var (
	weekDatePattern    = regexp.MustCompile(`^(\d{4})-?W(\d{2})(?:-?(\d))?$`)
	ordinalDatePattern = regexp.MustCompile(`^(\d{4})-?(\d{3})$`)
)

// calendarDatePart rewrites a leading ISO week date (2024-W01-2) or ordinal date
// (2024-002) as yyyy-MM-dd, keeping any time suffix. ok is false when the date part is
// one of those forms but out of range.
func calendarDatePart(s string) (string, bool) {
	datePart, rest := s, ""
	if i := strings.IndexAny(s, "T "); i >= 0 {
		datePart, rest = s[:i], s[i:]
	}

	if m := weekDatePattern.FindStringSubmatch(datePart); m != nil {
		year, _ := strconv.Atoi(m[1])
		week, _ := strconv.Atoi(m[2])
		weekday := 1
		if m[3] != "" {
			weekday, _ = strconv.Atoi(m[3])
		}
		if week < 1 || week > 53 || weekday < 1 || weekday > 7 {
			return "", false
		}
		// Week 1 is the week holding January 4th; weeks start on Monday.
		jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
		monday := jan4.AddDate(0, 0, -((int(jan4.Weekday()) + 6) % 7))
		return monday.AddDate(0, 0, (week-1)*7+weekday-1).Format(dayLayout) + rest, true
	}

	if m := ordinalDatePattern.FindStringSubmatch(datePart); m != nil {
		year, _ := strconv.Atoi(m[1])
		ordinal, _ := strconv.Atoi(m[2])
		first := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		daysInYear := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
		if ordinal < 1 || ordinal > daysInYear {
			return "", false
		}
		return first.AddDate(0, 0, ordinal-1).Format(dayLayout) + rest, true
	}

	return s, true
}

// ParseDate parses an ISO-8601 date or timestamp and returns it in loc.
// time.Time values are accepted as-is. ok is false for anything unparseable.
func ParseDate(v interface{}, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}

	switch val := v.(type) {
	case time.Time:
		if val.IsZero() {
			return time.Time{}, false
		}
		return val.In(loc), true
	case *time.Time:
		if val == nil || val.IsZero() {
			return time.Time{}, false
		}
		return val.In(loc), true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return time.Time{}, false
		}
		s, ok := calendarDatePart(s)
		if !ok {
			return time.Time{}, false
		}
		for _, layout := range isoLayouts {
			if t, err := time.ParseInLocation(layout, s, loc); err == nil {
				return t.In(loc), true
			}
		}
	}
	return time.Time{}, false
}

// DayKey formats the calendar day of t in t's own location.
func DayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// truncateToDay returns local midnight of t's calendar day.
func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// recordDay resolves the bucket key of a record, or ok=false when its date is malformed.
func recordDay(rec Record, loc *time.Location) (string, bool) {
	t, ok := ParseDate(rec[DateField], loc)
	if !ok {
		return "", false
	}
	return DayKey(t), true
}
