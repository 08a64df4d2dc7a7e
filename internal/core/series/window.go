package series

import "time"

// Window returns the day buckets from rangeDays before now through now, inclusive,
// as midnights in now's location. It always holds rangeDays+1 entries for
// rangeDays >= 0 and is empty otherwise.
func Window(now time.Time, rangeDays int) []time.Time {
	if rangeDays < 0 {
		return nil
	}

	today := truncateToDay(now)
	days := make([]time.Time, 0, rangeDays+1)

	// AddDate keeps calendar days intact across DST transitions; adding 24h would not.
	for currentDay := today.AddDate(0, 0, -rangeDays); !currentDay.After(today); currentDay = currentDay.AddDate(0, 0, 1) {
		days = append(days, currentDay)
	}
	return days
}

// WindowBounds returns the half-open instant range [first midnight, midnight after today)
// covered by Window(now, rangeDays).
func WindowBounds(now time.Time, rangeDays int) (time.Time, time.Time) {
	today := truncateToDay(now)
	return today.AddDate(0, 0, -rangeDays), today.AddDate(0, 0, 1)
}
