package utils

import (
	"fmt"
	"time"
)

// WeekBucket returns the ISO-8601 week-based year and week number for t.
// The week belongs to the year of its Thursday, so dates near a calendar
// year boundary can land in the previous or next year's bucket.
func WeekBucket(t time.Time) (year, week int) {
	return t.ISOWeek()
}

// WeekKey formats a (year, week) bucket as "2025-W07" for group-by keys.
func WeekKey(year, week int) string {
	return fmt.Sprintf("%d-W%02d", year, week)
}
