package handlers

import (
	"fmt"
	"time"
)

// Day and month filters are computed as half-open time ranges in Go so the
// same query works on both the sqlite and postgres drivers.

func dayRange(day string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02", day, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", day)
	}
	return start, start.AddDate(0, 0, 1), nil
}

func monthRange(month string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01", month, time.Local)
	if err != nil {
		// Clients may send a full date; use its month.
		day, dayErr := time.ParseInLocation("2006-01-02", month, time.Local)
		if dayErr != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q: expected YYYY-MM", month)
		}
		start = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.Local)
	}
	return start, start.AddDate(0, 1, 0), nil
}

func today() string {
	return time.Now().Format("2006-01-02")
}
