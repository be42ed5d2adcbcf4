package domain

import "time"

// LinearMonth maps a calendar date to a single month counter (year*12 + month-1).
// Comparing these indices avoids end-of-month and leap-year pitfalls of date arithmetic.
func LinearMonth(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// MonthStart returns the first day of the month identified by a linear month index, in UTC
func MonthStart(linear int) time.Time {
	year := linear / 12
	month := time.Month(linear%12 + 1)
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}
