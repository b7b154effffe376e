package model

import "time"

// DayFormat is the canonical string form of a calendar day.
const DayFormat = "2006-01-02"

// DayOf truncates t to its UTC calendar day (midnight UTC).
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NextDay returns the UTC calendar day after d.
func NextDay(d time.Time) time.Time {
	return DayOf(d).AddDate(0, 0, 1)
}
