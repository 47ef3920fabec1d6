package utils

import (
	"fmt"
	"time"
)

// RentalLeadDays is how many days before the function date the rental
// window opens, so outfits can be collected and fitted ahead of the event.
const RentalLeadDays = 2

// DateFormat is the wire format for calendar dates.
const DateFormat = "2006-01-02"

// ParseDate converts a yyyy-mm-dd formatted string into a date-only time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd", s)
	}
	return t, nil
}

// Truncate drops the time-of-day component, keeping the location.
func Truncate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// RentalWindow derives the rental start and end dates from a booking's
// function date and duration. The window opens RentalLeadDays before the
// function and runs for durationDays from there.
func RentalWindow(functionDate time.Time, durationDays int32) (start, end time.Time) {
	start = Truncate(functionDate).AddDate(0, 0, -RentalLeadDays)
	end = start.AddDate(0, 0, int(durationDays))
	return start, end
}

// RangesOverlap reports whether the inclusive date ranges [s1,e1] and
// [s2,e2] share at least one day: s1 <= e2 && s2 <= e1. This single test
// covers partial overlap and containment in both directions.
func RangesOverlap(s1, e1, s2, e2 time.Time) bool {
	return !s1.After(e2) && !s2.After(e1)
}
