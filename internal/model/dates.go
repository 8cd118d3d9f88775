package model

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for all dates. Lexicographic
// comparison of dates in this layout equals chronological comparison.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO-8601 calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// FormatDate formats a time as an ISO-8601 calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the current local date.
func Today() string {
	return FormatDate(time.Now())
}

// NextDueDate advances a date by one frequency step.
//
// Rollover contract: day-based steps (daily, weekly) use plain calendar
// addition. Month-based steps (monthly, quarterly, yearly) clamp the
// day-of-month to the last day of the target month, so Jan 31 + monthly
// lands on Feb 28 (or Feb 29 in a leap year), never in March. This policy
// is fixed; callers may rely on it.
func NextDueDate(date string, f Frequency) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	switch f {
	case FreqDaily:
		return FormatDate(t.AddDate(0, 0, 1)), nil
	case FreqWeekly:
		return FormatDate(t.AddDate(0, 0, 7)), nil
	case FreqMonthly:
		return FormatDate(addMonthsClamped(t, 1)), nil
	case FreqQuarterly:
		return FormatDate(addMonthsClamped(t, 3)), nil
	case FreqYearly:
		return FormatDate(addMonthsClamped(t, 12)), nil
	}
	return "", fmt.Errorf("frequency %q has no next occurrence", f)
}

// addMonthsClamped adds calendar months, clamping the day-of-month to the
// last valid day of the target month instead of letting it spill over.
func addMonthsClamped(t time.Time, months int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	day := t.Day()
	if last := daysInMonth(firstOfTarget.Year(), firstOfTarget.Month()); day > last {
		day = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
