package timeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedTime is returned for time strings that are not valid "HH:MM".
var ErrMalformedTime = errors.New("malformed time")

// MinutesOfDay parses an "HH:MM" string into minutes since midnight.
func MinutesOfDay(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q has no colon", ErrMalformedTime, s)
	}

	hours, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("%w: bad hours in %q", ErrMalformedTime, s)
	}

	minutes, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("%w: bad minutes in %q", ErrMalformedTime, s)
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q out of range", ErrMalformedTime, s)
	}

	return hours*60 + minutes, nil
}

// MinutesOfDayOrZero parses an "HH:MM" string, falling back to 0 on
// malformed input. Only for read-only rendering paths that must not fail;
// write paths use MinutesOfDay and reject bad input.
func MinutesOfDayOrZero(s string) int {
	minutes, err := MinutesOfDay(s)
	if err != nil {
		return 0
	}
	return minutes
}

// FormatMinutes formats minutes since midnight as "HH:MM".
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NormalizeDate truncates a timestamp to its UTC calendar date.
// All date arithmetic in the engine works on these normalized dates so
// weekday and range computations cannot drift across midnight boundaries.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekdayIndex returns the weekday of the normalized calendar date,
// 0 = Sunday .. 6 = Saturday.
func WeekdayIndex(t time.Time) int {
	return int(NormalizeDate(t).Weekday())
}

// SameDay reports whether two timestamps fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return NormalizeDate(a).Equal(NormalizeDate(b))
}

// DaysBetween returns every calendar day of [start, end], inclusive and
// normalized. An end before start yields an empty range.
func DaysBetween(start, end time.Time) []time.Time {
	first := NormalizeDate(start)
	last := NormalizeDate(end)

	var days []time.Time
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}
