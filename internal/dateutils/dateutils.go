// Package dateutils parses the calendar dates users type into date operators
// and provides day-precision comparisons for the executor.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutEuropean  = "02.01.2006"
	DateLayoutUS        = "01/02/2006"
	DateLayoutFull      = "2006-01-02 15:04:05"
	DateLayoutWithMonth = "2-Jan-2006"
)

// CommonFormats is the ordered list of layouts tried by ParseDate. The first
// layout that parses wins, so ambiguous day/month inputs resolve to the
// earlier entry.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutEuropean,
	DateLayoutUS,
	DateLayoutFull,
	time.RFC3339,
	DateLayoutWithMonth,
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
	"2.1.2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
}

// Relative keywords accepted by ParseDateRelative.
const (
	KeywordToday     = "today"
	KeywordYesterday = "yesterday"
	KeywordTomorrow  = "tomorrow"
)

var whitespace = regexp.MustCompile(`\s+`)

// ParseDate attempts to parse a date string using CommonFormats.
// Returns the parsed time and the detected format.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)
	if dateStr == "" {
		return time.Time{}, "", fmt.Errorf("unable to parse date: empty value")
	}

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// ParseDateRelative parses an absolute date like ParseDate, and additionally
// understands "today", "yesterday" and "tomorrow" relative to now. The result
// is always truncated to the start of its day.
func ParseDateRelative(dateStr string, now time.Time) (time.Time, error) {
	switch strings.ToLower(CleanDateString(dateStr)) {
	case KeywordToday:
		return StartOfDay(now), nil
	case KeywordYesterday:
		return StartOfDay(now).AddDate(0, 0, -1), nil
	case KeywordTomorrow:
		return StartOfDay(now).AddDate(0, 0, 1), nil
	}

	t, _, err := ParseDate(dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return StartOfDay(t), nil
}

// FormatDate formats a time.Time value according to the specified layout
// If no layout is provided, DateLayoutISO is used
func FormatDate(date time.Time, layout string) string {
	if layout == "" {
		layout = DateLayoutISO
	}
	return date.Format(layout)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// CleanDateString trims and collapses whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// StartOfDay returns midnight of the given date in its own location.
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// CompareDates compares two dates at day precision and returns:
//
//	-1 if date1 is before date2
//	 0 if date1 is equal to date2
//	 1 if date1 is after date2
func CompareDates(date1, date2 time.Time) int {
	date1 = time.Date(date1.Year(), date1.Month(), date1.Day(), 0, 0, 0, 0, time.UTC)
	date2 = time.Date(date2.Year(), date2.Month(), date2.Day(), 0, 0, 0, 0, time.UTC)

	if date1.Before(date2) {
		return -1
	} else if date1.After(date2) {
		return 1
	}
	return 0
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return CompareDates(a, b) == 0
}
