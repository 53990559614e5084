package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the number of minutes in one calendar day.
const MinutesPerDay = 24 * 60

// ParseHM parses a clock string in "H:MM" or "HH:MM" format, with an
// optional leading '-', into minutes. Returns nil for malformed input.
func ParseHM(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	sign := 1
	if strings.HasPrefix(s, "-") {
		sign = -1
		s = s[1:]
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return nil
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil
	}
	mins, err := strconv.Atoi(parts[1])
	if err != nil || mins < 0 {
		return nil
	}

	total := sign * (hours*60 + mins)
	return &total
}

// FormatHM renders minutes as "HH:MM" with a '-' prefix for negative
// values. A nil input renders as the "--:--" placeholder.
func FormatHM(minutes *int) string {
	if minutes == nil {
		return "--:--"
	}

	sign := ""
	m := *minutes
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s%02d:%02d", sign, m/60, m%60)
}

// FormatHMSigned renders minutes like FormatHM but forces a '+' prefix
// for positive values. Used in overtime/deficit mail bodies.
func FormatHMSigned(minutes int) string {
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	} else if minutes > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}

// NormalizeEnd shifts an end time that is numerically before the start
// into the next day. Both inputs are minutes since midnight.
func NormalizeEnd(start, end int) int {
	if end < start {
		return end + MinutesPerDay
	}
	return end
}

// ISOWeekday returns the ISO 8601 weekday, Monday = 1 through Sunday = 7.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// IsWeekend reports whether the ISO weekday is Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	return ISOWeekday(t) >= 6
}

// WorkedMinutes computes the net worked duration of a span. Returns nil
// when either boundary is absent. The result is never negative, even
// when the break exceeds the gross span.
func WorkedMinutes(start, end *int, breakMinutes int) *int {
	if start == nil || end == nil {
		return nil
	}

	dur := NormalizeEnd(*start, *end) - *start - breakMinutes
	if dur < 0 {
		dur = 0
	}
	return &dur
}
