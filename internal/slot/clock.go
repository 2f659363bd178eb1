// Package slot implements the weekly availability arithmetic: containment,
// touch/extend merging, 30-minute slot enumeration and booking carve-out.
// Everything here is pure; persistence lives in the repository layer.
package slot

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock is a wall-clock time of day in seconds since midnight.
type Clock int

const (
	Minute Clock = 60
	Hour   Clock = 60 * Minute
	Day    Clock = 24 * Hour

	// Step is both the enumeration grid and the length of a booked call.
	Step Clock = 30 * Minute
)

// ParseClock accepts "HH:MM" or "HH:MM:SS" (as returned by a SQL TIME column).
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid clock %q", s)
	}

	limits := []int{23, 59, 59}
	values := make([]int, 3)
	for i, p := range parts {
		// tolerate fractional seconds such as "08:00:00.000000"
		if i == 2 {
			p, _, _ = strings.Cut(p, ".")
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > limits[i] || len(p) > 2 {
			return 0, fmt.Errorf("invalid clock %q", s)
		}
		values[i] = n
	}

	return Clock(values[0])*Hour + Clock(values[1])*Minute + Clock(values[2]), nil
}

// MustClock is ParseClock for literals; it panics on malformed input.
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ClockOf returns the time-of-day of t in t's own location.
func ClockOf(t time.Time) Clock {
	return Clock(t.Hour())*Hour + Clock(t.Minute())*Minute + Clock(t.Second())
}

// String formats as HH:MM:SS. Values past midnight are not normalized.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", int(c/Hour), int(c%Hour/Minute), int(c%Minute))
}

// On places the clock on t's calendar date.
func (c Clock) On(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).Add(time.Duration(c) * time.Second)
}

// Weekday maps t to the 0 = Monday … 6 = Sunday convention used for windows.
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ValidDay reports whether day is within [0,6].
func ValidDay(day int) bool {
	return day >= 0 && day <= 6
}
