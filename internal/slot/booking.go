package slot

import "time"

// Booking is the half-open interval [Start, End) a call occupies on Day.
// End may exceed Day (24h) for calls starting in the last half hour.
type Booking struct {
	Day   int
	Start Clock
	End   Clock
}

// BookingAt returns the Step-long booking that starts at t.
func BookingAt(t time.Time) Booking {
	start := ClockOf(t)
	return Booking{Day: Weekday(t), Start: start, End: start + Step}
}

// Covers reports whether b lies entirely within w.
func (w Window) Covers(b Booking) bool {
	return w.Day == b.Day && w.Start <= b.Start && b.End <= w.End
}

// CarveOut removes b from w. It returns the windows that replace w (zero,
// one or two) and false when b is not covered by w, in which case w must be
// left untouched.
func CarveOut(w Window, b Booking) ([]Window, bool) {
	if !w.Covers(b) {
		return nil, false
	}

	var out []Window
	if w.Start < b.Start {
		out = append(out, Window{Day: w.Day, Start: w.Start, End: b.Start})
	}
	if b.End < w.End {
		out = append(out, Window{Day: w.Day, Start: b.End, End: w.End})
	}
	return out, true
}

// Restore returns the window a cancelled call at t gives back: exactly its
// own Step-long interval, never merged with neighbours. It reports false
// when the interval would run past midnight.
func Restore(t time.Time) (Window, bool) {
	b := BookingAt(t)
	w := Window{Day: b.Day, Start: b.Start, End: b.End}
	return w, w.Valid()
}
