package slot

import (
	"iter"
	"time"
)

// Window is a recurring weekly interval [Start, End] on Day (0 = Monday).
type Window struct {
	Day   int
	Start Clock
	End   Clock
}

// Valid reports whether the window is a same-day interval with Start < End.
func (w Window) Valid() bool {
	return ValidDay(w.Day) && w.Start >= 0 && w.Start < w.End && w.End < Day
}

// Contains reports whether instant t falls on the window's weekday and its
// time of day is within [Start, End]. Both bounds are inclusive, so a call
// requested exactly at closing time is accepted.
func (w Window) Contains(t time.Time) bool {
	if Weekday(t) != w.Day {
		return false
	}
	c := ClockOf(t)
	return w.Start <= c && c <= w.End
}

// Touches reports whether candidate overlaps or is adjacent to w on the same day.
func (w Window) Touches(candidate Window) bool {
	return w.Day == candidate.Day && candidate.Start <= w.End && w.Start <= candidate.End
}

// Extend returns the union of w and a touching candidate.
func (w Window) Extend(candidate Window) Window {
	out := w
	if candidate.Start < out.Start {
		out.Start = candidate.Start
	}
	if candidate.End > out.End {
		out.End = candidate.End
	}
	return out
}

// Slots yields the callable instants of w: every Step-aligned clock from
// Start rounded up to End rounded down, inclusive. The sequence is finite
// and can be ranged over any number of times.
func (w Window) Slots() iter.Seq[Clock] {
	first := ceilStep(w.Start)
	last := floorStep(w.End)
	return func(yield func(Clock) bool) {
		for c := first; c <= last; c += Step {
			if !yield(c) {
				return
			}
		}
	}
}

func ceilStep(c Clock) Clock {
	if r := c % Step; r != 0 {
		return c - r + Step
	}
	return c
}

func floorStep(c Clock) Clock {
	return c - c%Step
}
