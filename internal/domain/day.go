package domain

import "time"

// StartOfDay returns 00:00:00 of the calendar day of t, in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59 of the calendar day of t
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

// LastMinuteOfDay returns 23:59:00 of the calendar day of t
func LastMinuteOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 0, 0, t.Location())
}

// DayWindow returns the interval covering the whole calendar day of t
func DayWindow(t time.Time) Interval {
	return Interval{Start: StartOfDay(t), End: EndOfDay(t)}
}

// SameDay reports whether a and b fall on the same calendar date
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// CompareDays compares calendar dates only: -1 if a is an earlier day, 0 if same day, 1 otherwise
func CompareDays(a, b time.Time) int {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	switch {
	case y1 != y2:
		return sign(y1 - y2)
	case m1 != m2:
		return sign(int(m1) - int(m2))
	default:
		return sign(d1 - d2)
	}
}

// DaysBetween returns the start of every calendar day from start's date to end's date inclusive.
// Days are expressed in start's location. Returns nil if end's date is before start's.
func DaysBetween(start, end time.Time) []time.Time {
	first := StartOfDay(start)
	last := StartOfDay(end.In(start.Location()))
	if last.Before(first) {
		return nil
	}

	days := make([]time.Time, 0)
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}

// DaysOfMonth returns the start of every day of the month containing ref
func DaysOfMonth(ref time.Time) []time.Time {
	y, m, _ := ref.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, ref.Location())
	last := first.AddDate(0, 1, -1)
	return DaysBetween(first, last)
}

// AtClockOf returns the calendar day of day combined with the wall clock of clock
func AtClockOf(day, clock time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), clock.Second(), clock.Nanosecond(), day.Location())
}

// IsMidnight returns true if t is exactly 00:00:00 on its day
func IsMidnight(t time.Time) bool {
	return t.Equal(StartOfDay(t))
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
