package domain

import (
	"fmt"
	"time"
)

// Interval is a closed time range [Start, End]
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds an interval and rejects start after end
func NewInterval(start, end time.Time) (Interval, error) {
	if start.After(end) {
		return Interval{}, fmt.Errorf("%w: start %s is after end %s",
			ErrInvalidInterval, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps reports whether two closed intervals intersect.
// Touching endpoints count as an overlap: [10:00,11:00] and [11:00,12:00] conflict.
func (i Interval) Overlaps(other Interval) bool {
	return !i.Start.After(other.End) && !i.End.Before(other.Start)
}

// Contains reports whether t lies inside the interval
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && !t.After(i.End)
}

// IsValid returns true if start is not after end
func (i Interval) IsValid() bool {
	return !i.Start.After(i.End)
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s]", i.Start.Format(time.RFC3339), i.End.Format(time.RFC3339))
}
