package domain

import (
	"fmt"
	"time"
)

// TimeRange is a half-open [Start, End) interval within a single day, held at
// minute resolution as minutes since midnight.
type TimeRange struct {
	Start int
	End   int
}

const minutesPerDay = 24 * 60

// ParseClock parses a time of day in "HH:MM" form. Trailing seconds
// ("HH:MM:SS") are accepted and truncated.
func ParseClock(s string) (int, error) {
	if len(s) > 5 {
		s = s[:5]
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// NewTimeRange parses start/end clock strings and validates ordering.
func NewTimeRange(start, end string) (TimeRange, error) {
	s, err := ParseClock(start)
	if err != nil {
		return TimeRange{}, fmt.Errorf("invalid start time %q: %w", start, err)
	}
	e, err := ParseClock(end)
	if err != nil {
		return TimeRange{}, fmt.Errorf("invalid end time %q: %w", end, err)
	}
	if e <= s {
		return TimeRange{}, ErrInvalidRange
	}
	return TimeRange{Start: s, End: e}, nil
}

func (t TimeRange) Duration() time.Duration {
	return time.Duration(t.End-t.Start) * time.Minute
}

func (t TimeRange) Minutes() int {
	return t.End - t.Start
}

// Overlaps uses the half-open test: two ranges collide only when each starts
// strictly before the other ends. Back-to-back ranges do not overlap.
func (t TimeRange) Overlaps(other TimeRange) bool {
	return t.Start < other.End && t.End > other.Start
}

func formatClock(m int) string {
	m %= minutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func (t TimeRange) StartClock() string { return formatClock(t.Start) }
func (t TimeRange) EndClock() string   { return formatClock(t.End) }

func (t TimeRange) String() string {
	return t.StartClock() + "-" + t.EndClock()
}
