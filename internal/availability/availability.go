// Package availability decides whether a member's weekly free time covers an activity start.
package availability

import (
	"fmt"
	"strings"
	"time"
)

// NewInterval validates and builds an Interval.
func NewInterval(day time.Weekday, start, end TimeOfDay) (Interval, error) {
	if end <= start {
		return Interval{}, fmt.Errorf("%w: %s %s-%s", ErrInvalidInterval, day, start, end)
	}
	return Interval{Day: day, Start: start, End: end}, nil
}

// ParseInterval builds an Interval from a weekday name ("WEDNESDAY", "wednesday") and two clock strings.
func ParseInterval(day, start, end string) (Interval, error) {
	weekday, err := ParseWeekday(day)
	if err != nil {
		return Interval{}, err
	}
	from, err := ParseTimeOfDay(start)
	if err != nil {
		return Interval{}, err
	}
	to, err := ParseTimeOfDay(end)
	if err != nil {
		return Interval{}, err
	}
	return NewInterval(weekday, from, to)
}

// ParseWeekday parses an English weekday name, case-insensitively.
func ParseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), s) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid day of week %q", s)
}

// Contains reports whether the instant falls inside the interval. The start is inclusive, the end exclusive.
func (i Interval) Contains(at Instant) bool {
	return i.Day == at.Day && i.Start <= at.Time && at.Time < i.End
}

// Covers reports whether any interval contains the instant.
func Covers(intervals []Interval, at Instant) bool {
	for _, i := range intervals {
		if i.Contains(at) {
			return true
		}
	}
	return false
}

// CoversStart is Covers applied to the wall clock of start.
func CoversStart(intervals []Interval, start time.Time) bool {
	return Covers(intervals, InstantOf(start))
}
