package availability

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidInterval is returned when an interval does not end strictly after it starts.
var ErrInvalidInterval = errors.New("availability interval must end after it starts")

// TimeOfDay is a wall-clock offset from midnight.
type TimeOfDay time.Duration

// Clock builds a TimeOfDay from hours, minutes and seconds.
func Clock(hour, min, sec int) TimeOfDay {
	return TimeOfDay(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute + time.Duration(sec)*time.Second)
}

// ParseTimeOfDay parses "15:04" or "15:04:05".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	layout := "15:04"
	if strings.Count(s, ":") == 2 {
		layout = "15:04:05"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return Clock(t.Hour(), t.Minute(), t.Second()), nil
}

func (t TimeOfDay) String() string {
	d := time.Duration(t)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	if s == 0 {
		return fmt.Sprintf("%02d:%02d", h, m)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Interval is a weekly free slot: a day of week plus a [Start, End) wall-clock window.
type Interval struct {
	Day   time.Weekday `json:"day" msgpack:"day"`
	Start TimeOfDay    `json:"start" msgpack:"start"`
	End   TimeOfDay    `json:"end" msgpack:"end"`
}

// Instant is the day-of-week and time-of-day an activity starts at.
type Instant struct {
	Day  time.Weekday
	Time TimeOfDay
}

// InstantOf projects t onto its weekday and wall clock in t's own location.
func InstantOf(t time.Time) Instant {
	return Instant{
		Day:  t.Weekday(),
		Time: Clock(t.Hour(), t.Minute(), t.Second()),
	}
}
