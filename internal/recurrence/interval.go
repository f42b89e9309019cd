package recurrence

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidInterval = errors.New("end must be after start")

// TimeOfDay is a naive wall-clock time with no date or zone attached.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay accepts "15:04:05" or "15:04".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// Seconds returns the offset from midnight.
func (t TimeOfDay) Seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// Before reports whether t is earlier in the day than u.
func (t TimeOfDay) Before(u TimeOfDay) bool {
	return t.Seconds() < u.Seconds()
}

// At combines the time of day with a calendar date.
func (t TimeOfDay) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, t.Second, 0, time.UTC)
}

// Duration returns the whole minutes between two explicit date-times, truncated
// from the second-level difference. The explicit-date form never infers a
// missing day: a non-positive interval is ErrInvalidInterval.
func Duration(start, end time.Time) (int, error) {
	seconds := int(end.Sub(start).Seconds())
	if seconds <= 0 {
		return 0, fmt.Errorf("%w: %s is not after %s", ErrInvalidInterval,
			end.Format("2006-01-02 15:04:05"), start.Format("2006-01-02 15:04:05"))
	}
	return seconds / 60, nil
}

// DailyDuration returns the whole minutes between two times of day for a
// recurring template, where no concrete date exists yet. With allowRollover an
// end earlier than the start is taken to fall on the following day, which is
// what lets a template span midnight (23:00-01:00 is 120 minutes).
func DailyDuration(start, end TimeOfDay, allowRollover bool) (int, error) {
	seconds := end.Seconds() - start.Seconds()
	if seconds < 0 && allowRollover {
		seconds += 24 * 3600
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("%w: %s is not after %s", ErrInvalidInterval, end, start)
	}
	return seconds / 60, nil
}
