package recurrence

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidRange   = errors.New("range start must not be after range end")
	ErrInvalidWeekday = errors.New("invalid weekday selection")
)

var weekdayNames = map[string]time.Weekday{
	"Mon": time.Monday,
	"Tue": time.Tuesday,
	"Wed": time.Wednesday,
	"Thu": time.Thursday,
	"Fri": time.Friday,
	"Sat": time.Saturday,
	"Sun": time.Sunday,
}

var weekdaySymbols = map[time.Weekday]string{
	time.Monday:    "Mon",
	time.Tuesday:   "Tue",
	time.Wednesday: "Wed",
	time.Thursday:  "Thu",
	time.Friday:    "Fri",
	time.Saturday:  "Sat",
	time.Sunday:    "Sun",
}

// ParseWeekday converts a three-letter weekday symbol ("Mon".."Sun") into a time.Weekday.
func ParseWeekday(s string) (time.Weekday, error) {
	day, ok := weekdayNames[s]
	if !ok {
		return 0, fmt.Errorf("%w: unknown symbol %q", ErrInvalidWeekday, s)
	}
	return day, nil
}

// FormatWeekday returns the three-letter symbol used on the wire and in storage.
func FormatWeekday(d time.Weekday) string {
	return weekdaySymbols[d]
}

// ParseWeekdays converts a list of weekday symbols, rejecting unknown symbols.
func ParseWeekdays(symbols []string) ([]time.Weekday, error) {
	days := make([]time.Weekday, 0, len(symbols))
	for _, s := range symbols {
		day, err := ParseWeekday(s)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, nil
}

// FormatWeekdays converts weekdays back into their wire symbols.
func FormatWeekdays(days []time.Weekday) []string {
	symbols := make([]string, 0, len(days))
	for _, d := range days {
		symbols = append(symbols, FormatWeekday(d))
	}
	return symbols
}

// DateOnly truncates a timestamp to midnight, discarding the time of day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Expand returns every calendar date in [rangeStart, rangeEnd] whose weekday is
// in the selected set, in ascending order. It is pure: repeated calls with the
// same input yield the same output. An empty result is not an error; callers
// decide whether an empty expansion blocks creation.
func Expand(weekdays []time.Weekday, rangeStart, rangeEnd time.Time) ([]time.Time, error) {
	if len(weekdays) == 0 {
		return nil, fmt.Errorf("%w: at least one weekday required", ErrInvalidWeekday)
	}
	selected := make(map[time.Weekday]bool, len(weekdays))
	for _, d := range weekdays {
		if d < time.Sunday || d > time.Saturday {
			return nil, fmt.Errorf("%w: %d", ErrInvalidWeekday, int(d))
		}
		selected[d] = true
	}

	start := DateOnly(rangeStart)
	end := DateOnly(rangeEnd)
	if start.After(end) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if selected[d.Weekday()] {
			dates = append(dates, d)
		}
	}
	return dates, nil
}
