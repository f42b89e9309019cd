package entities

import (
	"fmt"
	"strings"

	"studiobooking/internal/db"
	"studiobooking/internal/recurrence"
)

// FormatDurationMinutes renders a minute count as a day/hour/minute breakdown,
// e.g. "1d 3h 30m". Zero components are omitted; zero total is "0m".
func FormatDurationMinutes(total int) string {
	if total <= 0 {
		return "0m"
	}
	days := total / (24 * 60)
	remaining := total % (24 * 60)
	hours := remaining / 60
	minutes := remaining % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	return strings.Join(parts, " ")
}

// BookingSummary is the human-readable line shown in listings and
// notification mails.
func BookingSummary(b db.Booking) string {
	return fmt.Sprintf("%s %s - %s %s (%s)",
		b.StartDate.Format("2006-01-02"), shortTime(b.StartTime),
		b.EndDate.Format("2006-01-02"), shortTime(b.EndTime),
		FormatDurationMinutes(b.DurationMinutes))
}

func GroupSummary(g db.RecurringGroup) string {
	return fmt.Sprintf("%s %s-%s, %s to %s (%s per session)",
		strings.Join(recurrence.FormatWeekdays(g.Weekdays), ", "),
		shortTime(g.DailyStart), shortTime(g.DailyEnd),
		g.RangeStart.Format("2006-01-02"), g.RangeEnd.Format("2006-01-02"),
		FormatDurationMinutes(g.DurationMinutes))
}

// ScheduleName builds the default display name for a schedule, matching the
// shape "Mon, Wed 23:00-01:00".
func ScheduleName(weekdays []string, start, end recurrence.TimeOfDay) string {
	return fmt.Sprintf("%s %s-%s", strings.Join(weekdays, ", "), shortTime(start), shortTime(end))
}

func shortTime(t recurrence.TimeOfDay) string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}
