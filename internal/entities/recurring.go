package entities

import (
	"studiobooking/internal/db"
	"studiobooking/internal/recurrence"
)

// RecurringGroupRequest is the form layer's recurrence request: a weekday set,
// an inclusive date range and a daily time window.
type RecurringGroupRequest struct {
	Weekdays   []string `json:"weekdays"`
	RangeStart string   `json:"range_start"`
	RangeEnd   string   `json:"range_end"`
	DailyStart string   `json:"daily_start"`
	DailyEnd   string   `json:"daily_end"`
}

type RecurringGroupResponse struct {
	ID              int      `json:"id"`
	Weekdays        []string `json:"weekdays"`
	RangeStart      string   `json:"range_start"`
	RangeEnd        string   `json:"range_end"`
	DailyStart      string   `json:"daily_start"`
	DailyEnd        string   `json:"daily_end"`
	DurationMinutes int      `json:"duration_minutes"`
	BookingCount    int      `json:"booking_count"`
	Summary         string   `json:"summary"`
	CreatedAt       string   `json:"created_at"`
}

func NewRecurringGroupResponse(g db.RecurringGroup) RecurringGroupResponse {
	return RecurringGroupResponse{
		ID:              g.ID,
		Weekdays:        recurrence.FormatWeekdays(g.Weekdays),
		RangeStart:      g.RangeStart.Format(dateLayout),
		RangeEnd:        g.RangeEnd.Format(dateLayout),
		DailyStart:      g.DailyStart.String(),
		DailyEnd:        g.DailyEnd.String(),
		DurationMinutes: g.DurationMinutes,
		BookingCount:    len(g.BookingIDs),
		Summary:         GroupSummary(g),
		CreatedAt:       g.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// UpdateTimesRequest narrows a group edit to the daily time window; recurrence
// shape is immutable after creation.
type UpdateTimesRequest struct {
	DailyStart string `json:"daily_start"`
	DailyEnd   string `json:"daily_end"`
}
