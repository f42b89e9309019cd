package entities

import (
	"studiobooking/internal/db"
	"studiobooking/internal/recurrence"
)

// ScheduleRequest creates or updates a daily-materialization schedule. Name is
// optional; a blank name is auto-generated from the weekdays and time window.
type ScheduleRequest struct {
	Name       string   `json:"name"`
	Weekdays   []string `json:"weekdays"`
	RangeStart string   `json:"range_start"`
	RangeEnd   string   `json:"range_end"`
	DailyStart string   `json:"daily_start"`
	DailyEnd   string   `json:"daily_end"`
}

type ScheduleResponse struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Weekdays        []string `json:"weekdays"`
	RangeStart      string   `json:"range_start"`
	RangeEnd        string   `json:"range_end"`
	DailyStart      string   `json:"daily_start"`
	DailyEnd        string   `json:"daily_end"`
	DurationMinutes int      `json:"duration_minutes"`
	BookingIDs      []int    `json:"booking_ids"`
	IsActive        bool     `json:"is_active"`
	CreatedAt       string   `json:"created_at"`
}

func NewScheduleResponse(s db.Schedule) ScheduleResponse {
	ids := s.BookingIDs
	if ids == nil {
		ids = []int{}
	}
	return ScheduleResponse{
		ID:              s.ID,
		Name:            s.Name,
		Weekdays:        recurrence.FormatWeekdays(s.Weekdays),
		RangeStart:      s.RangeStart.Format(dateLayout),
		RangeEnd:        s.RangeEnd.Format(dateLayout),
		DailyStart:      s.DailyStart.String(),
		DailyEnd:        s.DailyEnd.String(),
		DurationMinutes: s.DurationMinutes,
		BookingIDs:      ids,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func NewScheduleResponses(schedules []db.Schedule) []ScheduleResponse {
	out := make([]ScheduleResponse, 0, len(schedules))
	for _, s := range schedules {
		out = append(out, NewScheduleResponse(s))
	}
	return out
}

type SetActiveRequest struct {
	IsActive bool `json:"is_active"`
}
