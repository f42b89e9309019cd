package entities

import (
	"studiobooking/internal/db"
)

// BookingRequest is what the form layer supplies for a single booking.
type BookingRequest struct {
	StartDate string `json:"start_date"`
	StartTime string `json:"start_time"`
	EndDate   string `json:"end_date"`
	EndTime   string `json:"end_time"`
}

type BookingResponse struct {
	ID              int    `json:"id"`
	StartDate       string `json:"start_date"`
	StartTime       string `json:"start_time"`
	EndDate         string `json:"end_date"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Summary         string `json:"summary"`
	CreatedAt       string `json:"created_at"`
}

const dateLayout = "2006-01-02"

func NewBookingResponse(b db.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		StartDate:       b.StartDate.Format(dateLayout),
		StartTime:       b.StartTime.String(),
		EndDate:         b.EndDate.Format(dateLayout),
		EndTime:         b.EndTime.String(),
		DurationMinutes: b.DurationMinutes,
		Summary:         BookingSummary(b),
		CreatedAt:       b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func NewBookingResponses(bookings []db.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, NewBookingResponse(b))
	}
	return out
}
