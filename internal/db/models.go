package db

import (
	"time"

	"studiobooking/internal/recurrence"
)

// Booking is one concrete reserved recording interval.
type Booking struct {
	ID              int
	StartDate       time.Time
	StartTime       recurrence.TimeOfDay
	EndDate         time.Time
	EndTime         recurrence.TimeOfDay
	DurationMinutes int
	CreatedAt       time.Time
}

// RecurringGroup is a weekly template plus the bookings it produced at
// creation time. BookingIDs is the authoritative membership record, kept in
// ascending date order.
type RecurringGroup struct {
	ID              int
	Weekdays        []time.Weekday
	RangeStart      time.Time
	RangeEnd        time.Time
	DailyStart      recurrence.TimeOfDay
	DailyEnd        recurrence.TimeOfDay
	DurationMinutes int
	BookingIDs      []int
	CreatedAt       time.Time
}

// Schedule is a weekly template materialized lazily by the daily job, at most
// one booking per qualifying day. BookingIDs only ever grows; deleting the
// schedule leaves its bookings behind as history.
type Schedule struct {
	ID              int
	Name            string
	Weekdays        []time.Weekday
	RangeStart      time.Time
	RangeEnd        time.Time
	DailyStart      recurrence.TimeOfDay
	DailyEnd        recurrence.TimeOfDay
	DurationMinutes int
	BookingIDs      []int
	IsActive        bool
	CreatedAt       time.Time
}
