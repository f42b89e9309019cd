package service

import (
	"fmt"
	"log"
	"time"

	"studiobooking/internal/db"
	"studiobooking/internal/recurrence"
	"studiobooking/internal/repository"
)

// MaterializerService is the unattended daily job: for every active schedule
// whose range covers today and whose weekday set matches today's weekday, it
// creates exactly one booking and appends its id to the schedule's member
// list. Schedules are independent units of work; one failing does not stop
// the rest.
//
// There is no guard against a second run on the same calendar day creating a
// second booking for the same schedule; the trigger is expected to fire once
// per day.
type MaterializerService struct {
	Schedules repository.ScheduleRepository
	Bookings  repository.BookingRepository
	Sender    *SenderService
	Now       func() time.Time
}

func NewMaterializerService(schedules repository.ScheduleRepository, bookings repository.BookingRepository, sender *SenderService) *MaterializerService {
	return &MaterializerService{
		Schedules: schedules,
		Bookings:  bookings,
		Sender:    sender,
		Now:       time.Now,
	}
}

// Run processes every active schedule once. It returns an error only when the
// schedule list itself cannot be loaded; per-schedule failures are logged and
// counted.
func (s *MaterializerService) Run() error {
	log.Println("Cron Job: Materializing bookings from active schedules...")

	schedules, err := s.Schedules.GetActive()
	if err != nil {
		return fmt.Errorf("cron job: failed to load active schedules: %w", err)
	}
	if len(schedules) == 0 {
		log.Println("Cron Job: No active schedules.")
		return nil
	}

	today := recurrence.DateOnly(s.Now())
	weekday := today.Weekday()

	var created []db.Booking
	var failures int
	for _, schedule := range schedules {
		if today.Before(schedule.RangeStart) || today.After(schedule.RangeEnd) {
			log.Printf("Cron Job: Schedule %d (%s) skipped, %s outside its range", schedule.ID, schedule.Name, today.Format("2006-01-02"))
			continue
		}
		if !containsWeekday(schedule.Weekdays, weekday) {
			log.Printf("Cron Job: Schedule %d (%s) skipped, %s not a selected weekday", schedule.ID, schedule.Name, recurrence.FormatWeekday(weekday))
			continue
		}

		booking, err := s.materialize(schedule, today)
		if err != nil {
			log.Printf("Cron Job: Schedule %d (%s) failed: %v", schedule.ID, schedule.Name, err)
			failures++
			continue
		}
		log.Printf("Cron Job: Schedule %d (%s) created booking %d for %s", schedule.ID, schedule.Name, booking.ID, today.Format("2006-01-02"))
		created = append(created, *booking)
	}

	log.Printf("Cron Job: Done, %d bookings created, %d schedules failed.", len(created), failures)
	if s.Sender != nil {
		s.Sender.SendMaterializerReport(today, created, failures)
	}
	return nil
}

// materialize creates today's booking for a qualifying schedule and records
// its id on the schedule. The end date rolls to tomorrow when the daily
// window crosses midnight.
func (s *MaterializerService) materialize(schedule db.Schedule, today time.Time) (*db.Booking, error) {
	endDate := today
	if schedule.DailyEnd.Before(schedule.DailyStart) {
		endDate = today.AddDate(0, 0, 1)
	}

	booking := &db.Booking{
		StartDate:       today,
		StartTime:       schedule.DailyStart,
		EndDate:         endDate,
		EndTime:         schedule.DailyEnd,
		DurationMinutes: schedule.DurationMinutes,
	}
	if err := s.Bookings.Create(booking); err != nil {
		return nil, fmt.Errorf("creating booking: %w", err)
	}
	if err := s.Schedules.AppendBookingID(schedule.ID, booking.ID); err != nil {
		return nil, fmt.Errorf("recording booking %d on schedule: %w", booking.ID, err)
	}
	return booking, nil
}

func containsWeekday(days []time.Weekday, day time.Weekday) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
