package service

import (
	"time"

	"studiobooking/internal/db"
	"studiobooking/internal/recurrence"
	"studiobooking/internal/repository"
)

// BookingService handles single one-off bookings. Recurring creation goes
// through GroupService; daily materialization through MaterializerService.
type BookingService struct {
	Repo repository.BookingRepository
}

func NewBookingService(repo repository.BookingRepository) *BookingService {
	return &BookingService{Repo: repo}
}

// Create validates the explicit interval and persists one booking. Two
// explicit dates never roll over: end must be strictly after start.
func (s *BookingService) Create(startDate time.Time, startTime recurrence.TimeOfDay, endDate time.Time, endTime recurrence.TimeOfDay) (*db.Booking, error) {
	minutes, err := recurrence.Duration(startTime.At(startDate), endTime.At(endDate))
	if err != nil {
		return nil, err
	}
	booking := &db.Booking{
		StartDate:       recurrence.DateOnly(startDate),
		StartTime:       startTime,
		EndDate:         recurrence.DateOnly(endDate),
		EndTime:         endTime,
		DurationMinutes: minutes,
	}
	if err := s.Repo.Create(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) List() ([]db.Booking, error) {
	return s.Repo.GetAll()
}

func (s *BookingService) Get(id int) (*db.Booking, error) {
	return s.Repo.GetByID(id)
}

// Update rewrites the interval fields of an existing booking after the same
// validation as Create. Identity and creation timestamp stay untouched.
func (s *BookingService) Update(id int, startDate time.Time, startTime recurrence.TimeOfDay, endDate time.Time, endTime recurrence.TimeOfDay) (*db.Booking, error) {
	minutes, err := recurrence.Duration(startTime.At(startDate), endTime.At(endDate))
	if err != nil {
		return nil, err
	}
	booking, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	booking.StartDate = recurrence.DateOnly(startDate)
	booking.StartTime = startTime
	booking.EndDate = recurrence.DateOnly(endDate)
	booking.EndTime = endTime
	booking.DurationMinutes = minutes
	if err := s.Repo.Update(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) Delete(id int) error {
	return s.Repo.Delete(id)
}
