package service

import (
	"time"

	"studiobooking/internal/db"
	"studiobooking/internal/entities"
	"studiobooking/internal/recurrence"
	"studiobooking/internal/repository"
)

// ScheduleService manages daily-materialization schedules. Unlike recurring
// groups there is no eager expansion: schedules start with zero members and
// the daily job grows the list. Deleting a schedule never touches its
// materialized bookings.
type ScheduleService struct {
	Repo repository.ScheduleRepository
}

func NewScheduleService(repo repository.ScheduleRepository) *ScheduleService {
	return &ScheduleService{Repo: repo}
}

// Create validates the template the same way a recurring group would (the
// range and weekday set must be well formed, the daily window may roll over
// midnight) but persists it with no members.
func (s *ScheduleService) Create(name string, weekdays []time.Weekday, rangeStart, rangeEnd time.Time, dailyStart, dailyEnd recurrence.TimeOfDay) (*db.Schedule, error) {
	if _, err := recurrence.Expand(weekdays, rangeStart, rangeEnd); err != nil {
		return nil, err
	}
	minutes, err := recurrence.DailyDuration(dailyStart, dailyEnd, true)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = entities.ScheduleName(recurrence.FormatWeekdays(weekdays), dailyStart, dailyEnd)
	}

	schedule := &db.Schedule{
		Name:            name,
		Weekdays:        weekdays,
		RangeStart:      recurrence.DateOnly(rangeStart),
		RangeEnd:        recurrence.DateOnly(rangeEnd),
		DailyStart:      dailyStart,
		DailyEnd:        dailyEnd,
		DurationMinutes: minutes,
		IsActive:        true,
	}
	if err := s.Repo.Create(schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *ScheduleService) List() ([]db.Schedule, error) {
	return s.Repo.GetAll()
}

func (s *ScheduleService) Get(id int) (*db.Schedule, error) {
	return s.Repo.GetByID(id)
}

// Update rewrites the template fields of an existing schedule. The member-id
// list is never touched by edits.
func (s *ScheduleService) Update(id int, name string, weekdays []time.Weekday, rangeStart, rangeEnd time.Time, dailyStart, dailyEnd recurrence.TimeOfDay) (*db.Schedule, error) {
	if _, err := recurrence.Expand(weekdays, rangeStart, rangeEnd); err != nil {
		return nil, err
	}
	minutes, err := recurrence.DailyDuration(dailyStart, dailyEnd, true)
	if err != nil {
		return nil, err
	}
	schedule, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = entities.ScheduleName(recurrence.FormatWeekdays(weekdays), dailyStart, dailyEnd)
	}
	schedule.Name = name
	schedule.Weekdays = weekdays
	schedule.RangeStart = recurrence.DateOnly(rangeStart)
	schedule.RangeEnd = recurrence.DateOnly(rangeEnd)
	schedule.DailyStart = dailyStart
	schedule.DailyEnd = dailyEnd
	schedule.DurationMinutes = minutes
	if err := s.Repo.Update(schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *ScheduleService) SetActive(id int, active bool) error {
	return s.Repo.SetActive(id, active)
}

// Delete removes the schedule record only. Bookings it materialized stay
// behind as independent history.
func (s *ScheduleService) Delete(id int) error {
	return s.Repo.Delete(id)
}
