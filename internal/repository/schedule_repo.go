package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"studiobooking/internal/db"
	"studiobooking/internal/recurrence"
)

// ScheduleRepository persists daily-materialization schedules. Unlike
// recurring groups, member ids grow over the schedule's life and deleting the
// schedule leaves the bookings untouched.
type ScheduleRepository interface {
	Create(s *db.Schedule) error
	GetAll() ([]db.Schedule, error)
	GetActive() ([]db.Schedule, error)
	GetByID(id int) (*db.Schedule, error)
	Update(s *db.Schedule) error
	AppendBookingID(id, bookingID int) error
	SetActive(id int, active bool) error
	Delete(id int) error
}

type scheduleRepository struct {
	db *sql.DB
}

func NewScheduleRepository(database *sql.DB) ScheduleRepository {
	return &scheduleRepository{db: database}
}

func (r *scheduleRepository) Create(s *db.Schedule) error {
	weekdays, err := encodeWeekdays(s.Weekdays)
	if err != nil {
		return err
	}
	ids, err := encodeIDs(s.BookingIDs)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO schedules
		(name, weekdays, range_start, range_end, daily_start, daily_end, duration_minutes, booking_ids, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at`
	err = r.db.QueryRow(query,
		s.Name,
		weekdays,
		s.RangeStart,
		s.RangeEnd,
		s.DailyStart.String(),
		s.DailyEnd.String(),
		s.DurationMinutes,
		ids,
		s.IsActive,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return storeErr("insert schedule", err)
	}
	return nil
}

func (r *scheduleRepository) GetAll() ([]db.Schedule, error) {
	return r.query(selectSchedule + ` ORDER BY created_at DESC`)
}

func (r *scheduleRepository) GetActive() ([]db.Schedule, error) {
	return r.query(selectSchedule + ` WHERE is_active = TRUE ORDER BY created_at DESC`)
}

func (r *scheduleRepository) query(query string, args ...interface{}) ([]db.Schedule, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, storeErr("query schedules", err)
	}
	defer rows.Close()

	var schedules []db.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, *s)
	}
	if err = rows.Err(); err != nil {
		return nil, storeErr("iterate schedules", err)
	}
	return schedules, nil
}

func (r *scheduleRepository) GetByID(id int) (*db.Schedule, error) {
	s, err := scanSchedule(r.db.QueryRow(selectSchedule+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("schedule %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

// Update rewrites the template fields. The member-id list and the active flag
// are never touched here; they have dedicated operations.
func (r *scheduleRepository) Update(s *db.Schedule) error {
	weekdays, err := encodeWeekdays(s.Weekdays)
	if err != nil {
		return err
	}
	query := `
		UPDATE schedules
		SET name = $1, weekdays = $2, range_start = $3, range_end = $4,
		    daily_start = $5, daily_end = $6, duration_minutes = $7
		WHERE id = $8`
	result, err := r.db.Exec(query,
		s.Name,
		weekdays,
		s.RangeStart,
		s.RangeEnd,
		s.DailyStart.String(),
		s.DailyEnd.String(),
		s.DurationMinutes,
		s.ID,
	)
	if err != nil {
		return storeErr("update schedule", err)
	}
	return requireScheduleRow(result, s.ID)
}

// AppendBookingID reads the current member list and persists it with the new
// id appended. The list is append-only over the schedule's life.
func (r *scheduleRepository) AppendBookingID(id, bookingID int) error {
	s, err := r.GetByID(id)
	if err != nil {
		return err
	}
	encoded, err := encodeIDs(append(s.BookingIDs, bookingID))
	if err != nil {
		return err
	}
	result, err := r.db.Exec(`UPDATE schedules SET booking_ids = $1 WHERE id = $2`, encoded, id)
	if err != nil {
		return storeErr("append schedule member", err)
	}
	return requireScheduleRow(result, id)
}

func (r *scheduleRepository) SetActive(id int, active bool) error {
	result, err := r.db.Exec(`UPDATE schedules SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return storeErr("toggle schedule", err)
	}
	return requireScheduleRow(result, id)
}

// Delete removes only the schedule record. Materialized bookings outlive their
// generator.
func (r *scheduleRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete schedule", err)
	}
	return requireScheduleRow(result, id)
}

const selectSchedule = `
	SELECT id, name, weekdays, range_start, range_end, daily_start, daily_end,
	       duration_minutes, booking_ids, is_active, created_at
	FROM schedules`

func requireScheduleRow(result sql.Result, id int) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return storeErr("rows affected", err)
	}
	if affected == 0 {
		return fmt.Errorf("schedule %d: %w", id, ErrNotFound)
	}
	return nil
}

func scanSchedule(row rowScanner) (*db.Schedule, error) {
	var s db.Schedule
	var weekdays, dailyStart, dailyEnd, bookingIDs string
	err := row.Scan(&s.ID, &s.Name, &weekdays, &s.RangeStart, &s.RangeEnd, &dailyStart, &dailyEnd,
		&s.DurationMinutes, &bookingIDs, &s.IsActive, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, storeErr("scan schedule", err)
	}
	if s.Weekdays, err = decodeWeekdays(weekdays); err != nil {
		return nil, fmt.Errorf("schedule %d: %w", s.ID, err)
	}
	if s.DailyStart, err = recurrence.ParseTimeOfDay(dailyStart); err != nil {
		return nil, fmt.Errorf("schedule %d daily_start: %w", s.ID, err)
	}
	if s.DailyEnd, err = recurrence.ParseTimeOfDay(dailyEnd); err != nil {
		return nil, fmt.Errorf("schedule %d daily_end: %w", s.ID, err)
	}
	if s.BookingIDs, err = decodeIDs(bookingIDs); err != nil {
		return nil, fmt.Errorf("schedule %d: %w", s.ID, err)
	}
	s.RangeStart = recurrence.DateOnly(s.RangeStart)
	s.RangeEnd = recurrence.DateOnly(s.RangeEnd)
	return &s, nil
}
