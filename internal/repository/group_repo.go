package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"studiobooking/internal/db"
	"studiobooking/internal/recurrence"
)

// GroupRepository persists recurring-group templates. The member-id list lives
// on the group row; keeping it consistent with the bookings table is the
// service layer's job.
type GroupRepository interface {
	Create(g *db.RecurringGroup) error
	GetAll() ([]db.RecurringGroup, error)
	GetByID(id int) (*db.RecurringGroup, error)
	UpdateTimes(id int, start, end recurrence.TimeOfDay, durationMinutes int) error
	UpdateBookingIDs(id int, ids []int) error
	Delete(id int) error
}

type groupRepository struct {
	db *sql.DB
}

func NewGroupRepository(database *sql.DB) GroupRepository {
	return &groupRepository{db: database}
}

func (r *groupRepository) Create(g *db.RecurringGroup) error {
	weekdays, err := encodeWeekdays(g.Weekdays)
	if err != nil {
		return err
	}
	ids, err := encodeIDs(g.BookingIDs)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO recurring_groups
		(weekdays, range_start, range_end, daily_start, daily_end, duration_minutes, booking_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at`
	err = r.db.QueryRow(query,
		weekdays,
		g.RangeStart,
		g.RangeEnd,
		g.DailyStart.String(),
		g.DailyEnd.String(),
		g.DurationMinutes,
		ids,
	).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return storeErr("insert recurring group", err)
	}
	return nil
}

func (r *groupRepository) GetAll() ([]db.RecurringGroup, error) {
	rows, err := r.db.Query(selectGroup + ` ORDER BY created_at DESC`)
	if err != nil {
		return nil, storeErr("query recurring groups", err)
	}
	defer rows.Close()

	var groups []db.RecurringGroup
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *g)
	}
	if err = rows.Err(); err != nil {
		return nil, storeErr("iterate recurring groups", err)
	}
	return groups, nil
}

func (r *groupRepository) GetByID(id int) (*db.RecurringGroup, error) {
	g, err := scanGroup(r.db.QueryRow(selectGroup+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("recurring group %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return g, nil
}

// UpdateTimes rewrites the daily time window. Weekdays and the date range are
// immutable once the group exists.
func (r *groupRepository) UpdateTimes(id int, start, end recurrence.TimeOfDay, durationMinutes int) error {
	result, err := r.db.Exec(
		`UPDATE recurring_groups SET daily_start = $1, daily_end = $2, duration_minutes = $3 WHERE id = $4`,
		start.String(), end.String(), durationMinutes, id,
	)
	if err != nil {
		return storeErr("update recurring group times", err)
	}
	return requireGroupRow(result, id)
}

func (r *groupRepository) UpdateBookingIDs(id int, ids []int) error {
	encoded, err := encodeIDs(ids)
	if err != nil {
		return err
	}
	result, err := r.db.Exec(`UPDATE recurring_groups SET booking_ids = $1 WHERE id = $2`, encoded, id)
	if err != nil {
		return storeErr("update recurring group members", err)
	}
	return requireGroupRow(result, id)
}

func (r *groupRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM recurring_groups WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete recurring group", err)
	}
	return requireGroupRow(result, id)
}

const selectGroup = `
	SELECT id, weekdays, range_start, range_end, daily_start, daily_end, duration_minutes, booking_ids, created_at
	FROM recurring_groups`

func requireGroupRow(result sql.Result, id int) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return storeErr("rows affected", err)
	}
	if affected == 0 {
		return fmt.Errorf("recurring group %d: %w", id, ErrNotFound)
	}
	return nil
}

func scanGroup(row rowScanner) (*db.RecurringGroup, error) {
	var g db.RecurringGroup
	var weekdays, dailyStart, dailyEnd, bookingIDs string
	err := row.Scan(&g.ID, &weekdays, &g.RangeStart, &g.RangeEnd, &dailyStart, &dailyEnd, &g.DurationMinutes, &bookingIDs, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, storeErr("scan recurring group", err)
	}
	if g.Weekdays, err = decodeWeekdays(weekdays); err != nil {
		return nil, fmt.Errorf("recurring group %d: %w", g.ID, err)
	}
	if g.DailyStart, err = recurrence.ParseTimeOfDay(dailyStart); err != nil {
		return nil, fmt.Errorf("recurring group %d daily_start: %w", g.ID, err)
	}
	if g.DailyEnd, err = recurrence.ParseTimeOfDay(dailyEnd); err != nil {
		return nil, fmt.Errorf("recurring group %d daily_end: %w", g.ID, err)
	}
	if g.BookingIDs, err = decodeIDs(bookingIDs); err != nil {
		return nil, fmt.Errorf("recurring group %d: %w", g.ID, err)
	}
	g.RangeStart = recurrence.DateOnly(g.RangeStart)
	g.RangeEnd = recurrence.DateOnly(g.RangeEnd)
	return &g, nil
}
