package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"studiobooking/internal/db"
	"studiobooking/internal/recurrence"
)

var (
	// ErrNotFound is returned when an id no longer maps to a record.
	ErrNotFound = errors.New("record not found")
	// ErrStoreUnavailable wraps low-level storage failures so they never cross
	// the store boundary raw.
	ErrStoreUnavailable = errors.New("store unavailable")
)

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}

// BookingRepository is CRUD over individual booking records. It has no
// knowledge of groups or schedules; membership bookkeeping belongs to the
// callers that spawn bookings.
type BookingRepository interface {
	Create(b *db.Booking) error
	GetAll() ([]db.Booking, error)
	GetByID(id int) (*db.Booking, error)
	Update(b *db.Booking) error
	Delete(id int) error
	DeleteByIDs(ids []int) error
}

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(database *sql.DB) BookingRepository {
	return &bookingRepository{db: database}
}

func (r *bookingRepository) Create(b *db.Booking) error {
	query := `
		INSERT INTO bookings (start_date, start_time, end_date, end_time, duration_minutes, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at`
	err := r.db.QueryRow(query,
		b.StartDate,
		b.StartTime.String(),
		b.EndDate,
		b.EndTime.String(),
		b.DurationMinutes,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return storeErr("insert booking", err)
	}
	return nil
}

func (r *bookingRepository) GetAll() ([]db.Booking, error) {
	query := `
		SELECT id, start_date, start_time, end_date, end_time, duration_minutes, created_at
		FROM bookings
		ORDER BY created_at DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, storeErr("query bookings", err)
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	if err = rows.Err(); err != nil {
		return nil, storeErr("iterate bookings", err)
	}
	return bookings, nil
}

func (r *bookingRepository) GetByID(id int) (*db.Booking, error) {
	query := `
		SELECT id, start_date, start_time, end_date, end_time, duration_minutes, created_at
		FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return b, nil
}

// Update rewrites the date, time and duration fields. Identity and creation
// timestamp are immutable.
func (r *bookingRepository) Update(b *db.Booking) error {
	query := `
		UPDATE bookings
		SET start_date = $1, start_time = $2, end_date = $3, end_time = $4, duration_minutes = $5
		WHERE id = $6`
	result, err := r.db.Exec(query,
		b.StartDate,
		b.StartTime.String(),
		b.EndDate,
		b.EndTime.String(),
		b.DurationMinutes,
		b.ID,
	)
	if err != nil {
		return storeErr("update booking", err)
	}
	return requireRow(result, b.ID)
}

func (r *bookingRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete booking", err)
	}
	return requireRow(result, id)
}

// DeleteByIDs removes a batch of bookings in one statement. Missing ids are
// not an error here; cascades use it and treat absent members as already gone.
func (r *bookingRepository) DeleteByIDs(ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.Exec(`DELETE FROM bookings WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return storeErr("delete bookings", err)
	}
	return nil
}

func requireRow(result sql.Result, id int) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return storeErr("rows affected", err)
	}
	if affected == 0 {
		return fmt.Errorf("booking %d: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*db.Booking, error) {
	var b db.Booking
	var startTime, endTime string
	err := row.Scan(&b.ID, &b.StartDate, &startTime, &b.EndDate, &endTime, &b.DurationMinutes, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, storeErr("scan booking", err)
	}
	if b.StartTime, err = recurrence.ParseTimeOfDay(startTime); err != nil {
		return nil, fmt.Errorf("booking %d start_time: %w", b.ID, err)
	}
	if b.EndTime, err = recurrence.ParseTimeOfDay(endTime); err != nil {
		return nil, fmt.Errorf("booking %d end_time: %w", b.ID, err)
	}
	b.StartDate = recurrence.DateOnly(b.StartDate)
	b.EndDate = recurrence.DateOnly(b.EndDate)
	return &b, nil
}
