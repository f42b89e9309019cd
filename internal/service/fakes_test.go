package service

import (
	"fmt"
	"sort"
	"time"

	"studiobooking/internal/db"
	"studiobooking/internal/recurrence"
	"studiobooking/internal/repository"
)

// In-memory stand-ins for the SQL repositories. They honor the same contracts
// (NotFound on vanished ids, insertion-assigned ids) and allow injecting
// failures per operation.

type fakeBookingRepo struct {
	nextID     int
	bookings   map[int]db.Booking
	order      []int
	failCreate error
	failUpdate error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{nextID: 1, bookings: map[int]db.Booking{}}
}

func (r *fakeBookingRepo) Create(b *db.Booking) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	b.ID = r.nextID
	r.nextID++
	b.CreatedAt = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(b.ID) * time.Second)
	r.bookings[b.ID] = *b
	r.order = append(r.order, b.ID)
	return nil
}

func (r *fakeBookingRepo) GetAll() ([]db.Booking, error) {
	ids := append([]int(nil), r.order...)
	sort.Sort(sort.Reverse(sort.IntSlice(ids)))
	var out []db.Booking
	for _, id := range ids {
		if b, ok := r.bookings[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) GetByID(id int) (*db.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %d: %w", id, repository.ErrNotFound)
	}
	copy := b
	return &copy, nil
}

func (r *fakeBookingRepo) Update(b *db.Booking) error {
	if r.failUpdate != nil {
		return r.failUpdate
	}
	stored, ok := r.bookings[b.ID]
	if !ok {
		return fmt.Errorf("booking %d: %w", b.ID, repository.ErrNotFound)
	}
	stored.StartDate = b.StartDate
	stored.StartTime = b.StartTime
	stored.EndDate = b.EndDate
	stored.EndTime = b.EndTime
	stored.DurationMinutes = b.DurationMinutes
	r.bookings[b.ID] = stored
	return nil
}

func (r *fakeBookingRepo) Delete(id int) error {
	if _, ok := r.bookings[id]; !ok {
		return fmt.Errorf("booking %d: %w", id, repository.ErrNotFound)
	}
	delete(r.bookings, id)
	return nil
}

func (r *fakeBookingRepo) DeleteByIDs(ids []int) error {
	for _, id := range ids {
		delete(r.bookings, id)
	}
	return nil
}

type fakeGroupRepo struct {
	nextID int
	groups map[int]db.RecurringGroup
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{nextID: 1, groups: map[int]db.RecurringGroup{}}
}

func (r *fakeGroupRepo) Create(g *db.RecurringGroup) error {
	g.ID = r.nextID
	r.nextID++
	g.CreatedAt = time.Now()
	r.groups[g.ID] = *g
	return nil
}

func (r *fakeGroupRepo) GetAll() ([]db.RecurringGroup, error) {
	var out []db.RecurringGroup
	for _, g := range r.groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeGroupRepo) GetByID(id int) (*db.RecurringGroup, error) {
	g, ok := r.groups[id]
	if !ok {
		return nil, fmt.Errorf("recurring group %d: %w", id, repository.ErrNotFound)
	}
	copy := g
	copy.BookingIDs = append([]int(nil), g.BookingIDs...)
	return &copy, nil
}

func (r *fakeGroupRepo) UpdateTimes(id int, start, end recurrence.TimeOfDay, durationMinutes int) error {
	g, ok := r.groups[id]
	if !ok {
		return fmt.Errorf("recurring group %d: %w", id, repository.ErrNotFound)
	}
	g.DailyStart = start
	g.DailyEnd = end
	g.DurationMinutes = durationMinutes
	r.groups[id] = g
	return nil
}

func (r *fakeGroupRepo) UpdateBookingIDs(id int, ids []int) error {
	g, ok := r.groups[id]
	if !ok {
		return fmt.Errorf("recurring group %d: %w", id, repository.ErrNotFound)
	}
	g.BookingIDs = append([]int(nil), ids...)
	r.groups[id] = g
	return nil
}

func (r *fakeGroupRepo) Delete(id int) error {
	if _, ok := r.groups[id]; !ok {
		return fmt.Errorf("recurring group %d: %w", id, repository.ErrNotFound)
	}
	delete(r.groups, id)
	return nil
}

type fakeScheduleRepo struct {
	nextID     int
	schedules  map[int]db.Schedule
	failAppend map[int]error
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{nextID: 1, schedules: map[int]db.Schedule{}, failAppend: map[int]error{}}
}

func (r *fakeScheduleRepo) Create(s *db.Schedule) error {
	s.ID = r.nextID
	r.nextID++
	s.CreatedAt = time.Now()
	r.schedules[s.ID] = *s
	return nil
}

func (r *fakeScheduleRepo) GetAll() ([]db.Schedule, error) {
	return r.collect(func(db.Schedule) bool { return true }), nil
}

func (r *fakeScheduleRepo) GetActive() ([]db.Schedule, error) {
	return r.collect(func(s db.Schedule) bool { return s.IsActive }), nil
}

func (r *fakeScheduleRepo) collect(keep func(db.Schedule) bool) []db.Schedule {
	var out []db.Schedule
	for _, s := range r.schedules {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeScheduleRepo) GetByID(id int) (*db.Schedule, error) {
	s, ok := r.schedules[id]
	if !ok {
		return nil, fmt.Errorf("schedule %d: %w", id, repository.ErrNotFound)
	}
	copy := s
	copy.BookingIDs = append([]int(nil), s.BookingIDs...)
	return &copy, nil
}

func (r *fakeScheduleRepo) Update(s *db.Schedule) error {
	stored, ok := r.schedules[s.ID]
	if !ok {
		return fmt.Errorf("schedule %d: %w", s.ID, repository.ErrNotFound)
	}
	stored.Name = s.Name
	stored.Weekdays = s.Weekdays
	stored.RangeStart = s.RangeStart
	stored.RangeEnd = s.RangeEnd
	stored.DailyStart = s.DailyStart
	stored.DailyEnd = s.DailyEnd
	stored.DurationMinutes = s.DurationMinutes
	r.schedules[s.ID] = stored
	return nil
}

func (r *fakeScheduleRepo) AppendBookingID(id, bookingID int) error {
	if err := r.failAppend[id]; err != nil {
		return err
	}
	s, ok := r.schedules[id]
	if !ok {
		return fmt.Errorf("schedule %d: %w", id, repository.ErrNotFound)
	}
	s.BookingIDs = append(s.BookingIDs, bookingID)
	r.schedules[id] = s
	return nil
}

func (r *fakeScheduleRepo) SetActive(id int, active bool) error {
	s, ok := r.schedules[id]
	if !ok {
		return fmt.Errorf("schedule %d: %w", id, repository.ErrNotFound)
	}
	s.IsActive = active
	r.schedules[id] = s
	return nil
}

func (r *fakeScheduleRepo) Delete(id int) error {
	if _, ok := r.schedules[id]; !ok {
		return fmt.Errorf("schedule %d: %w", id, repository.ErrNotFound)
	}
	delete(r.schedules, id)
	return nil
}
