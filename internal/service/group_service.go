package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"studiobooking/internal/db"
	"studiobooking/internal/recurrence"
	"studiobooking/internal/repository"
)

// ErrEmptyExpansion means a recurrence request was valid but produced no
// dates. Nothing is persisted; the caller has to correct the request.
var ErrEmptyExpansion = errors.New("no dates match the selected weekdays in the given range")

// GroupService owns the group-to-members relationship: eager expansion at
// creation, time edits cascading to members, and the membership bookkeeping
// that deletes a group when its last member goes.
type GroupService struct {
	Groups   repository.GroupRepository
	Bookings repository.BookingRepository
}

func NewGroupService(groups repository.GroupRepository, bookings repository.BookingRepository) *GroupService {
	return &GroupService{Groups: groups, Bookings: bookings}
}

// CreateGroup expands the weekday set over the range and creates one booking
// per date, recording the ids on the group in ascending date order. An empty
// expansion creates nothing at all.
func (s *GroupService) CreateGroup(weekdays []time.Weekday, rangeStart, rangeEnd time.Time, dailyStart, dailyEnd recurrence.TimeOfDay) (*db.RecurringGroup, int, error) {
	dates, err := recurrence.Expand(weekdays, rangeStart, rangeEnd)
	if err != nil {
		return nil, 0, err
	}
	if len(dates) == 0 {
		return nil, 0, ErrEmptyExpansion
	}

	minutes, err := recurrence.DailyDuration(dailyStart, dailyEnd, true)
	if err != nil {
		return nil, 0, err
	}

	group := &db.RecurringGroup{
		Weekdays:        weekdays,
		RangeStart:      recurrence.DateOnly(rangeStart),
		RangeEnd:        recurrence.DateOnly(rangeEnd),
		DailyStart:      dailyStart,
		DailyEnd:        dailyEnd,
		DurationMinutes: minutes,
	}
	if err := s.Groups.Create(group); err != nil {
		return nil, 0, err
	}

	rollover := dailyEnd.Before(dailyStart)
	ids := make([]int, 0, len(dates))
	for _, date := range dates {
		endDate := date
		if rollover {
			endDate = date.AddDate(0, 0, 1)
		}
		booking := &db.Booking{
			StartDate:       date,
			StartTime:       dailyStart,
			EndDate:         endDate,
			EndTime:         dailyEnd,
			DurationMinutes: minutes,
		}
		if err := s.Bookings.Create(booking); err != nil {
			return nil, 0, fmt.Errorf("creating member booking for %s: %w", date.Format("2006-01-02"), err)
		}
		ids = append(ids, booking.ID)
	}

	if err := s.Groups.UpdateBookingIDs(group.ID, ids); err != nil {
		return nil, 0, err
	}
	group.BookingIDs = ids
	return group, len(ids), nil
}

func (s *GroupService) List() ([]db.RecurringGroup, error) {
	return s.Groups.GetAll()
}

func (s *GroupService) Get(id int) (*db.RecurringGroup, error) {
	return s.Groups.GetByID(id)
}

// GetMembers fetches the bookings listed on the group. A vanished group means
// no members, not a failure; a listed id whose booking has vanished is skipped
// with a log line rather than aborting the listing.
func (s *GroupService) GetMembers(groupID int) ([]db.Booking, error) {
	group, err := s.Groups.GetByID(groupID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []db.Booking{}, nil
		}
		return nil, err
	}

	members := make([]db.Booking, 0, len(group.BookingIDs))
	for _, id := range group.BookingIDs {
		booking, err := s.Bookings.GetByID(id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				log.Printf("Group %d lists booking %d which no longer exists", groupID, id)
				continue
			}
			return nil, err
		}
		members = append(members, *booking)
	}
	return members, nil
}

// UpdateGroupTimes rewrites the daily time window on the group and propagates
// it to every surviving member. Each member keeps its start date; the end date
// is recomputed from the rollover rule. Weekdays and the date range are never
// touched.
func (s *GroupService) UpdateGroupTimes(groupID int, dailyStart, dailyEnd recurrence.TimeOfDay, durationMinutes int) error {
	group, err := s.Groups.GetByID(groupID)
	if err != nil {
		return err
	}
	if err := s.Groups.UpdateTimes(groupID, dailyStart, dailyEnd, durationMinutes); err != nil {
		return err
	}

	rollover := dailyEnd.Before(dailyStart)
	for _, id := range group.BookingIDs {
		booking, err := s.Bookings.GetByID(id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				log.Printf("Group %d lists booking %d which no longer exists, skipping time update", groupID, id)
				continue
			}
			return err
		}
		booking.StartTime = dailyStart
		booking.EndTime = dailyEnd
		booking.EndDate = booking.StartDate
		if rollover {
			booking.EndDate = booking.StartDate.AddDate(0, 0, 1)
		}
		booking.DurationMinutes = durationMinutes
		if err := s.Bookings.Update(booking); err != nil {
			return fmt.Errorf("updating member booking %d: %w", id, err)
		}
	}
	return nil
}

// DeleteMember is the single funnel both individual and bulk member deletion
// go through: it deletes the booking, shrinks the member list, and deletes the
// group itself when the list empties. Returns the number of members left.
func (s *GroupService) DeleteMember(bookingID, groupID int) (int, error) {
	group, err := s.Groups.GetByID(groupID)
	if err != nil {
		return 0, err
	}

	if err := s.Bookings.Delete(bookingID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return 0, err
	}

	remaining := make([]int, 0, len(group.BookingIDs))
	for _, id := range group.BookingIDs {
		if id != bookingID {
			remaining = append(remaining, id)
		}
	}

	if len(remaining) == 0 {
		if err := s.Groups.Delete(groupID); err != nil {
			return 0, err
		}
		return 0, nil
	}
	if err := s.Groups.UpdateBookingIDs(groupID, remaining); err != nil {
		return 0, err
	}
	return len(remaining), nil
}

// DeleteGroup cascade-deletes every member booking, then the group record.
// Members go first so an interruption cannot leave a group pointing at
// bookings that were never meant to survive it.
func (s *GroupService) DeleteGroup(groupID int) error {
	group, err := s.Groups.GetByID(groupID)
	if err != nil {
		return err
	}
	if err := s.Bookings.DeleteByIDs(group.BookingIDs); err != nil {
		return err
	}
	return s.Groups.Delete(groupID)
}
