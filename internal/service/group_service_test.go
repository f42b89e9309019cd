package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiobooking/internal/recurrence"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newGroupFixture() (*GroupService, *fakeGroupRepo, *fakeBookingRepo) {
	groups := newFakeGroupRepo()
	bookings := newFakeBookingRepo()
	return NewGroupService(groups, bookings), groups, bookings
}

func TestCreateGroupRoundTrip(t *testing.T) {
	svc, groups, bookings := newGroupFixture()

	// Mondays and Thursdays in the first two weeks of January 2024: 1, 4, 8, 11.
	group, count, err := svc.CreateGroup(
		[]time.Weekday{time.Monday, time.Thursday},
		date(2024, time.January, 1), date(2024, time.January, 12),
		recurrence.TimeOfDay{Hour: 10}, recurrence.TimeOfDay{Hour: 13},
	)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.Equal(t, 180, group.DurationMinutes)
	assert.Len(t, group.BookingIDs, 4)

	stored, err := groups.GetByID(group.ID)
	require.NoError(t, err)
	assert.Equal(t, group.BookingIDs, stored.BookingIDs)

	members, err := svc.GetMembers(group.ID)
	require.NoError(t, err)
	require.Len(t, members, 4)

	wantDates := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 4),
		date(2024, time.January, 8),
		date(2024, time.January, 11),
	}
	for i, m := range members {
		assert.Equal(t, wantDates[i], m.StartDate, "member %d start date", i)
		assert.Equal(t, wantDates[i], m.EndDate, "member %d end date", i)
		assert.Equal(t, group.BookingIDs[i], m.ID, "member %d id order", i)
		assert.Equal(t, 180, m.DurationMinutes)
	}
	assert.Len(t, bookings.bookings, 4)
}

func TestCreateGroupEmptyExpansion(t *testing.T) {
	svc, groups, bookings := newGroupFixture()

	// 2024-01-08 through 2024-01-11 is Monday through Thursday: no Friday.
	_, _, err := svc.CreateGroup(
		[]time.Weekday{time.Friday},
		date(2024, time.January, 8), date(2024, time.January, 11),
		recurrence.TimeOfDay{Hour: 10}, recurrence.TimeOfDay{Hour: 12},
	)
	assert.ErrorIs(t, err, ErrEmptyExpansion)
	assert.Empty(t, groups.groups, "no group may be created on empty expansion")
	assert.Empty(t, bookings.bookings, "no bookings may be created on empty expansion")
}

func TestCreateGroupValidation(t *testing.T) {
	svc, _, _ := newGroupFixture()

	_, _, err := svc.CreateGroup(nil,
		date(2024, time.January, 1), date(2024, time.January, 31),
		recurrence.TimeOfDay{Hour: 10}, recurrence.TimeOfDay{Hour: 12})
	assert.ErrorIs(t, err, recurrence.ErrInvalidWeekday)

	_, _, err = svc.CreateGroup([]time.Weekday{time.Monday},
		date(2024, time.January, 31), date(2024, time.January, 1),
		recurrence.TimeOfDay{Hour: 10}, recurrence.TimeOfDay{Hour: 12})
	assert.ErrorIs(t, err, recurrence.ErrInvalidRange)
}

func TestCreateGroupMidnightRollover(t *testing.T) {
	svc, _, _ := newGroupFixture()

	group, count, err := svc.CreateGroup(
		[]time.Weekday{time.Friday},
		date(2024, time.January, 1), date(2024, time.January, 14),
		recurrence.TimeOfDay{Hour: 23}, recurrence.TimeOfDay{Hour: 1},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 120, group.DurationMinutes)

	members, err := svc.GetMembers(group.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	for _, m := range members {
		assert.Equal(t, m.StartDate.AddDate(0, 0, 1), m.EndDate, "end date must roll to the next day")
	}
}

func TestDeleteMemberShrinksAndFinallyDeletesGroup(t *testing.T) {
	svc, groups, bookings := newGroupFixture()

	group, count, err := svc.CreateGroup(
		[]time.Weekday{time.Monday},
		date(2024, time.January, 1), date(2024, time.January, 21),
		recurrence.TimeOfDay{Hour: 9}, recurrence.TimeOfDay{Hour: 11},
	)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	ids := append([]int(nil), group.BookingIDs...)

	remaining, err := svc.DeleteMember(ids[1], group.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, remaining)

	stored, err := groups.GetByID(group.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{ids[0], ids[2]}, stored.BookingIDs)

	remaining, err = svc.DeleteMember(ids[0], group.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)

	// Deleting the last member must delete the group itself.
	remaining, err = svc.DeleteMember(ids[2], group.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
	assert.Empty(t, groups.groups, "a group with zero members cannot exist")
	assert.Empty(t, bookings.bookings)
}

func TestUpdateGroupTimesPropagatesToMembers(t *testing.T) {
	svc, groups, _ := newGroupFixture()

	group, _, err := svc.CreateGroup(
		[]time.Weekday{time.Tuesday, time.Thursday},
		date(2024, time.January, 1), date(2024, time.January, 14),
		recurrence.TimeOfDay{Hour: 9}, recurrence.TimeOfDay{Hour: 11},
	)
	require.NoError(t, err)

	newStart := recurrence.TimeOfDay{Hour: 23}
	newEnd := recurrence.TimeOfDay{Hour: 1}
	minutes, err := recurrence.DailyDuration(newStart, newEnd, true)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateGroupTimes(group.ID, newStart, newEnd, minutes))

	stored, err := groups.GetByID(group.ID)
	require.NoError(t, err)
	assert.Equal(t, newStart, stored.DailyStart)
	assert.Equal(t, newEnd, stored.DailyEnd)
	assert.Equal(t, 120, stored.DurationMinutes)
	// Recurrence shape is immutable.
	assert.Equal(t, []time.Weekday{time.Tuesday, time.Thursday}, stored.Weekdays)

	members, err := svc.GetMembers(group.ID)
	require.NoError(t, err)
	require.Len(t, members, 4)
	for _, m := range members {
		assert.Equal(t, newStart, m.StartTime)
		assert.Equal(t, newEnd, m.EndTime)
		assert.Equal(t, 120, m.DurationMinutes)
		assert.Equal(t, m.StartDate.AddDate(0, 0, 1), m.EndDate, "rollover must move member end dates")
	}
}

func TestDeleteGroupCascades(t *testing.T) {
	svc, groups, bookings := newGroupFixture()

	group, count, err := svc.CreateGroup(
		[]time.Weekday{time.Wednesday},
		date(2024, time.January, 1), date(2024, time.January, 31),
		recurrence.TimeOfDay{Hour: 14}, recurrence.TimeOfDay{Hour: 16},
	)
	require.NoError(t, err)
	require.Equal(t, 5, count)

	require.NoError(t, svc.DeleteGroup(group.ID))
	assert.Empty(t, groups.groups)
	assert.Empty(t, bookings.bookings, "cascade must delete every member booking")
}

func TestGetMembersOfMissingGroup(t *testing.T) {
	svc, _, _ := newGroupFixture()

	members, err := svc.GetMembers(42)
	require.NoError(t, err, "a vanished group means no members, not a failure")
	assert.Empty(t, members)
}
