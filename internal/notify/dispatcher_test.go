package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type fakeCalendar struct {
	pushed []string
	err    error
	panics bool
}

func (f *fakeCalendar) PushBooking(_ context.Context, calendarID string, _ BookingEvent) error {
	if f.panics {
		panic("calendar client blew up")
	}
	f.pushed = append(f.pushed, calendarID)
	return f.err
}

type fakeStaff struct {
	calendars map[int64]string
}

func (f *fakeStaff) CalendarIDsForStaff(_ context.Context, staffIDs []int64) (map[int64]string, error) {
	out := make(map[int64]string)
	for _, id := range staffIDs {
		if cal, ok := f.calendars[id]; ok {
			out[id] = cal
		}
	}
	return out, nil
}

func staffEvent(staffID int64, syncEnabled bool) BookingEvent {
	return BookingEvent{
		BookingID:           42,
		StoreID:             5,
		StaffID:             &staffID,
		StartTime:           time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
		EndTime:             time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC),
		Status:              "confirmed",
		CalendarSyncEnabled: syncEnabled,
	}
}

func TestSyncDispatcher_CalendarSync(t *testing.T) {
	cal := &fakeCalendar{}
	staff := &fakeStaff{calendars: map[int64]string{7: "cal-7"}}
	d := NewSyncDispatcher(NewHub(), cal, staff, zerolog.Nop())

	d.BookingCreated(context.Background(), staffEvent(7, true))
	assert.Equal(t, []string{"cal-7"}, cal.pushed)
}

func TestSyncDispatcher_CalendarSkippedWhenPlanDisallows(t *testing.T) {
	cal := &fakeCalendar{}
	staff := &fakeStaff{calendars: map[int64]string{7: "cal-7"}}
	d := NewSyncDispatcher(NewHub(), cal, staff, zerolog.Nop())

	d.BookingCreated(context.Background(), staffEvent(7, false))
	assert.Empty(t, cal.pushed)
}

func TestSyncDispatcher_CalendarSkippedWithoutStaff(t *testing.T) {
	cal := &fakeCalendar{}
	staff := &fakeStaff{calendars: map[int64]string{}}
	d := NewSyncDispatcher(NewHub(), cal, staff, zerolog.Nop())

	evt := staffEvent(7, true)
	evt.StaffID = nil
	d.BookingCreated(context.Background(), evt)
	assert.Empty(t, cal.pushed)
}

func TestSyncDispatcher_ErrorsAndPanicsAreContained(t *testing.T) {
	staff := &fakeStaff{calendars: map[int64]string{7: "cal-7"}}

	failing := &fakeCalendar{err: errors.New("calendar down")}
	d := NewSyncDispatcher(NewHub(), failing, staff, zerolog.Nop())
	assert.NotPanics(t, func() {
		d.BookingCreated(context.Background(), staffEvent(7, true))
	})

	panicking := &fakeCalendar{panics: true}
	d = NewSyncDispatcher(NewHub(), panicking, staff, zerolog.Nop())
	assert.NotPanics(t, func() {
		d.BookingCreated(context.Background(), staffEvent(7, true))
	})
}

func TestSyncDispatcher_NilChannelsAreNoOps(t *testing.T) {
	d := NewSyncDispatcher(nil, nil, nil, zerolog.Nop())
	assert.NotPanics(t, func() {
		d.BookingCreated(context.Background(), staffEvent(7, true))
	})
}
