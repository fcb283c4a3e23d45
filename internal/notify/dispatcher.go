package notify

import (
	"context"

	"github.com/asaskevich/EventBus"
	"github.com/rs/zerolog"
)

// Dispatcher fans a booking event out to the side-effect channels. Both
// implementations give the same guarantee: dispatch never fails and never
// blocks the booking response on a slow or broken channel.
type Dispatcher interface {
	BookingCreated(ctx context.Context, evt BookingEvent)
}

// SyncDispatcher runs each side effect inline but isolated: panics and
// errors are logged and swallowed.
type SyncDispatcher struct {
	hub      *Hub
	calendar CalendarClient
	staff    StaffDirectory
	log      zerolog.Logger
}

// StaffDirectory resolves staff calendar credentials for calendar sync.
type StaffDirectory interface {
	CalendarIDsForStaff(ctx context.Context, staffIDs []int64) (map[int64]string, error)
}

func NewSyncDispatcher(hub *Hub, calendar CalendarClient, staff StaffDirectory, log zerolog.Logger) *SyncDispatcher {
	return &SyncDispatcher{hub: hub, calendar: calendar, staff: staff, log: log}
}

func (d *SyncDispatcher) BookingCreated(ctx context.Context, evt BookingEvent) {
	d.isolated("channel_push", evt, func() error {
		if d.hub == nil {
			return nil
		}
		d.hub.Broadcast(evt.StoreID, evt)
		return nil
	})

	d.isolated("calendar_sync", evt, func() error {
		if !evt.CalendarSyncEnabled || d.calendar == nil || d.staff == nil || evt.StaffID == nil {
			return nil
		}
		calendars, err := d.staff.CalendarIDsForStaff(ctx, []int64{*evt.StaffID})
		if err != nil {
			return err
		}
		if id, ok := calendars[*evt.StaffID]; ok {
			return d.calendar.PushBooking(ctx, id, evt)
		}
		return nil
	})
}

// isolated runs one side effect so that neither an error nor a panic can
// reach the booking path.
func (d *SyncDispatcher) isolated(name string, evt BookingEvent, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Interface("panic", r).Str("effect", name).
				Int64("booking_id", evt.BookingID).Msg("side effect panicked")
		}
	}()
	if err := fn(); err != nil {
		d.log.Warn().Err(err).Str("effect", name).
			Int64("booking_id", evt.BookingID).Msg("side effect failed")
	}
}

// BusDispatcher publishes to the in-process event bus; a subscriber set up
// with SubscribeSync drains the topic asynchronously. Semantically
// equivalent to SyncDispatcher from the orchestrator's point of view.
type BusDispatcher struct {
	bus EventBus.Bus
}

func NewBusDispatcher(bus EventBus.Bus) *BusDispatcher {
	return &BusDispatcher{bus: bus}
}

func (d *BusDispatcher) BookingCreated(_ context.Context, evt BookingEvent) {
	d.bus.Publish(BookingCreatedTopic, evt)
}

// SubscribeSync wires the sync dispatcher as the async consumer.
func SubscribeSync(bus EventBus.Bus, sync *SyncDispatcher) error {
	return bus.SubscribeAsync(BookingCreatedTopic, func(evt BookingEvent) {
		sync.BookingCreated(context.Background(), evt)
	}, false)
}
