package availability

import (
	"time"

	"cleanbook/internal/domain"
	"cleanbook/internal/modules/pricing"
)

// DefaultIntervalMin is the candidate-slot step.
const DefaultIntervalMin = 30

// Snapshot is everything an engine needs, read once before computation.
// Engines never touch storage: identical snapshots must produce identical
// results, and nothing here is mutated.
type Snapshot struct {
	Store    *domain.Store
	Date     time.Time // midnight UTC of the target day
	Items    []domain.CartItem
	Services []domain.Service
	Options  []domain.ServiceOption

	// Bookings are the store's non-cancelled rows intersecting the day.
	// Lazy expiry of pending_payment rows happens here, against Now.
	Bookings []domain.Booking
	// Shifts are the published shifts touching the day (staff-shift mode).
	Shifts []domain.Shift

	Now              time.Time
	IntervalMin      int
	TravelPaddingMin int
}

func (s Snapshot) interval() time.Duration {
	if s.IntervalMin > 0 {
		return time.Duration(s.IntervalMin) * time.Minute
	}
	return DefaultIntervalMin * time.Minute
}

func (s Snapshot) padding() int {
	if s.TravelPaddingMin > 0 {
		return s.TravelPaddingMin
	}
	return pricing.DefaultTravelPaddingMin
}

// Slot is a candidate start time. StaffIDs is only populated by the
// staff-shift engine.
type Slot struct {
	Start     string  `json:"start"`
	End       string  `json:"end"`
	Available bool    `json:"available"`
	StaffIDs  []int64 `json:"available_staff_ids,omitempty"`
}

type Result struct {
	StoreID          int64                   `json:"store_id"`
	Mode             domain.AvailabilityMode `json:"mode"`
	Date             string                  `json:"date"`
	MaxCapacity      int                     `json:"max_capacity,omitempty"`
	TotalDurationMin int                     `json:"total_duration_minutes"`
	Slots            []Slot                  `json:"slots"`
}

// Strategy is the polymorphic slot generator. Both engines share the
// contract but not the semantics; see the capacity-pool and staff-shift
// implementations.
type Strategy interface {
	Slots(snap Snapshot) (*Result, error)
}

// ForStore picks the engine the store is configured for.
func ForStore(store *domain.Store) Strategy {
	if store.SlotMode() == domain.AvailabilityStaffShift {
		return StaffShift{}
	}
	return CapacityPool{}
}

// cartDuration prices the cart purely for its duration. Availability and
// pricing must never disagree on how long a booking takes.
func cartDuration(snap Snapshot) (int, error) {
	q, err := pricing.BuildQuote(snap.Items, snap.Services, snap.Options, snap.padding())
	if err != nil {
		return 0, err
	}
	return q.TotalDurationMin, nil
}
