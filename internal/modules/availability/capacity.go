package availability

import (
	"time"

	"cleanbook/internal/domain"
	"cleanbook/internal/modules/hours"
)

// CapacityPool counts concurrently overlapping bookings against the store's
// whole-store ceiling, regardless of which staff member fulfills them. Days
// without a business-hours entry are closed in this model.
type CapacityPool struct{}

func (CapacityPool) Slots(snap Snapshot) (*Result, error) {
	res := &Result{
		StoreID:     snap.Store.ID,
		Mode:        domain.AvailabilityCapacityPool,
		Date:        snap.Date.Format("2006-01-02"),
		MaxCapacity: snap.Store.Capacity(),
		Slots:       []Slot{},
	}

	duration, err := cartDuration(snap)
	if err != nil {
		return nil, err
	}
	res.TotalDurationMin = duration

	w := hours.Resolve(snap.Store, snap.Date)
	open, close, ok := w.Bounds(snap.Date)
	if !ok {
		return res, nil
	}

	slotLen := time.Duration(duration) * time.Minute
	for start := open; !start.Add(slotLen).After(close); start = start.Add(snap.interval()) {
		end := start.Add(slotLen)

		overlapping := 0
		for i := range snap.Bookings {
			b := &snap.Bookings[i]
			if !b.HoldsCapacity(snap.Now) {
				continue
			}
			if b.Overlaps(start, end) {
				overlapping++
			}
		}

		if res.MaxCapacity-overlapping > 0 {
			res.Slots = append(res.Slots, Slot{
				Start:     start.Format("15:04"),
				End:       end.Format("15:04"),
				Available: true,
			})
		}
	}

	return res, nil
}
