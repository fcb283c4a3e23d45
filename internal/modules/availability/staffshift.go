package availability

import (
	"sort"
	"time"

	"cleanbook/internal/domain"
	"cleanbook/internal/modules/hours"
)

// StaffShift assigns individual staff instead of counting a shared pool: a
// slot is bookable when at least one staff member's published shift fully
// covers it and that member has no conflicting booking.
//
// Unlike the capacity model, a weekday without an explicit schedule entry
// falls back to an open 09:00-18:00 window here. The divergence is observed
// legacy behavior and intentionally not unified.
type StaffShift struct{}

func (StaffShift) Slots(snap Snapshot) (*Result, error) {
	res := &Result{
		StoreID: snap.Store.ID,
		Mode:    domain.AvailabilityStaffShift,
		Date:    snap.Date.Format("2006-01-02"),
		Slots:   []Slot{},
	}

	duration, err := cartDuration(snap)
	if err != nil {
		return nil, err
	}
	res.TotalDurationMin = duration

	w := hours.Resolve(snap.Store, snap.Date)
	if w == nil || !w.Explicit {
		w = &hours.Window{Open: hours.DefaultOpen, Close: hours.DefaultClose, IsOpen: true}
	}
	open, close, ok := w.Bounds(snap.Date)
	if !ok {
		return res, nil
	}

	slotLen := time.Duration(duration) * time.Minute
	// A job longer than the whole business day produces no candidates at
	// all, not an all-unavailable list.
	if slotLen > close.Sub(open) {
		return res, nil
	}

	for start := open; !start.Add(slotLen).After(close); start = start.Add(snap.interval()) {
		end := start.Add(slotLen)

		staff := availableStaff(snap, start, end)
		res.Slots = append(res.Slots, Slot{
			Start:     start.Format("15:04"),
			End:       end.Format("15:04"),
			Available: len(staff) > 0,
			StaffIDs:  staff,
		})
	}

	return res, nil
}

func availableStaff(snap Snapshot, start, end time.Time) []int64 {
	covered := make(map[int64]bool)
	for i := range snap.Shifts {
		sh := &snap.Shifts[i]
		if !sh.Published {
			continue
		}
		if sh.Covers(start, end) {
			covered[sh.StaffID] = true
		}
	}
	if len(covered) == 0 {
		return nil
	}

	for i := range snap.Bookings {
		b := &snap.Bookings[i]
		if b.StaffID == nil || !covered[*b.StaffID] {
			continue
		}
		if !b.HoldsCapacity(snap.Now) {
			continue
		}
		if b.Overlaps(start, end) {
			delete(covered, *b.StaffID)
		}
	}
	if len(covered) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(covered))
	for id := range covered {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
