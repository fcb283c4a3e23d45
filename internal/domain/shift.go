package domain

import "time"

// Shift is one contiguous availability window for one staff member.
// Unpublished shifts are drafts and never make a slot bookable.
type Shift struct {
	ID        int64     `json:"id"`
	StoreID   int64     `json:"store_id"`
	StaffID   int64     `json:"staff_id" validate:"required"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
	Published bool      `json:"published"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Covers reports whether the shift fully contains [start, end]. Partial
// coverage does not count.
func (s *Shift) Covers(start, end time.Time) bool {
	return !s.StartTime.After(start) && !s.EndTime.Before(end)
}
