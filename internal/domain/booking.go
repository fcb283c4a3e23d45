package domain

import "time"

type BookingStatus string

const (
	BookingPendingPayment BookingStatus = "pending_payment"
	BookingConfirmed      BookingStatus = "confirmed"
	BookingCancelled      BookingStatus = "cancelled"
	BookingCompleted      BookingStatus = "completed"
)

type PaymentMethod string

const (
	PayOnSite     PaymentMethod = "on_site"
	PayOnlineCard PaymentMethod = "online_card"
)

// PendingPaymentTTL is how long an unpaid online booking holds its slot.
const PendingPaymentTTL = 15 * time.Minute

type Booking struct {
	ID          int64         `json:"id"`
	StoreID     int64         `json:"store_id" validate:"required"`
	CustomerID  int64         `json:"customer_id"`
	StaffID     *int64        `json:"staff_id,omitempty"`
	StartTime   time.Time     `json:"start_time" validate:"required"`
	EndTime     time.Time     `json:"end_time" validate:"required"`
	Status      BookingStatus `json:"status"`
	TotalAmount int           `json:"total_amount" validate:"gte=0"`

	// ExpiresAt is only meaningful while Status is pending_payment. An
	// expired row is logically released: it stops counting against
	// capacity immediately, the physical cancel happens later in the
	// sweeper.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// HoldsCapacity reports whether the booking still occupies its slot at the
// given instant. Every capacity calculation must go through this check
// rather than trusting Status alone.
func (b *Booking) HoldsCapacity(now time.Time) bool {
	if b.Status == BookingCancelled {
		return false
	}
	if b.Status == BookingPendingPayment && b.ExpiresAt != nil && !b.ExpiresAt.After(now) {
		return false
	}
	return true
}

// Overlaps reports interval overlap against [start, end], inclusive on both
// ends.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return !b.StartTime.After(end) && !b.EndTime.Before(start)
}
