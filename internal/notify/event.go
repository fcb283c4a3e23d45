package notify

import "time"

// BookingCreatedTopic is the event-bus topic the async dispatch mode uses.
const BookingCreatedTopic = "booking:created"

// BookingEvent carries everything the side-effect consumers need so they
// never have to read the database themselves.
type BookingEvent struct {
	BookingID      int64     `json:"booking_id"`
	StoreID        int64     `json:"store_id"`
	OrganizationID int64     `json:"organization_id"`
	CustomerID     int64     `json:"customer_id"`
	CustomerName   string    `json:"customer_name"`
	ChannelUserID  string    `json:"channel_user_id,omitempty"`
	StaffID        *int64    `json:"staff_id,omitempty"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	TotalAmount    int       `json:"total_amount"`
	Status         string    `json:"status"`

	// CalendarSyncEnabled reflects the organization's plan; the dispatcher
	// skips calendar push when it is false.
	CalendarSyncEnabled bool `json:"-"`
}
