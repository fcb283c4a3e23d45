package domain

import "time"

// Customer rows are upserted server-side by the commit_booking procedure;
// the application never inserts them directly.
type Customer struct {
	ID             int64  `json:"id"`
	OrganizationID int64  `json:"organization_id"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Address        string `json:"address"`

	// ChannelUserID links the customer to their messaging-channel account
	// for booking notifications, when they have one.
	ChannelUserID string `json:"channel_user_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
