package booking

import (
	"time"

	"cleanbook/internal/domain"
	"cleanbook/internal/modules/pricing"
)

type CustomerInput struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`

	// ChannelUserID ties the customer to their messaging-channel account
	// for the post-booking push; optional.
	ChannelUserID string `json:"channel_user_id"`
}

type CreateBookingRequest struct {
	StoreSlug     string               `json:"store_slug" binding:"required"`
	Customer      CustomerInput        `json:"customer" binding:"required"`
	StartTime     time.Time            `json:"start_time" binding:"required"`
	PaymentMethod domain.PaymentMethod `json:"payment_method" binding:"required,oneof=on_site online_card"`
	CartItems     []domain.CartItem    `json:"cart_items" binding:"required,min=1"`
	StaffID       *int64               `json:"staff_id"`
}

type CreateBookingResult struct {
	BookingID        int64                 `json:"booking_id"`
	CustomerID       int64                 `json:"customer_id"`
	StoreID          int64                 `json:"store_id"`
	OrganizationID   int64                 `json:"organization_id"`
	Status           domain.BookingStatus  `json:"status"`
	StartTime        time.Time             `json:"start_time"`
	EndTime          time.Time             `json:"end_time"`
	ExpiresAt        *time.Time            `json:"expires_at,omitempty"`
	TotalAmount      int                   `json:"total_amount"`
	TotalDurationMin int                   `json:"total_duration_minutes"`
	Breakdown        []pricing.LineBreakdown `json:"item_breakdown"`
}

type CancelBookingResult struct {
	BookingID int64 `json:"booking_id"`
	Fee       int   `json:"cancellation_fee"`
}
