package domain

import "time"

// Service is a bookable cleaning service sold by a store. Prices are integer
// currency units; durations are minutes. BufferMin is setup/teardown time
// that extends the duration but is never billed.
type Service struct {
	ID          int64  `json:"id"`
	StoreID     int64  `json:"store_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int    `json:"price" validate:"gte=0"`
	DurationMin int    `json:"duration_min" validate:"gte=0"`
	BufferMin   int    `json:"buffer_min"`
	Active      bool   `json:"active"`

	Options []ServiceOption `json:"options,omitempty" gorm:"foreignKey:ServiceID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ServiceOption is an additive add-on applied once per unit of the service
// it belongs to.
type ServiceOption struct {
	ID          int64  `json:"id"`
	ServiceID   int64  `json:"service_id"`
	Name        string `json:"name"`
	Price       int    `json:"price" validate:"gte=0"`
	DurationMin int    `json:"duration_min" validate:"gte=0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartItem is one line of a booking cart. Quantity zero is allowed and
// contributes nothing.
type CartItem struct {
	ServiceID       int64   `json:"service_id" binding:"required"`
	Quantity        int     `json:"quantity"`
	SelectedOptions []int64 `json:"selected_options,omitempty"`
}
