package catalog

import (
	"encoding/json"

	"cleanbook/internal/domain"
)

type CreateServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int    `json:"price" binding:"gte=0"`
	DurationMin int    `json:"duration_minutes" binding:"required,gt=0"`
	BufferMin   int    `json:"buffer_minutes" binding:"gte=0"`
}

type CreateOptionRequest struct {
	Name        string `json:"name" binding:"required"`
	Price       int    `json:"price" binding:"gte=0"`
	DurationMin int    `json:"duration_minutes" binding:"gte=0"`
}

type UpdateHoursRequest struct {
	// BusinessHours holds the per-weekday schedule keyed by mon..sun. Each
	// entry is either a ["HH:MM","HH:MM"] pair or an object with open,
	// close and an optional isOpen flag.
	BusinessHours json.RawMessage `json:"business_hours" binding:"required"`
}

type UpdateCapacityRequest struct {
	MaxCapacity *int                    `json:"max_capacity"`
	Mode        *domain.AvailabilityMode `json:"availability_mode"`
}

type StorePageResponse struct {
	Store    *domain.Store    `json:"store"`
	Services []domain.Service `json:"services"`
}
