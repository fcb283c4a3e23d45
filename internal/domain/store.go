package domain

import (
	"encoding/json"
	"time"
)

type AvailabilityMode string

const (
	AvailabilityCapacityPool AvailabilityMode = "capacity_pool"
	AvailabilityStaffShift   AvailabilityMode = "staff_shift"
)

// DefaultMaxCapacity applies when a store has no explicit concurrent-job ceiling.
const DefaultMaxCapacity = 3

type Store struct {
	ID             int64            `json:"id"`
	OrganizationID int64            `json:"organization_id"`
	Slug           string           `json:"slug" gorm:"uniqueIndex"`
	Name           string           `json:"name"`
	Address        string           `json:"address"`
	Phone          string           `json:"phone"`
	MaxCapacity    int              `json:"max_capacity"`
	Mode           AvailabilityMode `json:"availability_mode" gorm:"column:availability_mode"`

	// BusinessHours is the per-weekday schedule keyed by lower-cased
	// 3-letter weekday codes ("mon".."sun"). Older tenants still carry it
	// inside Settings under "business_hours"; the top-level field wins.
	BusinessHours json.RawMessage `json:"business_hours,omitempty" gorm:"type:jsonb"`
	Settings      json.RawMessage `json:"settings,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

func (s *Store) Capacity() int {
	if s.MaxCapacity > 0 {
		return s.MaxCapacity
	}
	return DefaultMaxCapacity
}

func (s *Store) SlotMode() AvailabilityMode {
	if s.Mode == AvailabilityStaffShift {
		return AvailabilityStaffShift
	}
	return AvailabilityCapacityPool
}
