package domain

import "time"

type Plan string

const (
	PlanFree     Plan = "free"
	PlanStandard Plan = "standard"
	PlanPro      Plan = "pro"
)

type Organization struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Plan      Plan      `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Channel push and calendar sync are paid features.
func (o *Organization) NotificationsEnabled() bool {
	return o.Plan == PlanStandard || o.Plan == PlanPro
}

func (o *Organization) CalendarSyncEnabled() bool {
	return o.Plan == PlanPro
}
