package domain

import (
	"encoding/json"
	"time"
)

// AuditRecord is an append-only trace of a booking mutation. Writes are
// best-effort: a failed append never fails the operation it describes.
type AuditRecord struct {
	ID             string          `json:"id" gorm:"primaryKey"`
	OrganizationID int64           `json:"organization_id"`
	StoreID        int64           `json:"store_id"`
	BookingID      int64           `json:"booking_id"`
	Action         string          `json:"action"`
	Detail         json.RawMessage `json:"detail,omitempty" gorm:"type:jsonb"`
	CreatedAt      time.Time       `json:"created_at"`
}
