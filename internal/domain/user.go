package domain

import "time"

type Role string

const (
	RoleOwner Role = "owner"
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

type User struct {
	ID             int64      `json:"id"`
	OrganizationID int64      `json:"organization_id"`
	Email          string     `json:"email" gorm:"uniqueIndex" validate:"required,email"`
	PasswordHash   string     `json:"-"`
	Name           string     `json:"name"`
	Phone          string     `json:"phone"`
	Role           Role       `json:"role"`
	CalendarID     string     `json:"calendar_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"-"`
}
