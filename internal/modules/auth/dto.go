package auth

import "cleanbook/internal/domain"

// RegisterOwnerRequest creates an organization and its first owner account
// in one step.
type RegisterOwnerRequest struct {
	OrganizationName string `json:"organization_name" binding:"required"`
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone"`
	Password         string `json:"password" binding:"required,min=8"`
}

// RegisterStaffRequest adds a staff member to the caller's organization.
type RegisterStaffRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`
	Password   string `json:"password" binding:"required,min=8"`
	CalendarID string `json:"calendar_id"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}
