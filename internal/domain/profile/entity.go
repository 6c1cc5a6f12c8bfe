package profile

import "time"

// Role enum
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
	RoleCast  Role = "cast"
)

// Profile is a store member. Only casts carry a salary system.
type Profile struct {
	ID             string
	StoreID        string
	DisplayName    string
	Role           Role
	SalarySystemID *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
