// internal/core/domain/user.go
package domain

import "time"

// UserRole controls what the admin surface lets a user touch.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleViewer  UserRole = "viewer"
)

// User is the remote user profile returned by /users/me and the user
// administration endpoints.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	Role      UserRole  `json:"role,omitempty"`
	CompanyID int       `json:"company_id,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Company is a tenant of the admin surface; finance tracking is scoped
// to one company.
type Company struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the persisted client session: the bearer token plus the
// cached profile of its owner. Only the auth flow writes it; every
// service call reads it.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}
