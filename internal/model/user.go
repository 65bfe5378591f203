package model

import "time"

// Role governs which operations an identity may invoke.
type Role string

const (
	RoleUser   Role = "user"
	RoleVendor Role = "vendor"
	RoleAdmin  Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

// User is keyed by email; the numeric id never leaves the database layer.
type User struct {
	ID        int       `json:"-" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	PhotoURL  *string   `json:"photo_url,omitempty" db:"photo_url"`
	Role      Role      `json:"role" db:"role"`
	IsFraud   bool      `json:"is_fraud" db:"is_fraud"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// RegisterUserRequest carries the self-registration payload. Role is always
// assigned server-side.
type RegisterUserRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Name     string  `json:"name" binding:"required"`
	PhotoURL *string `json:"photo_url"`
}

type IssueTokenRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type SetRoleRequest struct {
	Role Role `json:"role" binding:"required"`
}
