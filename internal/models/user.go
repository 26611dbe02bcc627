package models

import (
	"time"
)

// Role is the single source of authority for a user. The legacy
// superuser/staff flags of older deployments are not carried over.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// User is an account created on first confirmation-code request
// (get-or-create keyed by email).
type User struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Username  string  `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email     string  `gorm:"size:255;not null;uniqueIndex" json:"email"`
	FirstName *string `gorm:"size:50" json:"first_name"`
	LastName  *string `gorm:"size:50" json:"last_name"`
	Bio       *string `gorm:"type:text" json:"bio"`
	Role      Role    `gorm:"size:9;not null;default:'user'" json:"role"`
	// Credential is a bcrypt hash of a random secret assigned at account
	// creation. It is never exposed; it exists so the user-state hash behind
	// confirmation codes cannot be forged from public fields.
	Credential string    `gorm:"size:100;not null" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}
