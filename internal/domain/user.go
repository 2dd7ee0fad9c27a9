package domain

import (
	"fmt"
	"time"
)

// UserRole determines what a user may do in the surrounding system.
// Authorization policy itself lives outside this module.
type UserRole string

const (
	RolePriest    UserRole = "PRIEST"
	RoleVolunteer UserRole = "VOLUNTEER"
	RoleTreasurer UserRole = "TREASURER"
	RoleAdmin     UserRole = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RolePriest, RoleVolunteer, RoleTreasurer, RoleAdmin:
		return true
	}
	return false
}

// ParseUserRole maps a wire value onto a UserRole.
func ParseUserRole(s string) (UserRole, error) {
	r := UserRole(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown user role %q", s)
	}
	return r, nil
}

// User represents an account holder: priest, volunteer, treasurer or admin.
type User struct {
	ID             int64
	Email          string // Unique email address
	HashedPassword string // Never the plaintext (not returned in API)
	FirstName      string
	LastName       string
	Phone          string
	Role           UserRole
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName returns "First Last" for display.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserFilter narrows user listings. Zero values mean "no filter".
type UserFilter struct {
	Search   string // first name, last name or email, substring match
	Role     UserRole
	IsActive *bool
}

// UserRepository defines data access for users
type UserRepository interface {
	Create(user *User) error
	GetByID(id int64) (*User, error)
	GetByEmail(email string) (*User, error)
	Update(user *User) error
	Delete(id int64) error
	List(filter UserFilter, skip, limit int) ([]*User, error)
	Count(filter UserFilter) (int, error)
}
