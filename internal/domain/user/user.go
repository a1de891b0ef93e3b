package user

import (
	"time"

	"github.com/google/uuid"
)

// Role controls access to the admin back-office.
type Role string

const (
	RoleParent Role = "parent"
	RoleAdmin  Role = "admin"
)

// User represents an account in the system. Parents own registrations;
// admins manage the catalog and back-office.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Email        string    `json:"email" gorm:"unique;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	FirstName    string    `json:"first_name" gorm:"not null"`
	LastName     string    `json:"last_name" gorm:"not null"`
	Phone        string    `json:"phone"`
	Role         Role      `json:"role" gorm:"type:text;not null;default:parent"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// FullName returns the full name of the user
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsAdmin reports whether the user may access admin operations.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Projection is the minimal user view joined onto registrations.
type Projection struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// Project returns the minimal view of the user.
func (u *User) Project() Projection {
	return Projection{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// SignupRequest represents the request to create an account
type SignupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"required,min=1,max=50"`
	LastName  string `json:"last_name" validate:"required,min=1,max=50"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
}

// LoginRequest represents a credentials check
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
