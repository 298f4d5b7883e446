package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name     string `gorm:"uniqueIndex;not null" json:"name"` // Unique login-friendly handle
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Phone    string `json:"phone,omitempty"`
	Role     string `gorm:"default:'user'" json:"role"`

	// Login lockout state, mutated only by the auth service.
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LockoutUntil        *time.Time `json:"-"`
	LastLockoutSecs     int        `gorm:"default:0" json:"-"`

	// Password reset; only the hash of the token is ever stored.
	ResetTokenHash      *string    `json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
