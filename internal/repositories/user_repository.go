package repositories

import (
	"errors"

	"splitr/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrGroupNotFound     = errors.New("group not found")
	ErrMemberNotFound    = errors.New("member not found")
	ErrDatabaseOperation = errors.New("database operation failed")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// GetByID retrieves a user by their ID
	GetByID(id uint) (*models.User, error)

	// GetByEmail retrieves a user by their email address
	GetByEmail(email string) (*models.User, error)

	// GetByName retrieves a user by their unique username
	GetByName(name string) (*models.User, error)

	// GetByNames resolves a list of usernames; any miss yields ErrUserNotFound
	GetByNames(names []string) ([]*models.User, error)

	// GetByResetTokenHash retrieves the user holding an active reset token hash
	GetByResetTokenHash(hash string) (*models.User, error)

	// Update persists changes to an existing user
	Update(user *models.User) error

	// Count returns the total number of users
	Count() (int64, error)
}
