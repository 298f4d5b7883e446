package repositories

import "splitr/internal/models"

// GroupRepository defines the interface for group-related database operations.
type GroupRepository interface {
	// Create persists a new group together with its member rows
	Create(group *models.Group) error

	// GetByID loads a group with its owner and members (member users preloaded)
	GetByID(id uint) (*models.Group, error)

	// Update persists changes to the group's own columns (name, total, link)
	Update(group *models.Group) error

	// ReplaceMembers drops all member rows and creates the given ones
	ReplaceMembers(groupID uint, members []models.GroupMember) error

	// AddMembers appends member rows
	AddMembers(groupID uint, members []models.GroupMember) error

	// RemoveMember deletes a member row by its ID
	RemoveMember(groupID, memberID uint) error

	// RemoveMemberByUser deletes the member row belonging to a user
	RemoveMemberByUser(groupID, userID uint) error

	// Delete hard-deletes the group and its member rows
	Delete(groupID uint) error

	// SaveSplit persists a computed split: group totals/link plus every member row
	SaveSplit(group *models.Group) error

	// GetOwnedByUser lists groups owned by a user
	GetOwnedByUser(userID uint) ([]models.Group, error)

	// GetJoinedByUser lists groups the user is a member of
	GetJoinedByUser(userID uint) ([]models.Group, error)
}
