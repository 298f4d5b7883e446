// Package group implements group lifecycle and membership rules.
// Mutations are gated to the owner or an admin; members may only
// remove themselves.
package group

import (
	"errors"
	"strings"

	"splitr/internal/apperr"
	"splitr/internal/models"
	"splitr/internal/repositories"

	"github.com/shopspring/decimal"
)

type CreateInput struct {
	Name      string   `json:"name"`
	Usernames []string `json:"usernames"`
}

type UpdateInput struct {
	Name        *string   `json:"name"`
	TotalAmount *float64  `json:"totalAmount"`
	Usernames   *[]string `json:"usernames"`
}

// AddResult carries the outcome of an add-members call.
type AddResult struct {
	Group   *models.Group
	Added   int
	Message string
}

type Service interface {
	Create(ownerID uint, input CreateInput) (*models.Group, error)
	Get(requester *models.UserClaims, groupID uint) (*models.Group, error)
	Update(requester *models.UserClaims, groupID uint, input UpdateInput) (*models.Group, error)
	AddMembers(requester *models.UserClaims, groupID uint, usernames []string) (*AddResult, error)
	RemoveMember(requester *models.UserClaims, groupID, memberID uint) error
	Leave(requesterID uint, groupID uint) error
	Delete(requester *models.UserClaims, groupID uint) error
}

type service struct {
	groupRepo repositories.GroupRepository
	userRepo  repositories.UserRepository
}

func NewService(groupRepo repositories.GroupRepository, userRepo repositories.UserRepository) Service {
	return &service{
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

func (s *service) Create(ownerID uint, input CreateInput) (*models.Group, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, apperr.ErrMissingGroupName
	}

	// Resolve every username before anything is persisted; one miss
	// fails the whole create.
	members, err := s.resolveMembers(input.Usernames, nil)
	if err != nil {
		return nil, err
	}

	group := &models.Group{
		Name:    input.Name,
		OwnerID: ownerID,
		Members: members,
	}
	if err := s.groupRepo.Create(group); err != nil {
		return nil, err
	}
	return s.groupRepo.GetByID(group.ID)
}

func (s *service) Get(requester *models.UserClaims, groupID uint) (*models.Group, error) {
	group, err := s.load(groupID)
	if err != nil {
		return nil, err
	}
	if !s.canView(group, requester) {
		return nil, apperr.ErrNotGroupMember
	}
	return group, nil
}

func (s *service) Update(requester *models.UserClaims, groupID uint, input UpdateInput) (*models.Group, error) {
	group, err := s.load(groupID)
	if err != nil {
		return nil, err
	}
	if !s.canMutate(group, requester) {
		return nil, apperr.ErrNotGroupOwner
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperr.ErrMissingGroupName
		}
		group.Name = name
	}
	if input.TotalAmount != nil {
		group.TotalAmount = decimal.NewFromFloat(*input.TotalAmount)
	}
	if err := s.groupRepo.Update(group); err != nil {
		return nil, err
	}

	// Replacing the member list rebuilds every row, discarding any
	// previously computed amounts and links.
	if input.Usernames != nil {
		members, err := s.resolveMembers(*input.Usernames, nil)
		if err != nil {
			return nil, err
		}
		if err := s.groupRepo.ReplaceMembers(group.ID, members); err != nil {
			return nil, err
		}
	}
	return s.groupRepo.GetByID(group.ID)
}

func (s *service) AddMembers(requester *models.UserClaims, groupID uint, usernames []string) (*AddResult, error) {
	group, err := s.load(groupID)
	if err != nil {
		return nil, err
	}
	if !s.canMutate(group, requester) {
		return nil, apperr.ErrNotGroupOwner
	}

	present := make(map[uint]bool, len(group.Members))
	for _, m := range group.Members {
		present[m.UserID] = true
	}
	newMembers, err := s.resolveMembers(usernames, present)
	if err != nil {
		return nil, err
	}

	if len(newMembers) == 0 {
		return &AddResult{Group: group, Added: 0, Message: "all members already in group"}, nil
	}
	if err := s.groupRepo.AddMembers(groupID, newMembers); err != nil {
		return nil, err
	}

	updated, err := s.groupRepo.GetByID(groupID)
	if err != nil {
		return nil, err
	}
	return &AddResult{Group: updated, Added: len(newMembers), Message: "members added"}, nil
}

func (s *service) RemoveMember(requester *models.UserClaims, groupID, memberID uint) error {
	group, err := s.load(groupID)
	if err != nil {
		return err
	}
	if !s.canMutate(group, requester) {
		return apperr.ErrNotGroupOwner
	}
	if err := s.groupRepo.RemoveMember(groupID, memberID); err != nil {
		if errors.Is(err, repositories.ErrMemberNotFound) {
			return apperr.ErrMemberNotFound
		}
		return err
	}
	return nil
}

func (s *service) Leave(requesterID uint, groupID uint) error {
	group, err := s.load(groupID)
	if err != nil {
		return err
	}
	if group.OwnerID == requesterID {
		return apperr.ErrOwnerCannotLeave
	}
	if !group.IsMember(requesterID) {
		return apperr.ErrNotGroupMember
	}
	if err := s.groupRepo.RemoveMemberByUser(groupID, requesterID); err != nil {
		if errors.Is(err, repositories.ErrMemberNotFound) {
			return apperr.ErrMemberNotFound
		}
		return err
	}
	return nil
}

func (s *service) Delete(requester *models.UserClaims, groupID uint) error {
	group, err := s.load(groupID)
	if err != nil {
		return err
	}
	if !s.canMutate(group, requester) {
		return apperr.ErrNotGroupOwner
	}
	return s.groupRepo.Delete(groupID)
}

// resolveMembers turns usernames into fresh member rows, skipping
// duplicates and any user already in skip. A username that does not
// resolve fails the whole call.
func (s *service) resolveMembers(usernames []string, skip map[uint]bool) ([]models.GroupMember, error) {
	seen := make(map[uint]bool, len(usernames))
	members := make([]models.GroupMember, 0, len(usernames))
	for _, raw := range usernames {
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, apperr.ErrUnknownUsernames
		}
		user, err := s.userRepo.GetByName(name)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil, apperr.ErrUnknownUsernames
			}
			return nil, err
		}
		if seen[user.ID] || (skip != nil && skip[user.ID]) {
			continue
		}
		seen[user.ID] = true
		members = append(members, models.GroupMember{UserID: user.ID})
	}
	return members, nil
}

func (s *service) load(groupID uint) (*models.Group, error) {
	group, err := s.groupRepo.GetByID(groupID)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return nil, apperr.ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

func (s *service) canMutate(g *models.Group, requester *models.UserClaims) bool {
	return g.OwnerID == requester.UserID || requester.IsAdmin()
}

func (s *service) canView(g *models.Group, requester *models.UserClaims) bool {
	return s.canMutate(g, requester) || g.IsMember(requester.UserID)
}
