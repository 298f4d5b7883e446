package repositories

import (
	"context"
	"log"

	"splitr/internal/models"
	"splitr/internal/repositories/cache"

	"gorm.io/gorm"
)

type groupRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewGroupRepository creates a new instance of GroupRepository.
func NewGroupRepository(db *gorm.DB, cache *cache.CacheService) GroupRepository {
	return &groupRepository{
		db:    db,
		cache: cache,
	}
}

func (r *groupRepository) Create(group *models.Group) error {
	if err := r.db.Create(group).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *groupRepository) GetByID(id uint) (*models.Group, error) {
	if r.cache != nil {
		if group, err := r.cache.GetGroup(context.Background(), id); err == nil {
			return group, nil
		}
	}

	var group models.Group
	err := r.db.Preload("Owner").
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("group_members.id") }).
		Preload("Members.User").
		First(&group, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrGroupNotFound
		}
		return nil, ErrDatabaseOperation
	}

	if r.cache != nil {
		if err := r.cache.CacheGroup(context.Background(), &group); err != nil {
			log.Printf("failed to cache group %d: %v", group.ID, err)
		}
	}
	return &group, nil
}

func (r *groupRepository) Update(group *models.Group) error {
	err := r.db.Model(&models.Group{}).Where("id = ?", group.ID).
		Updates(map[string]interface{}{
			"name":         group.Name,
			"total_amount": group.TotalAmount,
			"upi_link":     group.UpiLink,
		}).Error
	if err != nil {
		return ErrDatabaseOperation
	}
	r.invalidate(group.ID)
	return nil
}

func (r *groupRepository) ReplaceMembers(groupID uint, members []models.GroupMember) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("group_id = ?", groupID).
			Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		if len(members) == 0 {
			return nil
		}
		for i := range members {
			members[i].GroupID = groupID
		}
		return tx.Create(&members).Error
	})
	if err != nil {
		return ErrDatabaseOperation
	}
	r.invalidate(groupID)
	return nil
}

func (r *groupRepository) AddMembers(groupID uint, members []models.GroupMember) error {
	if len(members) == 0 {
		return nil
	}
	for i := range members {
		members[i].GroupID = groupID
	}
	if err := r.db.Create(&members).Error; err != nil {
		return ErrDatabaseOperation
	}
	r.invalidate(groupID)
	return nil
}

func (r *groupRepository) RemoveMember(groupID, memberID uint) error {
	result := r.db.Unscoped().
		Where("group_id = ? AND id = ?", groupID, memberID).
		Delete(&models.GroupMember{})
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	r.invalidate(groupID)
	return nil
}

func (r *groupRepository) RemoveMemberByUser(groupID, userID uint) error {
	result := r.db.Unscoped().
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupMember{})
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	r.invalidate(groupID)
	return nil
}

func (r *groupRepository) Delete(groupID uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("group_id = ?", groupID).
			Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		result := tx.Unscoped().Delete(&models.Group{}, groupID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err == gorm.ErrRecordNotFound {
		return ErrGroupNotFound
	}
	if err != nil {
		return ErrDatabaseOperation
	}
	r.invalidate(groupID)
	return nil
}

func (r *groupRepository) SaveSplit(group *models.Group) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Group{}).Where("id = ?", group.ID).
			Updates(map[string]interface{}{
				"total_amount": group.TotalAmount,
				"upi_link":     group.UpiLink,
			}).Error; err != nil {
			return err
		}
		for i := range group.Members {
			m := &group.Members[i]
			if err := tx.Model(&models.GroupMember{}).Where("id = ?", m.ID).
				Updates(map[string]interface{}{
					"amount":   m.Amount,
					"upi_link": m.UpiLink,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return ErrDatabaseOperation
	}
	r.invalidate(group.ID)
	return nil
}

func (r *groupRepository) GetOwnedByUser(userID uint) ([]models.Group, error) {
	var groups []models.Group
	if err := r.db.Where("owner_id = ?", userID).Find(&groups).Error; err != nil {
		return nil, ErrDatabaseOperation
	}
	return groups, nil
}

func (r *groupRepository) GetJoinedByUser(userID uint) ([]models.Group, error) {
	var groups []models.Group
	err := r.db.
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).
		Find(&groups).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return groups, nil
}

func (r *groupRepository) invalidate(groupID uint) {
	if r.cache == nil {
		return
	}
	if err := r.cache.InvalidateGroup(context.Background(), groupID); err != nil {
		log.Printf("failed to invalidate group cache %d: %v", groupID, err)
	}
}
