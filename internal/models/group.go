package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Group struct {
	gorm.Model
	Name        string          `gorm:"not null" json:"name"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"totalAmount"`
	UpiLink     *string         `json:"upiLink"`
	OwnerID     uint            `gorm:"not null;index" json:"ownerId"`
	Owner       User            `json:"owner"`
	Members     []GroupMember   `gorm:"constraint:OnDelete:CASCADE" json:"members"`
}

// GroupMember ties a user to a group together with the share computed
// by the last processed shop payment. Amount and UpiLink are rebuilt in
// full on every split, never appended to.
type GroupMember struct {
	gorm.Model
	GroupID uint            `gorm:"not null;uniqueIndex:idx_group_member" json:"groupId"`
	UserID  uint            `gorm:"not null;uniqueIndex:idx_group_member" json:"userId"`
	User    User            `json:"user"`
	Amount  decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"amount"`
	UpiLink *string         `json:"upiLink"`
}

// IsMember reports whether the user has a member row in the group.
func (g *Group) IsMember(userID uint) bool {
	for _, m := range g.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
