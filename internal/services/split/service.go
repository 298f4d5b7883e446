// Package split divides a shop payment evenly across a group's members
// and generates UPI deep links plus QR images for each share.
package split

import (
	"errors"

	"splitr/internal/apperr"
	"splitr/internal/models"
	"splitr/internal/repositories"

	"github.com/shopspring/decimal"
)

type Service interface {
	ProcessShopPayment(requester *models.UserClaims, input ShopPaymentInput) (*ShopPaymentResult, error)
	GenerateLink(input LinkInput) (*LinkResult, error)
}

type service struct {
	groupRepo repositories.GroupRepository
}

func NewService(groupRepo repositories.GroupRepository) Service {
	return &service{groupRepo: groupRepo}
}

// ProcessShopPayment computes an equal split, overwrites the group and
// member amounts/links, persists everything, and returns the result.
// Earlier split values are replaced in full, never appended to.
func (s *service) ProcessShopPayment(requester *models.UserClaims, input ShopPaymentInput) (*ShopPaymentResult, error) {
	if input.GroupID == 0 || input.ShopUpiID == "" || input.TotalAmount == 0 {
		return nil, apperr.ErrMissingPaymentFields
	}
	if input.TotalAmount < 0 {
		return nil, apperr.ErrInvalidAmount
	}

	group, err := s.groupRepo.GetByID(input.GroupID)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return nil, apperr.ErrGroupNotFound
		}
		return nil, err
	}
	if group.OwnerID != requester.UserID && !requester.IsAdmin() && !group.IsMember(requester.UserID) {
		return nil, apperr.ErrNotGroupMember
	}
	if len(group.Members) == 0 {
		return nil, apperr.ErrNoMembers
	}

	total := decimal.NewFromFloat(input.TotalAmount)
	share := Share(total, len(group.Members))

	groupLink := GroupLink(input.ShopUpiID, total)
	group.TotalAmount = total
	group.UpiLink = &groupLink

	result := &ShopPaymentResult{
		GroupID:     group.ID,
		GroupName:   group.Name,
		ShopUpiID:   input.ShopUpiID,
		TotalAmount: total.String(),
		UpiLink:     groupLink,
		Members:     make([]MemberShare, 0, len(group.Members)),
	}
	if result.QR, err = renderQR(groupLink); err != nil {
		return nil, err
	}

	for i := range group.Members {
		m := &group.Members[i]
		link := MemberLink(input.ShopUpiID, m.User.Name, share)
		m.Amount = share
		m.UpiLink = &link

		qr, err := renderQR(link)
		if err != nil {
			return nil, err
		}
		result.Members = append(result.Members, MemberShare{
			ID:      m.ID,
			UserID:  m.UserID,
			Name:    m.User.Name,
			Amount:  share.StringFixed(2),
			UpiLink: link,
			QR:      qr,
		})
	}

	if err := s.groupRepo.SaveSplit(group); err != nil {
		return nil, err
	}
	return result, nil
}

// GenerateLink builds a single standalone payment link, no group involved.
func (s *service) GenerateLink(input LinkInput) (*LinkResult, error) {
	if input.UpiID == "" || input.Name == "" || input.Amount == 0 {
		return nil, apperr.ErrMissingLinkFields
	}
	if input.Amount < 0 {
		return nil, apperr.ErrInvalidAmount
	}

	amount := decimal.NewFromFloat(input.Amount).Round(2)
	link := MemberLink(input.UpiID, input.Name, amount)
	qr, err := renderQR(link)
	if err != nil {
		return nil, err
	}
	return &LinkResult{
		UpiID:   input.UpiID,
		Name:    input.Name,
		Amount:  amount.StringFixed(2),
		UpiLink: link,
		QR:      qr,
	}, nil
}
