package split

import (
	"fmt"
	"net/url"
	"strings"
	"testing"

	"splitr/internal/apperr"
	"splitr/internal/models"
	"splitr/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGroupRepo struct {
	groups     map[uint]*models.Group
	saveSplits int
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{groups: make(map[uint]*models.Group)}
}

func (r *fakeGroupRepo) Create(g *models.Group) error { r.groups[g.ID] = g; return nil }

func (r *fakeGroupRepo) GetByID(id uint) (*models.Group, error) {
	if g, ok := r.groups[id]; ok {
		return g, nil
	}
	return nil, repositories.ErrGroupNotFound
}

func (r *fakeGroupRepo) Update(*models.Group) error                      { return nil }
func (r *fakeGroupRepo) ReplaceMembers(uint, []models.GroupMember) error { return nil }
func (r *fakeGroupRepo) AddMembers(uint, []models.GroupMember) error     { return nil }
func (r *fakeGroupRepo) RemoveMember(uint, uint) error                   { return nil }
func (r *fakeGroupRepo) RemoveMemberByUser(uint, uint) error             { return nil }
func (r *fakeGroupRepo) Delete(uint) error                               { return nil }
func (r *fakeGroupRepo) GetOwnedByUser(uint) ([]models.Group, error)     { return nil, nil }
func (r *fakeGroupRepo) GetJoinedByUser(uint) ([]models.Group, error)    { return nil, nil }

func (r *fakeGroupRepo) SaveSplit(g *models.Group) error {
	r.saveSplits++
	r.groups[g.ID] = g
	return nil
}

func testGroup(memberNames ...string) *models.Group {
	g := &models.Group{Name: "trip", OwnerID: 1}
	g.ID = 10
	for i, name := range memberNames {
		u := models.User{Name: name}
		u.ID = uint(i + 2)
		m := models.GroupMember{GroupID: g.ID, UserID: u.ID, User: u}
		m.ID = uint(100 + i)
		g.Members = append(g.Members, m)
	}
	return g
}

func ownerClaims() *models.UserClaims {
	return &models.UserClaims{UserID: 1, Name: "owner", Role: models.RoleUser}
}

func TestProcessShopPayment_EvenSplit(t *testing.T) {
	repo := newFakeGroupRepo()
	group := testGroup("asha", "ravi", "meera")
	require.NoError(t, repo.Create(group))
	svc := NewService(repo)

	result, err := svc.ProcessShopPayment(ownerClaims(), ShopPaymentInput{
		GroupID:     group.ID,
		ShopUpiID:   "shop@upi",
		TotalAmount: 300,
	})
	require.NoError(t, err)

	assert.Equal(t, "trip", result.GroupName)
	assert.Equal(t, "shop@upi", result.ShopUpiID)
	assert.Equal(t, "300", result.TotalAmount)
	assert.Contains(t, result.UpiLink, "am=300")
	assert.Contains(t, result.UpiLink, "cu=INR")
	assert.True(t, strings.HasPrefix(result.UpiLink, "upi://pay?pa="))
	assert.True(t, strings.HasPrefix(result.QR, "data:image/png;base64,"))

	require.Len(t, result.Members, 3)
	for _, m := range result.Members {
		assert.Equal(t, "100.00", m.Amount)
		assert.Contains(t, m.UpiLink, "am=100.00")
		assert.Contains(t, m.UpiLink, "pn="+url.QueryEscape(m.Name))
		assert.True(t, strings.HasPrefix(m.QR, "data:image/png;base64,"))
	}

	// Side effects are persisted: group totals and every member row.
	assert.Equal(t, 1, repo.saveSplits)
	stored := repo.groups[group.ID]
	assert.True(t, stored.TotalAmount.Equal(decimal.NewFromInt(300)))
	require.NotNil(t, stored.UpiLink)
	for _, m := range stored.Members {
		assert.True(t, m.Amount.Equal(decimal.RequireFromString("100.00")))
		require.NotNil(t, m.UpiLink)
	}
}

func TestProcessShopPayment_OverwritesPreviousSplit(t *testing.T) {
	repo := newFakeGroupRepo()
	group := testGroup("asha", "ravi")
	require.NoError(t, repo.Create(group))
	svc := NewService(repo)

	_, err := svc.ProcessShopPayment(ownerClaims(), ShopPaymentInput{GroupID: group.ID, ShopUpiID: "old@upi", TotalAmount: 100})
	require.NoError(t, err)
	result, err := svc.ProcessShopPayment(ownerClaims(), ShopPaymentInput{GroupID: group.ID, ShopUpiID: "new@upi", TotalAmount: 500})
	require.NoError(t, err)

	assert.Equal(t, "250.00", result.Members[0].Amount)
	stored := repo.groups[group.ID]
	assert.True(t, stored.TotalAmount.Equal(decimal.NewFromInt(500)))
	assert.Contains(t, *stored.Members[0].UpiLink, url.QueryEscape("new@upi"))
}

func TestProcessShopPayment_RoundingDriftBounded(t *testing.T) {
	repo := newFakeGroupRepo()
	svc := NewService(repo)

	totals := []float64{100, 99.99, 10, 0.03, 1234.56, 777.77}
	for n := 1; n <= 9; n++ {
		names := make([]string, n)
		for i := range names {
			names[i] = fmt.Sprintf("user%d", i)
		}
		group := testGroup(names...)
		repo.groups[group.ID] = group

		for _, total := range totals {
			result, err := svc.ProcessShopPayment(ownerClaims(), ShopPaymentInput{
				GroupID:     group.ID,
				ShopUpiID:   "shop@upi",
				TotalAmount: total,
			})
			require.NoError(t, err, "total=%v n=%d", total, n)

			share := decimal.RequireFromString(result.Members[0].Amount)
			sum := share.Mul(decimal.NewFromInt(int64(n)))
			drift := sum.Sub(decimal.NewFromFloat(total)).Abs()
			limit := decimal.RequireFromString("0.01").Mul(decimal.NewFromInt(int64(n)))
			assert.True(t, drift.LessThanOrEqual(limit),
				"total=%v n=%d share=%s drift=%s", total, n, share, drift)

			for _, m := range result.Members {
				assert.Equal(t, result.Members[0].Amount, m.Amount, "all members get the same share")
			}
		}
	}
}

func TestProcessShopPayment_Validation(t *testing.T) {
	repo := newFakeGroupRepo()
	group := testGroup("asha")
	require.NoError(t, repo.Create(group))
	empty := &models.Group{Name: "empty", OwnerID: 1}
	empty.ID = 11
	require.NoError(t, repo.Create(empty))
	svc := NewService(repo)

	tests := []struct {
		name    string
		input   ShopPaymentInput
		wantErr error
	}{
		{"missing group", ShopPaymentInput{ShopUpiID: "shop@upi", TotalAmount: 10}, apperr.ErrMissingPaymentFields},
		{"missing handle", ShopPaymentInput{GroupID: group.ID, TotalAmount: 10}, apperr.ErrMissingPaymentFields},
		{"missing amount", ShopPaymentInput{GroupID: group.ID, ShopUpiID: "shop@upi"}, apperr.ErrMissingPaymentFields},
		{"negative amount", ShopPaymentInput{GroupID: group.ID, ShopUpiID: "shop@upi", TotalAmount: -5}, apperr.ErrInvalidAmount},
		{"unknown group", ShopPaymentInput{GroupID: 999, ShopUpiID: "shop@upi", TotalAmount: 10}, apperr.ErrGroupNotFound},
		{"no members", ShopPaymentInput{GroupID: empty.ID, ShopUpiID: "shop@upi", TotalAmount: 10}, apperr.ErrNoMembers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ProcessShopPayment(ownerClaims(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProcessShopPayment_RequiresGroupAccess(t *testing.T) {
	repo := newFakeGroupRepo()
	group := testGroup("asha", "ravi")
	require.NoError(t, repo.Create(group))
	svc := NewService(repo)

	outsider := &models.UserClaims{UserID: 99, Role: models.RoleUser}
	_, err := svc.ProcessShopPayment(outsider, ShopPaymentInput{GroupID: group.ID, ShopUpiID: "shop@upi", TotalAmount: 10})
	assert.ErrorIs(t, err, apperr.ErrNotGroupMember)

	// A member (not the owner) may process, and so may an admin.
	member := &models.UserClaims{UserID: group.Members[0].UserID, Role: models.RoleUser}
	_, err = svc.ProcessShopPayment(member, ShopPaymentInput{GroupID: group.ID, ShopUpiID: "shop@upi", TotalAmount: 10})
	assert.NoError(t, err)

	admin := &models.UserClaims{UserID: 98, Role: models.RoleAdmin}
	_, err = svc.ProcessShopPayment(admin, ShopPaymentInput{GroupID: group.ID, ShopUpiID: "shop@upi", TotalAmount: 10})
	assert.NoError(t, err)
}

func TestGenerateLink(t *testing.T) {
	svc := NewService(newFakeGroupRepo())

	result, err := svc.GenerateLink(LinkInput{UpiID: "friend@upi", Name: "Asha Rao", Amount: 42.5})
	require.NoError(t, err)
	assert.Equal(t, "42.50", result.Amount)
	assert.Contains(t, result.UpiLink, "pa=friend%40upi")
	assert.Contains(t, result.UpiLink, "pn=Asha+Rao")
	assert.Contains(t, result.UpiLink, "am=42.50")
	assert.True(t, strings.HasPrefix(result.QR, "data:image/png;base64,"))

	_, err = svc.GenerateLink(LinkInput{Name: "Asha", Amount: 10})
	assert.ErrorIs(t, err, apperr.ErrMissingLinkFields)
	_, err = svc.GenerateLink(LinkInput{UpiID: "a@b", Amount: 10})
	assert.ErrorIs(t, err, apperr.ErrMissingLinkFields)
	_, err = svc.GenerateLink(LinkInput{UpiID: "a@b", Name: "Asha"})
	assert.ErrorIs(t, err, apperr.ErrMissingLinkFields)
	_, err = svc.GenerateLink(LinkInput{UpiID: "a@b", Name: "Asha", Amount: -1})
	assert.ErrorIs(t, err, apperr.ErrInvalidAmount)
}
