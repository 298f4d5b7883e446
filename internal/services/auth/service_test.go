package auth

import (
	"errors"
	"testing"
	"time"

	"splitr/internal/apperr"
	"splitr/internal/models"
	"splitr/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users   map[uint]*models.User
	nextID  uint
	updates int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) GetByName(name string) (*models.User, error) {
	for _, u := range r.users {
		if u.Name == name {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) GetByNames(names []string) ([]*models.User, error) {
	users := make([]*models.User, 0, len(names))
	for _, name := range names {
		u, err := r.GetByName(name)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *fakeUserRepo) GetByResetTokenHash(hash string) (*models.User, error) {
	for _, u := range r.users {
		if u.ResetTokenHash != nil && *u.ResetTokenHash == hash {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Update(user *models.User) error {
	r.updates++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Count() (int64, error) {
	return int64(len(r.users)), nil
}

type fakeGroupRepo struct{}

func (r *fakeGroupRepo) Create(*models.Group) error                          { return nil }
func (r *fakeGroupRepo) GetByID(uint) (*models.Group, error)                 { return nil, repositories.ErrGroupNotFound }
func (r *fakeGroupRepo) Update(*models.Group) error                          { return nil }
func (r *fakeGroupRepo) ReplaceMembers(uint, []models.GroupMember) error     { return nil }
func (r *fakeGroupRepo) AddMembers(uint, []models.GroupMember) error         { return nil }
func (r *fakeGroupRepo) RemoveMember(uint, uint) error                       { return nil }
func (r *fakeGroupRepo) RemoveMemberByUser(uint, uint) error                 { return nil }
func (r *fakeGroupRepo) Delete(uint) error                                   { return nil }
func (r *fakeGroupRepo) SaveSplit(*models.Group) error                       { return nil }
func (r *fakeGroupRepo) GetOwnedByUser(uint) ([]models.Group, error)         { return nil, nil }
func (r *fakeGroupRepo) GetJoinedByUser(uint) ([]models.Group, error)        { return nil, nil }

type fakeMailer struct {
	sent []string
	fail bool
}

func (m *fakeMailer) SendPasswordReset(toEmail, toName, resetURL string) error {
	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.sent = append(m.sent, resetURL)
	return nil
}

func newTestService(repo *fakeUserRepo) (Service, *fakeMailer) {
	mail := &fakeMailer{}
	return NewService(repo, &fakeGroupRepo{}, mail, "test-secret"), mail
}

func seedUser(t *testing.T, repo *fakeUserRepo, name, email, password string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &models.User{Name: name, Email: email, Password: string(hashed), Role: models.RoleUser}
	require.NoError(t, repo.Create(user))
	return user
}

func TestRegister_FirstUserBecomesAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestService(repo)

	first, err := svc.Register(RegisterInput{Name: "asha", Email: "asha@example.com", Password: "pass!word1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, first.Role)

	second, err := svc.Register(RegisterInput{Name: "ravi", Email: "ravi@example.com", Password: "pass!word1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, second.Role)
}

func TestRegister_Validation(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestService(repo)
	seedUser(t, repo, "asha", "asha@example.com", "pass!word1")

	tests := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{"missing fields", RegisterInput{Name: "x"}, apperr.ErrMissingRegistrationFields},
		{"bad email", RegisterInput{Name: "x", Email: "not-an-email", Password: "pass!word1"}, apperr.ErrMissingRegistrationFields},
		{"weak password", RegisterInput{Name: "x", Email: "x@example.com", Password: "short"}, apperr.ErrWeakPassword},
		{"no special char", RegisterInput{Name: "x", Email: "x@example.com", Password: "longenoughpassword"}, apperr.ErrWeakPassword},
		{"email taken", RegisterInput{Name: "other", Email: "asha@example.com", Password: "pass!word1"}, apperr.ErrEmailTaken},
		{"name taken", RegisterInput{Name: "asha", Email: "new@example.com", Password: "pass!word1"}, apperr.ErrNameTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLogin_Success(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestService(repo)
	user := seedUser(t, repo, "asha", "asha@example.com", "pass!word1")

	// Stale lockout state from a previous window must be wiped.
	past := time.Now().Add(-time.Minute)
	user.FailedLoginAttempts = 5
	user.LockoutUntil = &past
	user.LastLockoutSecs = 60

	got, token, err := svc.Login("asha@example.com", "pass!word1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, 0, got.FailedLoginAttempts)
	assert.Nil(t, got.LockoutUntil)
	assert.Equal(t, 0, got.LastLockoutSecs)
}

func TestLogin_InvalidInputs(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestService(repo)

	_, _, err := svc.Login("", "pass")
	assert.ErrorIs(t, err, apperr.ErrMissingCredentials)

	_, _, err = svc.Login("ghost@example.com", "pass!word1")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestLogin_FailureProgression(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestService(repo)
	user := seedUser(t, repo, "asha", "asha@example.com", "pass!word1")

	// Three wrong attempts: incorrect password with 2, 1, 0 remaining.
	wantRemaining := []int{2, 1, 0}
	wantNext := []int{30, 30, 60}
	for i := 0; i < 3; i++ {
		_, _, err := svc.Login("asha@example.com", "wrong")
		var bad *BadPasswordError
		require.ErrorAs(t, err, &bad, "attempt %d", i+1)
		assert.Equal(t, wantRemaining[i], bad.AttemptsRemaining, "attempt %d", i+1)
		assert.Equal(t, wantNext[i], bad.NextLockoutSeconds, "attempt %d", i+1)
		assert.Nil(t, user.LockoutUntil, "no lockout before the fourth attempt")
	}

	// Fourth wrong attempt opens a 60 second window and projects a
	// doubled follow-up.
	before := time.Now()
	_, _, err := svc.Login("asha@example.com", "wrong")
	var triggered *LockoutTriggeredError
	require.ErrorAs(t, err, &triggered)
	assert.Equal(t, 60, triggered.Seconds)
	assert.Equal(t, 120, triggered.NextLockoutSeconds)
	assert.Equal(t, "1 minute", triggered.HumanDuration())

	assert.Equal(t, 4, user.FailedLoginAttempts)
	assert.Equal(t, 60, user.LastLockoutSecs)
	require.NotNil(t, user.LockoutUntil)
	assert.WithinDuration(t, before.Add(60*time.Second), *user.LockoutUntil, 2*time.Second)
}

func TestLogin_GatedWhileLockedOut(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestService(repo)
	user := seedUser(t, repo, "asha", "asha@example.com", "pass!word1")

	until := time.Now().Add(45 * time.Second)
	user.FailedLoginAttempts = 4
	user.LockoutUntil = &until
	repo.updates = 0

	// Even the correct password is rejected during the window, and the
	// counters are left untouched.
	_, _, err := svc.Login("asha@example.com", "pass!word1")
	var active *LockoutActiveError
	require.ErrorAs(t, err, &active)
	assert.Greater(t, active.SecondsRemaining, 0)
	assert.LessOrEqual(t, active.SecondsRemaining, 45)
	assert.Equal(t, 4, user.FailedLoginAttempts)
	assert.Equal(t, 0, repo.updates, "gated attempts must not persist anything")
}

func TestForgotPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc, mail := newTestService(repo)
	user := seedUser(t, repo, "asha", "asha@example.com", "pass!word1")

	token, err := svc.ForgotPassword("asha@example.com", "http://localhost:5173")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	require.NotNil(t, user.ResetTokenHash)
	assert.NotEqual(t, token, *user.ResetTokenHash, "plaintext token must never be stored")
	require.NotNil(t, user.ResetTokenExpiresAt)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), *user.ResetTokenExpiresAt, 2*time.Second)
	require.Len(t, mail.sent, 1)
	assert.Contains(t, mail.sent[0], token)
}

func TestForgotPassword_UnknownEmailIsSilent(t *testing.T) {
	repo := newFakeUserRepo()
	svc, mail := newTestService(repo)

	token, err := svc.ForgotPassword("ghost@example.com", "http://localhost:5173")
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Empty(t, mail.sent)
}

func TestForgotPassword_SendFailureRollsBackToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc, mail := newTestService(repo)
	user := seedUser(t, repo, "asha", "asha@example.com", "pass!word1")
	mail.fail = true

	_, err := svc.ForgotPassword("asha@example.com", "http://localhost:5173")
	require.Error(t, err)
	assert.Nil(t, user.ResetTokenHash)
	assert.Nil(t, user.ResetTokenExpiresAt)
}

func TestResetPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestService(repo)
	user := seedUser(t, repo, "asha", "asha@example.com", "pass!word1")

	token, err := svc.ForgotPassword("asha@example.com", "http://localhost:5173")
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(token, "fresh!word2"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("fresh!word2")))
	assert.Nil(t, user.ResetTokenHash)
	assert.Nil(t, user.ResetTokenExpiresAt)

	// Single use: the same token is dead after a successful reset.
	err = svc.ResetPassword(token, "another!word3")
	assert.ErrorIs(t, err, apperr.ErrInvalidResetToken)
}

func TestResetPassword_Expired(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestService(repo)
	user := seedUser(t, repo, "asha", "asha@example.com", "pass!word1")

	token, err := svc.ForgotPassword("asha@example.com", "http://localhost:5173")
	require.NoError(t, err)

	// Age the token past its window; the hash still matches but the
	// expiry check must win.
	expired := time.Now().Add(-time.Minute)
	user.ResetTokenExpiresAt = &expired

	err = svc.ResetPassword(token, "fresh!word2")
	assert.ErrorIs(t, err, apperr.ErrInvalidResetToken)
}

func TestChangePassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestService(repo)
	user := seedUser(t, repo, "asha", "asha@example.com", "pass!word1")

	err := svc.ChangePassword(user.ID, "nope", "fresh!word2")
	assert.ErrorIs(t, err, apperr.ErrIncorrectPassword)

	err = svc.ChangePassword(user.ID, "pass!word1", "short")
	assert.ErrorIs(t, err, apperr.ErrWeakPassword)

	require.NoError(t, svc.ChangePassword(user.ID, "pass!word1", "fresh!word2"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("fresh!word2")))
}
