// Package auth implements credential checking with progressive login
// lockout, registration, profile updates and the password-reset flow.
package auth

import (
	"errors"
	"log"
	"math"
	"strings"
	"time"

	"splitr/internal/apperr"
	"splitr/internal/models"
	"splitr/internal/repositories"
	"splitr/internal/services/mailer"
	"splitr/internal/utils"
	"splitr/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// resetTokenTTL is how long a password-reset token stays valid.
const resetTokenTTL = 10 * time.Minute

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type UpdateProfileInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// Profile is the current-user view: the account plus group summaries.
type Profile struct {
	User         *models.User   `json:"user"`
	OwnedGroups  []models.Group `json:"ownedGroups"`
	JoinedGroups []models.Group `json:"joinedGroups"`
}

type Service interface {
	Register(input RegisterInput) (*models.User, error)
	Login(email, password string) (*models.User, string, error)
	CurrentUser(userID uint) (*Profile, error)
	UpdateProfile(userID uint, input UpdateProfileInput) (*models.User, error)
	ChangePassword(userID uint, currentPassword, newPassword string) error
	ForgotPassword(email, resetBaseURL string) (string, error)
	ResetPassword(token, newPassword string) error
	ValidateUsername(name string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
}

type service struct {
	userRepo  repositories.UserRepository
	groupRepo repositories.GroupRepository
	mailer    mailer.Service
	jwtSecret string
}

func NewService(userRepo repositories.UserRepository, groupRepo repositories.GroupRepository, mailer mailer.Service, jwtSecret string) Service {
	return &service{
		userRepo:  userRepo,
		groupRepo: groupRepo,
		mailer:    mailer,
		jwtSecret: jwtSecret,
	}
}

func (s *service) Register(input RegisterInput) (*models.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)

	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, apperr.ErrMissingRegistrationFields
	}
	if !validation.ValidEmail(input.Email) {
		return nil, apperr.ErrMissingRegistrationFields
	}
	if !validation.ValidPassword(input.Password) {
		return nil, apperr.ErrWeakPassword
	}

	if existing, _ := s.userRepo.GetByEmail(input.Email); existing != nil {
		return nil, apperr.ErrEmailTaken
	}
	if existing, _ := s.userRepo.GetByName(input.Name); existing != nil {
		return nil, apperr.ErrNameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// The very first account bootstraps the admin role. Intentional,
	// and security-sensitive: whoever registers against an empty
	// database operates the instance.
	role := models.RoleUser
	if total, err := s.userRepo.Count(); err == nil && total == 0 {
		role = models.RoleAdmin
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Phone:    input.Phone,
		Role:     role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials under the lockout policy and returns the
// user together with a signed session token.
func (s *service) Login(email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", apperr.ErrMissingCredentials
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			// Do not reveal whether the account exists.
			return nil, "", apperr.ErrInvalidCredentials
		}
		return nil, "", err
	}

	// An open lockout window rejects the attempt outright, before the
	// password is even looked at, and without touching any counters.
	now := time.Now()
	if user.LockoutUntil != nil && user.LockoutUntil.After(now) {
		remaining := int(math.Ceil(user.LockoutUntil.Sub(now).Seconds()))
		return nil, "", &LockoutActiveError{SecondsRemaining: remaining}
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", s.recordFailedAttempt(user, now)
	}

	// Success clears all lockout state.
	user.FailedLoginAttempts = 0
	user.LockoutUntil = nil
	user.LastLockoutSecs = 0
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateToken(&models.UserClaims{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role,
	}, s.jwtSecret)
	if err != nil {
		log.Printf("failed to sign session token for user %d: %v", user.ID, err)
		return nil, "", err
	}
	return user, token, nil
}

// recordFailedAttempt increments the failure counter, opens a lockout
// window if this attempt crossed a block boundary, and persists the
// user either way.
func (s *service) recordFailedAttempt(user *models.User, now time.Time) error {
	user.FailedLoginAttempts++
	n := user.FailedLoginAttempts

	if lockoutTriggered(n) {
		dur := lockoutDuration(n)
		next := dur * 2
		if next > lockoutMaxSeconds {
			next = lockoutMaxSeconds
		}
		until := now.Add(time.Duration(dur) * time.Second)
		user.LockoutUntil = &until
		user.LastLockoutSecs = dur
		if err := s.userRepo.Update(user); err != nil {
			return err
		}
		return &LockoutTriggeredError{
			Seconds:            dur,
			NextLockoutSeconds: next,
		}
	}

	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	return &BadPasswordError{
		AttemptsRemaining:  attemptsRemaining(n),
		NextLockoutSeconds: nextLockoutSeconds(n),
	}
}

func (s *service) CurrentUser(userID uint) (*Profile, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, s.mapUserErr(err)
	}
	owned, err := s.groupRepo.GetOwnedByUser(userID)
	if err != nil {
		return nil, err
	}
	joined, err := s.groupRepo.GetJoinedByUser(userID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, OwnedGroups: owned, JoinedGroups: joined}, nil
}

func (s *service) UpdateProfile(userID uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, s.mapUserErr(err)
	}

	if input.Email != nil && *input.Email != user.Email {
		if !validation.ValidEmail(*input.Email) {
			return nil, apperr.ErrMissingRegistrationFields
		}
		if existing, _ := s.userRepo.GetByEmail(*input.Email); existing != nil {
			return nil, apperr.ErrEmailTaken
		}
		user.Email = *input.Email
	}
	if input.Name != nil && *input.Name != user.Name {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperr.ErrMissingRegistrationFields
		}
		if existing, _ := s.userRepo.GetByName(name); existing != nil {
			return nil, apperr.ErrNameTaken
		}
		user.Name = name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return s.mapUserErr(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)) != nil {
		return apperr.ErrIncorrectPassword
	}
	if !validation.ValidPassword(newPassword) {
		return apperr.ErrWeakPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.userRepo.Update(user)
}

// ForgotPassword issues a time-limited single-use token and emails the
// reset link. The plaintext token is returned to the caller so the
// handler can expose it outside production; callers get an empty
// string when the account does not exist.
func (s *service) ForgotPassword(email, resetBaseURL string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			// Respond identically whether or not the account exists.
			return "", nil
		}
		return "", err
	}

	token, hash := utils.GenerateResetToken()
	expires := time.Now().Add(resetTokenTTL)
	user.ResetTokenHash = &hash
	user.ResetTokenExpiresAt = &expires
	if err := s.userRepo.Update(user); err != nil {
		return "", err
	}

	resetURL := resetBaseURL + "/reset-password/" + token
	if err := s.mailer.SendPasswordReset(user.Email, user.Name, resetURL); err != nil {
		// Roll back the token so a failed send leaves nothing usable.
		user.ResetTokenHash = nil
		user.ResetTokenExpiresAt = nil
		if updateErr := s.userRepo.Update(user); updateErr != nil {
			log.Printf("failed to clear reset token for user %d: %v", user.ID, updateErr)
		}
		return "", err
	}
	return token, nil
}

func (s *service) ResetPassword(token, newPassword string) error {
	if token == "" {
		return apperr.ErrInvalidResetToken
	}
	user, err := s.userRepo.GetByResetTokenHash(utils.HashToken(token))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperr.ErrInvalidResetToken
		}
		return err
	}
	if user.ResetTokenExpiresAt == nil || user.ResetTokenExpiresAt.Before(time.Now()) {
		return apperr.ErrInvalidResetToken
	}
	if !validation.ValidPassword(newPassword) {
		return apperr.ErrWeakPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	user.ResetTokenHash = nil
	user.ResetTokenExpiresAt = nil
	// A reset also unlocks the account.
	user.FailedLoginAttempts = 0
	user.LockoutUntil = nil
	user.LastLockoutSecs = 0
	return s.userRepo.Update(user)
}

func (s *service) ValidateUsername(name string) (*models.User, error) {
	if name == "" {
		return nil, apperr.ErrMissingRegistrationFields
	}
	user, err := s.userRepo.GetByName(name)
	if err != nil {
		return nil, s.mapUserErr(err)
	}
	return user, nil
}

func (s *service) GetUserByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, s.mapUserErr(err)
	}
	return user, nil
}

func (s *service) mapUserErr(err error) error {
	if errors.Is(err, repositories.ErrUserNotFound) {
		return apperr.ErrUserNotFound
	}
	return err
}
