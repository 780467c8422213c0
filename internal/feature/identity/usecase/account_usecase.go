// Package usecase implements the identity flows on top of the store capabilities.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"identity_backend/internal/feature/identity/domain"
	"identity_backend/internal/feature/identity/domain/entity"
)

const (
	// minPasswordLength is the minimum number of characters a password must have.
	minPasswordLength = 8

	// dummyHash is compared against when no user matches, so that unknown and known
	// emails take the same time to reject.
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// JWTGenerator signs access tokens.
// Following Go convention, the interface is defined by the consumer (usecase), not the provider (platform/jwt).
type JWTGenerator interface {
	// GenerateToken creates a signed token for the subject carrying its roles and claims.
	GenerateToken(subject, email string, roles []string, claims map[string][]string) (string, error)
}

// LockoutPolicy controls how failed sign-ins lock an account.
type LockoutPolicy struct {
	// MaxFailedAttempts is the number of consecutive failures that triggers a lockout.
	// Zero disables lockout.
	MaxFailedAttempts int
	// Duration is how long the account stays locked.
	Duration time.Duration
}

// Normalize returns the canonical form used for user name, email and role lookups.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// AccountUsecase implements sign-up, sign-in and role membership for users.
type AccountUsecase[K comparable] struct {
	store   AccountStore[K]
	tokens  JWTGenerator
	lockout LockoutPolicy
	newID   func() K
	now     func() time.Time
}

// NewAccountUsecase creates an AccountUsecase. newID generates keys for new users.
func NewAccountUsecase[K comparable](store AccountStore[K], tokens JWTGenerator, lockout LockoutPolicy, newID func() K) *AccountUsecase[K] {
	return &AccountUsecase[K]{
		store:   store,
		tokens:  tokens,
		lockout: lockout,
		newID:   newID,
		now:     time.Now,
	}
}

// validatePassword checks whether the password meets the security requirements.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters long", domain.ErrWeakPassword, minPasswordLength)
	}
	return nil
}

// SignUp registers a new user with a hashed password. Lockout is enabled for every new user.
func (u *AccountUsecase[K]) SignUp(ctx context.Context, userName, email, password string) (*entity.User[K], error) {
	if strings.TrimSpace(userName) == "" {
		return nil, domain.InvalidArgument("user name")
	}
	if strings.TrimSpace(email) == "" {
		return nil, domain.InvalidArgument("email")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	existing, err := u.store.FindByEmail(ctx, Normalize(email))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	existing, err = u.store.FindByName(ctx, Normalize(userName))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUserNameAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User[K]{ID: u.newID()}
	steps := []error{
		u.store.SetUserName(ctx, user, userName),
		u.store.SetNormalizedUserName(ctx, user, Normalize(userName)),
		u.store.SetEmail(ctx, user, email),
		u.store.SetNormalizedEmail(ctx, user, Normalize(email)),
		u.store.SetPasswordHash(ctx, user, string(hashed)),
		u.store.SetSecurityStamp(ctx, user, uuid.NewString()),
		u.store.SetLockoutEnabled(ctx, user, u.lockout.MaxFailedAttempts > 0),
	}
	for _, err := range steps {
		if err != nil {
			return nil, err
		}
	}

	if err := u.store.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SignIn verifies the credentials and returns a signed token carrying the user's
// roles and claims. Failed attempts count towards the lockout policy.
func (u *AccountUsecase[K]) SignIn(ctx context.Context, email, password string) (string, error) {
	user, err := u.store.FindByEmail(ctx, Normalize(email))
	if err != nil {
		return "", err
	}

	// Always run bcrypt so that unknown emails cost the same as wrong passwords.
	passwordHash := dummyHash
	if user != nil {
		passwordHash = user.PasswordHash
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if user == nil {
		return "", domain.ErrInvalidCredentials
	}
	if u.isLockedOut(user) {
		return "", domain.ErrLockedOut
	}
	if compareErr != nil {
		if err := u.recordFailure(ctx, user); err != nil {
			return "", err
		}
		return "", domain.ErrInvalidCredentials
	}

	if err := u.recordSuccess(ctx, user); err != nil {
		return "", err
	}
	return u.issueToken(ctx, user)
}

func (u *AccountUsecase[K]) isLockedOut(user *entity.User[K]) bool {
	return user.LockoutEnabled && user.LockoutEnd != nil && user.LockoutEnd.After(u.now())
}

// recordFailure bumps the failed counter and locks the account once the policy limit is hit.
func (u *AccountUsecase[K]) recordFailure(ctx context.Context, user *entity.User[K]) error {
	if !user.LockoutEnabled || u.lockout.MaxFailedAttempts <= 0 {
		return nil
	}

	count, err := u.store.IncrementAccessFailedCount(ctx, user)
	if err != nil {
		return err
	}
	if count < u.lockout.MaxFailedAttempts {
		return nil
	}

	end := u.now().Add(u.lockout.Duration)
	if err := u.store.SetLockoutEndDate(ctx, user, &end); err != nil {
		return err
	}
	if err := u.store.ResetAccessFailedCount(ctx, user); err != nil {
		return err
	}
	if err := u.store.Update(ctx, user); err != nil {
		return err
	}
	slog.Warn("account locked out", "user_id", user.ID, "until", end)
	return nil
}

// recordSuccess clears any failure state left from earlier attempts.
func (u *AccountUsecase[K]) recordSuccess(ctx context.Context, user *entity.User[K]) error {
	if user.AccessFailedCount == 0 && user.LockoutEnd == nil {
		return nil
	}
	if err := u.store.ResetAccessFailedCount(ctx, user); err != nil {
		return err
	}
	if err := u.store.SetLockoutEndDate(ctx, user, nil); err != nil {
		return err
	}
	return u.store.Update(ctx, user)
}

func (u *AccountUsecase[K]) issueToken(ctx context.Context, user *entity.User[K]) (string, error) {
	subject, err := u.store.GetUserID(ctx, user)
	if err != nil {
		return "", err
	}
	roles, err := u.store.GetRoles(ctx, user)
	if err != nil {
		return "", err
	}
	claims, err := u.store.GetClaims(ctx, user)
	if err != nil {
		return "", err
	}

	grouped := make(map[string][]string, len(claims))
	for _, c := range claims {
		grouped[c.Type] = append(grouped[c.Type], c.Value)
	}

	token, err := u.tokens.GenerateToken(subject, user.Email, roles, grouped)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// AssignRole adds the user identified by userID to the named role.
func (u *AccountUsecase[K]) AssignRole(ctx context.Context, userID, roleName string) error {
	user, err := u.findUser(ctx, userID)
	if err != nil {
		return err
	}
	return u.store.AddToRole(ctx, user, roleName)
}

// UnassignRole removes the user identified by userID from the named role.
// An unknown role is ignored.
func (u *AccountUsecase[K]) UnassignRole(ctx context.Context, userID, roleName string) error {
	user, err := u.findUser(ctx, userID)
	if err != nil {
		return err
	}
	return u.store.RemoveFromRole(ctx, user, roleName)
}

// Roles lists the role names of the user identified by userID.
func (u *AccountUsecase[K]) Roles(ctx context.Context, userID string) ([]string, error) {
	user, err := u.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.store.GetRoles(ctx, user)
}

func (u *AccountUsecase[K]) findUser(ctx context.Context, userID string) (*entity.User[K], error) {
	user, err := u.store.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
