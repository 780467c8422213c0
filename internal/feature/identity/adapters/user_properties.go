package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"identity_backend/internal/feature/identity/domain"
	"identity_backend/internal/feature/identity/domain/entity"
)

// Scalar user properties. Every Set* method changes only the passed user;
// call Update to persist. The only exception is IncrementAccessFailedCount,
// which writes to the database and leaves the passed user untouched.

// GetUserID returns the user's key in its string form.
func (s *UserStore[K]) GetUserID(ctx context.Context, user *entity.User[K]) (string, error) {
	if err := check(ctx, "user", user); err != nil {
		return "", err
	}
	return s.keys.ToString(user.ID), nil
}

func (s *UserStore[K]) GetUserName(ctx context.Context, user *entity.User[K]) (string, error) {
	if err := check(ctx, "user", user); err != nil {
		return "", err
	}
	return user.UserName, nil
}

// SetUserName sets the user name in memory only.
func (s *UserStore[K]) SetUserName(ctx context.Context, user *entity.User[K], userName string) error {
	if err := check(ctx, "user", user); err != nil {
		return err
	}
	user.UserName = userName
	return nil
}

func (s *UserStore[K]) GetNormalizedUserName(ctx context.Context, user *entity.User[K]) (string, error) {
	if err := check(ctx, "user", user); err != nil {
		return "", err
	}
	return user.NormalizedUserName, nil
}

// SetNormalizedUserName sets the normalized user name in memory only.
func (s *UserStore[K]) SetNormalizedUserName(ctx context.Context, user *entity.User[K], normalizedName string) error {
	if err := check(ctx, "user", user); err != nil {
		return err
	}
	user.NormalizedUserName = normalizedName
	return nil
}

// SetPasswordHash sets the password hash in memory only. Hashing is the caller's job.
func (s *UserStore[K]) SetPasswordHash(ctx context.Context, user *entity.User[K], passwordHash string) error {
	if err := check(ctx, "user", user); err != nil {
		return err
	}
	user.PasswordHash = passwordHash
	return nil
}

func (s *UserStore[K]) GetPasswordHash(ctx context.Context, user *entity.User[K]) (string, error) {
	if err := check(ctx, "user", user); err != nil {
		return "", err
	}
	return user.PasswordHash, nil
}

// HasPassword reports whether a password hash is set.
func (s *UserStore[K]) HasPassword(ctx context.Context, user *entity.User[K]) (bool, error) {
	if err := check(ctx, "user", user); err != nil {
		return false, err
	}
	return user.PasswordHash != "", nil
}

// SetSecurityStamp sets the security stamp in memory only.
func (s *UserStore[K]) SetSecurityStamp(ctx context.Context, user *entity.User[K], stamp string) error {
	if err := check(ctx, "user", user); err != nil {
		return err
	}
	user.SecurityStamp = stamp
	return nil
}

func (s *UserStore[K]) GetSecurityStamp(ctx context.Context, user *entity.User[K]) (string, error) {
	if err := check(ctx, "user", user); err != nil {
		return "", err
	}
	return user.SecurityStamp, nil
}

// SetEmail sets the email in memory only.
func (s *UserStore[K]) SetEmail(ctx context.Context, user *entity.User[K], email string) error {
	if err := check(ctx, "user", user); err != nil {
		return err
	}
	user.Email = email
	return nil
}

func (s *UserStore[K]) GetEmail(ctx context.Context, user *entity.User[K]) (string, error) {
	if err := check(ctx, "user", user); err != nil {
		return "", err
	}
	return user.Email, nil
}

func (s *UserStore[K]) GetEmailConfirmed(ctx context.Context, user *entity.User[K]) (bool, error) {
	if err := check(ctx, "user", user); err != nil {
		return false, err
	}
	return user.EmailConfirmed, nil
}

// SetEmailConfirmed sets the confirmation flag in memory only.
func (s *UserStore[K]) SetEmailConfirmed(ctx context.Context, user *entity.User[K], confirmed bool) error {
	if err := check(ctx, "user", user); err != nil {
		return err
	}
	user.EmailConfirmed = confirmed
	return nil
}

func (s *UserStore[K]) GetNormalizedEmail(ctx context.Context, user *entity.User[K]) (string, error) {
	if err := check(ctx, "user", user); err != nil {
		return "", err
	}
	return user.NormalizedEmail, nil
}

// SetNormalizedEmail sets the normalized email in memory only.
func (s *UserStore[K]) SetNormalizedEmail(ctx context.Context, user *entity.User[K], normalizedEmail string) error {
	if err := check(ctx, "user", user); err != nil {
		return err
	}
	user.NormalizedEmail = normalizedEmail
	return nil
}

// GetLockoutEndDate returns the end of the lockout window, or nil if none was set.
func (s *UserStore[K]) GetLockoutEndDate(ctx context.Context, user *entity.User[K]) (*time.Time, error) {
	if err := check(ctx, "user", user); err != nil {
		return nil, err
	}
	return user.LockoutEnd, nil
}

// SetLockoutEndDate sets the lockout end in memory only. nil clears it.
func (s *UserStore[K]) SetLockoutEndDate(ctx context.Context, user *entity.User[K], lockoutEnd *time.Time) error {
	if err := check(ctx, "user", user); err != nil {
		return err
	}
	user.LockoutEnd = lockoutEnd
	return nil
}

// IncrementAccessFailedCount adds one to the persisted counter with a server-side
// expression, so concurrent calls never lose an increment. The returned value is
// the in-memory count plus one and may lag behind the database under contention.
// The passed user is not modified.
func (s *UserStore[K]) IncrementAccessFailedCount(ctx context.Context, user *entity.User[K]) (int, error) {
	if err := check(ctx, "user", user); err != nil {
		return 0, err
	}

	err := s.db.WithContext(ctx).
		Model(&entity.User[K]{}).
		Where(map[string]any{"Id": user.ID}).
		Update("AccessFailedCount", gorm.Expr("? + 1", clause.Column{Name: "AccessFailedCount"})).Error
	if err != nil {
		return 0, domain.Persistence("increment access failed count", err)
	}
	return user.AccessFailedCount + 1, nil
}

// ResetAccessFailedCount zeroes the counter in memory only.
func (s *UserStore[K]) ResetAccessFailedCount(ctx context.Context, user *entity.User[K]) error {
	if err := check(ctx, "user", user); err != nil {
		return err
	}
	user.AccessFailedCount = 0
	return nil
}

func (s *UserStore[K]) GetAccessFailedCount(ctx context.Context, user *entity.User[K]) (int, error) {
	if err := check(ctx, "user", user); err != nil {
		return 0, err
	}
	return user.AccessFailedCount, nil
}

func (s *UserStore[K]) GetLockoutEnabled(ctx context.Context, user *entity.User[K]) (bool, error) {
	if err := check(ctx, "user", user); err != nil {
		return false, err
	}
	return user.LockoutEnabled, nil
}

// SetLockoutEnabled sets the lockout flag in memory only.
func (s *UserStore[K]) SetLockoutEnabled(ctx context.Context, user *entity.User[K], enabled bool) error {
	if err := check(ctx, "user", user); err != nil {
		return err
	}
	user.LockoutEnabled = enabled
	return nil
}

// SetPhoneNumber sets the phone number in memory only.
func (s *UserStore[K]) SetPhoneNumber(ctx context.Context, user *entity.User[K], phoneNumber string) error {
	if err := check(ctx, "user", user); err != nil {
		return err
	}
	user.PhoneNumber = phoneNumber
	return nil
}

func (s *UserStore[K]) GetPhoneNumber(ctx context.Context, user *entity.User[K]) (string, error) {
	if err := check(ctx, "user", user); err != nil {
		return "", err
	}
	return user.PhoneNumber, nil
}

func (s *UserStore[K]) GetPhoneNumberConfirmed(ctx context.Context, user *entity.User[K]) (bool, error) {
	if err := check(ctx, "user", user); err != nil {
		return false, err
	}
	return user.PhoneNumberConfirmed, nil
}

// SetPhoneNumberConfirmed sets the confirmation flag in memory only.
func (s *UserStore[K]) SetPhoneNumberConfirmed(ctx context.Context, user *entity.User[K], confirmed bool) error {
	if err := check(ctx, "user", user); err != nil {
		return err
	}
	user.PhoneNumberConfirmed = confirmed
	return nil
}

// SetTwoFactorEnabled sets the two-factor flag in memory only.
func (s *UserStore[K]) SetTwoFactorEnabled(ctx context.Context, user *entity.User[K], enabled bool) error {
	if err := check(ctx, "user", user); err != nil {
		return err
	}
	user.TwoFactorEnabled = enabled
	return nil
}

func (s *UserStore[K]) GetTwoFactorEnabled(ctx context.Context, user *entity.User[K]) (bool, error) {
	if err := check(ctx, "user", user); err != nil {
		return false, err
	}
	return user.TwoFactorEnabled, nil
}
