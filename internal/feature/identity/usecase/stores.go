package usecase

import (
	"context"
	"time"

	"gorm.io/gorm"

	"identity_backend/internal/feature/identity/domain/entity"
)

// One interface per store capability. A consumer depends only on the subset it needs
// and a single adapter implements several of them.
// Following Go convention, they are defined here by the consumer, not by adapters.
//
// Set* methods change only the passed entity. Nothing is persisted until Update.

// UserStore is the CRUD capability for users.
type UserStore[K comparable] interface {
	// Create inserts the user.
	Create(ctx context.Context, user *entity.User[K]) error
	// Update writes every column of the user, matched by Id.
	Update(ctx context.Context, user *entity.User[K]) error
	// Delete removes the user row matched by Id.
	Delete(ctx context.Context, user *entity.User[K]) error

	// FindByID returns the user with the given string-encoded id, or nil when absent.
	FindByID(ctx context.Context, userID string) (*entity.User[K], error)
	// FindByName returns the user with the given normalized user name, or nil when absent.
	FindByName(ctx context.Context, normalizedUserName string) (*entity.User[K], error)

	GetUserID(ctx context.Context, user *entity.User[K]) (string, error)
	GetUserName(ctx context.Context, user *entity.User[K]) (string, error)
	SetUserName(ctx context.Context, user *entity.User[K], userName string) error
	GetNormalizedUserName(ctx context.Context, user *entity.User[K]) (string, error)
	SetNormalizedUserName(ctx context.Context, user *entity.User[K], normalizedName string) error

	// Close releases nothing; the database handle belongs to the caller.
	Close() error
}

// UserLoginStore manages external logins.
type UserLoginStore[K comparable] interface {
	AddLogin(ctx context.Context, user *entity.User[K], login entity.LoginInfo) error
	RemoveLogin(ctx context.Context, user *entity.User[K], loginProvider, providerKey string) error
	GetLogins(ctx context.Context, user *entity.User[K]) ([]entity.LoginInfo, error)
	// FindByLogin returns the user owning the login, or nil when absent.
	FindByLogin(ctx context.Context, loginProvider, providerKey string) (*entity.User[K], error)
}

// UserRoleStore manages role membership.
type UserRoleStore[K comparable] interface {
	// AddToRole fails with domain.ErrRoleNotFound when the role does not exist.
	AddToRole(ctx context.Context, user *entity.User[K], roleName string) error
	// RemoveFromRole does nothing when the role does not exist.
	RemoveFromRole(ctx context.Context, user *entity.User[K], roleName string) error
	GetRoles(ctx context.Context, user *entity.User[K]) ([]string, error)
	IsInRole(ctx context.Context, user *entity.User[K], roleName string) (bool, error)
	GetUsersInRole(ctx context.Context, roleName string) ([]*entity.User[K], error)
}

// UserClaimStore manages user claims.
type UserClaimStore[K comparable] interface {
	GetClaims(ctx context.Context, user *entity.User[K]) ([]entity.Claim, error)
	AddClaims(ctx context.Context, user *entity.User[K], claims []entity.Claim) error
	ReplaceClaim(ctx context.Context, user *entity.User[K], claim, newClaim entity.Claim) error
	RemoveClaims(ctx context.Context, user *entity.User[K], claims []entity.Claim) error
	GetUsersForClaim(ctx context.Context, claim entity.Claim) ([]*entity.User[K], error)
}

// UserPasswordStore stores password hashes computed by the caller.
type UserPasswordStore[K comparable] interface {
	SetPasswordHash(ctx context.Context, user *entity.User[K], passwordHash string) error
	GetPasswordHash(ctx context.Context, user *entity.User[K]) (string, error)
	HasPassword(ctx context.Context, user *entity.User[K]) (bool, error)
}

// UserSecurityStampStore stores the security stamp.
type UserSecurityStampStore[K comparable] interface {
	SetSecurityStamp(ctx context.Context, user *entity.User[K], stamp string) error
	GetSecurityStamp(ctx context.Context, user *entity.User[K]) (string, error)
}

// UserEmailStore manages email addresses.
type UserEmailStore[K comparable] interface {
	SetEmail(ctx context.Context, user *entity.User[K], email string) error
	GetEmail(ctx context.Context, user *entity.User[K]) (string, error)
	GetEmailConfirmed(ctx context.Context, user *entity.User[K]) (bool, error)
	SetEmailConfirmed(ctx context.Context, user *entity.User[K], confirmed bool) error
	// FindByEmail returns the user with the given normalized email, or nil when absent.
	FindByEmail(ctx context.Context, normalizedEmail string) (*entity.User[K], error)
	GetNormalizedEmail(ctx context.Context, user *entity.User[K]) (string, error)
	SetNormalizedEmail(ctx context.Context, user *entity.User[K], normalizedEmail string) error
}

// UserLockoutStore tracks failed sign-in attempts and lockout windows.
type UserLockoutStore[K comparable] interface {
	GetLockoutEndDate(ctx context.Context, user *entity.User[K]) (*time.Time, error)
	SetLockoutEndDate(ctx context.Context, user *entity.User[K], lockoutEnd *time.Time) error
	// IncrementAccessFailedCount increments the persisted counter atomically and
	// returns the in-memory count plus one, without re-reading the row.
	IncrementAccessFailedCount(ctx context.Context, user *entity.User[K]) (int, error)
	ResetAccessFailedCount(ctx context.Context, user *entity.User[K]) error
	GetAccessFailedCount(ctx context.Context, user *entity.User[K]) (int, error)
	GetLockoutEnabled(ctx context.Context, user *entity.User[K]) (bool, error)
	SetLockoutEnabled(ctx context.Context, user *entity.User[K], enabled bool) error
}

// UserPhoneNumberStore manages phone numbers.
type UserPhoneNumberStore[K comparable] interface {
	SetPhoneNumber(ctx context.Context, user *entity.User[K], phoneNumber string) error
	GetPhoneNumber(ctx context.Context, user *entity.User[K]) (string, error)
	GetPhoneNumberConfirmed(ctx context.Context, user *entity.User[K]) (bool, error)
	SetPhoneNumberConfirmed(ctx context.Context, user *entity.User[K], confirmed bool) error
}

// UserTwoFactorStore stores the two-factor flag.
type UserTwoFactorStore[K comparable] interface {
	SetTwoFactorEnabled(ctx context.Context, user *entity.User[K], enabled bool) error
	GetTwoFactorEnabled(ctx context.Context, user *entity.User[K]) (bool, error)
}

// QueryableUserStore exposes the users table as a composable query.
type QueryableUserStore interface {
	Users(ctx context.Context) *gorm.DB
}

// RoleStore is the CRUD capability for roles.
type RoleStore[K comparable] interface {
	Create(ctx context.Context, role *entity.Role[K]) error
	Update(ctx context.Context, role *entity.Role[K]) error
	Delete(ctx context.Context, role *entity.Role[K]) error

	// FindByID returns the role with the given string-encoded id, or nil when absent.
	FindByID(ctx context.Context, roleID string) (*entity.Role[K], error)
	// FindByName returns the role with the given normalized name, or nil when absent.
	FindByName(ctx context.Context, normalizedRoleName string) (*entity.Role[K], error)

	GetRoleID(ctx context.Context, role *entity.Role[K]) (string, error)
	GetRoleName(ctx context.Context, role *entity.Role[K]) (string, error)
	SetRoleName(ctx context.Context, role *entity.Role[K], roleName string) error
	GetNormalizedRoleName(ctx context.Context, role *entity.Role[K]) (string, error)
	SetNormalizedRoleName(ctx context.Context, role *entity.Role[K], normalizedName string) error

	Close() error
}

// RoleClaimStore manages role claims.
type RoleClaimStore[K comparable] interface {
	GetClaims(ctx context.Context, role *entity.Role[K]) ([]entity.Claim, error)
	AddClaim(ctx context.Context, role *entity.Role[K], claim entity.Claim) error
	// RemoveClaim deletes every row matching the role and the claim.
	RemoveClaim(ctx context.Context, role *entity.Role[K], claim entity.Claim) error
}

// QueryableRoleStore exposes the roles table as a composable query.
type QueryableRoleStore interface {
	Roles(ctx context.Context) *gorm.DB
}

// AccountStore is the capability subset the account usecase needs.
type AccountStore[K comparable] interface {
	UserStore[K]
	UserEmailStore[K]
	UserPasswordStore[K]
	UserSecurityStampStore[K]
	UserLockoutStore[K]
	UserRoleStore[K]
	UserClaimStore[K]
}

// RoleManagementStore is the capability subset the role usecase needs.
type RoleManagementStore[K comparable] interface {
	RoleStore[K]
	RoleClaimStore[K]
	QueryableRoleStore
}
