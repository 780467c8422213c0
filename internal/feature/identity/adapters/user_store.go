// Package adapters provides GORM implementations of the identity stores.
//
// Stores hold no mutable state besides the *gorm.DB handle and the key strategy,
// so a single instance may be shared across goroutines. They never log: every
// failure is returned to the caller.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"identity_backend/internal/feature/identity/domain"
	"identity_backend/internal/feature/identity/domain/entity"
	"identity_backend/internal/feature/identity/domain/key"
	"identity_backend/internal/feature/identity/usecase"
)

// joinOn is an inner join whose table and columns are passed as quoted vars.
const joinOn = "JOIN ? ON ? = ?"

// UserStore implements every user capability on top of GORM.
type UserStore[K comparable] struct {
	db   *gorm.DB
	keys key.Converter[K]
}

// Compile-time checks that UserStore provides each capability it claims.
var (
	_ usecase.UserStore[string]              = (*UserStore[string])(nil)
	_ usecase.UserLoginStore[string]         = (*UserStore[string])(nil)
	_ usecase.UserRoleStore[string]          = (*UserStore[string])(nil)
	_ usecase.UserClaimStore[string]         = (*UserStore[string])(nil)
	_ usecase.UserPasswordStore[string]      = (*UserStore[string])(nil)
	_ usecase.UserSecurityStampStore[string] = (*UserStore[string])(nil)
	_ usecase.UserEmailStore[string]         = (*UserStore[string])(nil)
	_ usecase.UserLockoutStore[string]       = (*UserStore[string])(nil)
	_ usecase.UserPhoneNumberStore[string]   = (*UserStore[string])(nil)
	_ usecase.UserTwoFactorStore[string]     = (*UserStore[string])(nil)
	_ usecase.QueryableUserStore             = (*UserStore[string])(nil)
	_ usecase.AccountStore[string]           = (*UserStore[string])(nil)
)

// NewUserStore creates a user store over db. The caller owns db.
func NewUserStore[K comparable](db *gorm.DB, keys key.Converter[K]) *UserStore[K] {
	return &UserStore[K]{db: db, keys: keys}
}

// Create inserts the user row.
func (s *UserStore[K]) Create(ctx context.Context, user *entity.User[K]) error {
	if err := check(ctx, "user", user); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return domain.Persistence("create user", err)
	}
	return nil
}

// Update writes every column of the user. This is the only operation that persists
// values changed through the Set* methods.
func (s *UserStore[K]) Update(ctx context.Context, user *entity.User[K]) error {
	if err := check(ctx, "user", user); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(user).Select("*").Updates(user).Error; err != nil {
		return domain.Persistence("update user", err)
	}
	return nil
}

// Delete removes the user row by key. Claims, logins and role memberships are left
// to the caller or to schema constraints.
func (s *UserStore[K]) Delete(ctx context.Context, user *entity.User[K]) error {
	if err := check(ctx, "user", user); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(user).Error; err != nil {
		return domain.Persistence("delete user", err)
	}
	return nil
}

// FindByID parses userID with the key strategy and looks the user up.
// It returns nil without error when no user matches.
func (s *UserStore[K]) FindByID(ctx context.Context, userID string) (*entity.User[K], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, err := s.keys.FromString(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user id: %w", domain.ErrInvalidArgument, err)
	}
	return first[entity.User[K]](s.db.WithContext(ctx), "find user by id", map[string]any{"Id": id})
}

// FindByName looks a user up by normalized user name. The caller normalizes.
func (s *UserStore[K]) FindByName(ctx context.Context, normalizedUserName string) (*entity.User[K], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return first[entity.User[K]](s.db.WithContext(ctx), "find user by name",
		map[string]any{"NormalizedUserName": normalizedUserName})
}

// FindByEmail looks a user up by normalized email. The caller normalizes.
func (s *UserStore[K]) FindByEmail(ctx context.Context, normalizedEmail string) (*entity.User[K], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return first[entity.User[K]](s.db.WithContext(ctx), "find user by email",
		map[string]any{"NormalizedEmail": normalizedEmail})
}

// Users returns a query over the Users table that the caller can keep composing.
// With a done context the query carries ctx.Err() and never reaches the database.
func (s *UserStore[K]) Users(ctx context.Context) *gorm.DB {
	return queryable(ctx, s.db, &entity.User[K]{})
}

// Close is a no-op. The database handle belongs to whoever opened it.
func (s *UserStore[K]) Close() error {
	return nil
}

// check fails fast, before any I/O, on a done context or a nil entity.
func check[T any](ctx context.Context, name string, v *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if v == nil {
		return domain.InvalidArgument(name)
	}
	return nil
}

// first returns the first row matching conds, or nil when there is none.
func first[T any](db *gorm.DB, op string, conds map[string]any) (*T, error) {
	var v T
	if err := db.Where(conds).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, domain.Persistence(op, err)
	}
	return &v, nil
}

// queryable starts a composable query on model, failed up front when ctx is done.
func queryable(ctx context.Context, db *gorm.DB, model any) *gorm.DB {
	q := db.WithContext(ctx).Model(model)
	if err := ctx.Err(); err != nil {
		_ = q.AddError(err)
	}
	return q
}

func column(table, name string) clause.Column {
	return clause.Column{Table: table, Name: name}
}
