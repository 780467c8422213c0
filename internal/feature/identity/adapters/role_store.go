package adapters

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"identity_backend/internal/feature/identity/domain"
	"identity_backend/internal/feature/identity/domain/entity"
	"identity_backend/internal/feature/identity/domain/key"
	"identity_backend/internal/feature/identity/usecase"
)

// RoleStore implements the role capabilities on top of GORM.
type RoleStore[K comparable] struct {
	db   *gorm.DB
	keys key.Converter[K]
}

var (
	_ usecase.RoleStore[string]           = (*RoleStore[string])(nil)
	_ usecase.RoleClaimStore[string]      = (*RoleStore[string])(nil)
	_ usecase.QueryableRoleStore          = (*RoleStore[string])(nil)
	_ usecase.RoleManagementStore[string] = (*RoleStore[string])(nil)
)

// NewRoleStore creates a role store over db. The caller owns db.
func NewRoleStore[K comparable](db *gorm.DB, keys key.Converter[K]) *RoleStore[K] {
	return &RoleStore[K]{db: db, keys: keys}
}

// Create inserts the role row.
func (s *RoleStore[K]) Create(ctx context.Context, role *entity.Role[K]) error {
	if err := check(ctx, "role", role); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(role).Error; err != nil {
		return domain.Persistence("create role", err)
	}
	return nil
}

// Update writes every column of the role, matched by key.
func (s *RoleStore[K]) Update(ctx context.Context, role *entity.Role[K]) error {
	if err := check(ctx, "role", role); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(role).Select("*").Updates(role).Error; err != nil {
		return domain.Persistence("update role", err)
	}
	return nil
}

// Delete removes the role row by key. Memberships and claims are left in place.
func (s *RoleStore[K]) Delete(ctx context.Context, role *entity.Role[K]) error {
	if err := check(ctx, "role", role); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(role).Error; err != nil {
		return domain.Persistence("delete role", err)
	}
	return nil
}

// FindByID parses roleID with the key strategy and looks the role up.
// It returns nil without error when no role matches.
func (s *RoleStore[K]) FindByID(ctx context.Context, roleID string) (*entity.Role[K], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, err := s.keys.FromString(roleID)
	if err != nil {
		return nil, fmt.Errorf("%w: role id: %w", domain.ErrInvalidArgument, err)
	}
	return first[entity.Role[K]](s.db.WithContext(ctx), "find role by id", map[string]any{"Id": id})
}

// FindByName looks a role up by normalized name. The caller normalizes.
func (s *RoleStore[K]) FindByName(ctx context.Context, normalizedRoleName string) (*entity.Role[K], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return first[entity.Role[K]](s.db.WithContext(ctx), "find role by name",
		map[string]any{"NormalizedName": normalizedRoleName})
}

func (s *RoleStore[K]) GetRoleID(ctx context.Context, role *entity.Role[K]) (string, error) {
	if err := check(ctx, "role", role); err != nil {
		return "", err
	}
	return s.keys.ToString(role.ID), nil
}

func (s *RoleStore[K]) GetRoleName(ctx context.Context, role *entity.Role[K]) (string, error) {
	if err := check(ctx, "role", role); err != nil {
		return "", err
	}
	return role.Name, nil
}

// SetRoleName sets the name in memory only; call Update to persist.
func (s *RoleStore[K]) SetRoleName(ctx context.Context, role *entity.Role[K], roleName string) error {
	if err := check(ctx, "role", role); err != nil {
		return err
	}
	role.Name = roleName
	return nil
}

func (s *RoleStore[K]) GetNormalizedRoleName(ctx context.Context, role *entity.Role[K]) (string, error) {
	if err := check(ctx, "role", role); err != nil {
		return "", err
	}
	return role.NormalizedName, nil
}

// SetNormalizedRoleName sets the normalized name in memory only; call Update to persist.
func (s *RoleStore[K]) SetNormalizedRoleName(ctx context.Context, role *entity.Role[K], normalizedName string) error {
	if err := check(ctx, "role", role); err != nil {
		return err
	}
	role.NormalizedName = normalizedName
	return nil
}

// GetClaims lists the claims of the role. Order is not guaranteed.
func (s *RoleStore[K]) GetClaims(ctx context.Context, role *entity.Role[K]) ([]entity.Claim, error) {
	if err := check(ctx, "role", role); err != nil {
		return nil, err
	}

	var rows []entity.RoleClaim[K]
	if err := s.db.WithContext(ctx).Where(map[string]any{"RoleId": role.ID}).Find(&rows).Error; err != nil {
		return nil, domain.Persistence("get role claims", err)
	}

	claims := make([]entity.Claim, len(rows))
	for i := range rows {
		claims[i] = rows[i].ToClaim()
	}
	return claims, nil
}

// AddClaim inserts one claim row for the role.
func (s *RoleStore[K]) AddClaim(ctx context.Context, role *entity.Role[K], claim entity.Claim) error {
	if err := checkRoleClaim(ctx, role, claim); err != nil {
		return err
	}

	row := &entity.RoleClaim[K]{RoleID: role.ID, ClaimType: claim.Type, ClaimValue: claim.Value}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return domain.Persistence("add role claim", err)
	}
	return nil
}

// RemoveClaim deletes every row of the role matching the claim.
func (s *RoleStore[K]) RemoveClaim(ctx context.Context, role *entity.Role[K], claim entity.Claim) error {
	if err := checkRoleClaim(ctx, role, claim); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).
		Where(map[string]any{"RoleId": role.ID, "ClaimType": claim.Type, "ClaimValue": claim.Value}).
		Delete(&entity.RoleClaim[K]{}).Error
	if err != nil {
		return domain.Persistence("remove role claim", err)
	}
	return nil
}

// Roles returns a query over the Roles table that the caller can keep composing.
func (s *RoleStore[K]) Roles(ctx context.Context) *gorm.DB {
	return queryable(ctx, s.db, &entity.Role[K]{})
}

// Close is a no-op. The database handle belongs to whoever opened it.
func (s *RoleStore[K]) Close() error {
	return nil
}

func checkRoleClaim[K comparable](ctx context.Context, role *entity.Role[K], claim entity.Claim) error {
	if err := check(ctx, "role", role); err != nil {
		return err
	}
	if !claim.Valid() {
		return domain.InvalidArgument("claim")
	}
	return nil
}
