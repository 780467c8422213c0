package usecase

import (
	"context"
	"strings"

	"gorm.io/gorm/clause"

	"identity_backend/internal/feature/identity/domain"
	"identity_backend/internal/feature/identity/domain/entity"
)

// maxPageSize caps ListRoles.
const maxPageSize = 100

// RoleUsecase manages roles and their claims.
type RoleUsecase[K comparable] struct {
	store RoleManagementStore[K]
	newID func() K
}

// NewRoleUsecase creates a RoleUsecase. newID generates keys for new roles.
func NewRoleUsecase[K comparable](store RoleManagementStore[K], newID func() K) *RoleUsecase[K] {
	return &RoleUsecase[K]{store: store, newID: newID}
}

// CreateRole creates a role. Names are unique after normalization.
func (u *RoleUsecase[K]) CreateRole(ctx context.Context, name string) (*entity.Role[K], error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.InvalidArgument("role name")
	}

	existing, err := u.store.FindByName(ctx, Normalize(name))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrRoleAlreadyExists
	}

	role := &entity.Role[K]{ID: u.newID()}
	if err := u.store.SetRoleName(ctx, role, name); err != nil {
		return nil, err
	}
	if err := u.store.SetNormalizedRoleName(ctx, role, Normalize(name)); err != nil {
		return nil, err
	}
	if err := u.store.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// DeleteRole deletes the role identified by roleID.
func (u *RoleUsecase[K]) DeleteRole(ctx context.Context, roleID string) error {
	role, err := u.findRole(ctx, roleID)
	if err != nil {
		return err
	}
	return u.store.Delete(ctx, role)
}

// ListRoles returns one page of roles ordered by normalized name.
// A non-positive limit, or one above maxPageSize, is clamped to maxPageSize.
func (u *RoleUsecase[K]) ListRoles(ctx context.Context, limit, offset int) ([]entity.Role[K], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	roles := []entity.Role[K]{}
	err := u.store.Roles(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "NormalizedName"}}).
		Limit(limit).
		Offset(offset).
		Find(&roles).Error
	if err != nil {
		return nil, domain.Persistence("list roles", err)
	}
	return roles, nil
}

// AddRoleClaim attaches a claim to the role identified by roleID.
func (u *RoleUsecase[K]) AddRoleClaim(ctx context.Context, roleID string, claim entity.Claim) error {
	role, err := u.findRole(ctx, roleID)
	if err != nil {
		return err
	}
	return u.store.AddClaim(ctx, role, claim)
}

// RoleClaims lists the claims of the role identified by roleID.
func (u *RoleUsecase[K]) RoleClaims(ctx context.Context, roleID string) ([]entity.Claim, error) {
	role, err := u.findRole(ctx, roleID)
	if err != nil {
		return nil, err
	}
	return u.store.GetClaims(ctx, role)
}

func (u *RoleUsecase[K]) findRole(ctx context.Context, roleID string) (*entity.Role[K], error) {
	role, err := u.store.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrRoleNotFound
	}
	return role, nil
}
