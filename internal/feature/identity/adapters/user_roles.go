package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"identity_backend/internal/feature/identity/domain"
	"identity_backend/internal/feature/identity/domain/entity"
)

// AddToRole adds the user to the role whose name matches roleName case-insensitively.
// It fails with domain.ErrRoleNotFound when no role matches. Membership is not checked
// first; adding twice is tolerated and leaves a single UserRoles row.
// The lookup and the insert do not share a transaction.
func (s *UserStore[K]) AddToRole(ctx context.Context, user *entity.User[K], roleName string) error {
	if err := checkRoleArgs(ctx, user, roleName); err != nil {
		return err
	}

	role, err := s.roleByName(ctx, roleName)
	if err != nil {
		return err
	}
	if role == nil {
		return domain.ErrRoleNotFound
	}

	row := &entity.UserRole[K]{RoleID: role.ID, UserID: user.ID}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row).Error
	if err != nil {
		return domain.Persistence("add to role", err)
	}
	return nil
}

// RemoveFromRole removes the user from the role matching roleName case-insensitively.
// An unknown role is silently ignored, unlike AddToRole.
func (s *UserStore[K]) RemoveFromRole(ctx context.Context, user *entity.User[K], roleName string) error {
	if err := checkRoleArgs(ctx, user, roleName); err != nil {
		return err
	}

	role, err := s.roleByName(ctx, roleName)
	if err != nil || role == nil {
		return err
	}

	err = s.db.WithContext(ctx).
		Where(map[string]any{"UserId": user.ID, "RoleId": role.ID}).
		Delete(&entity.UserRole[K]{}).Error
	if err != nil {
		return domain.Persistence("remove from role", err)
	}
	return nil
}

// GetRoles returns the names of the roles the user belongs to.
func (s *UserStore[K]) GetRoles(ctx context.Context, user *entity.User[K]) ([]string, error) {
	if err := check(ctx, "user", user); err != nil {
		return nil, err
	}

	names := []string{}
	err := s.db.WithContext(ctx).
		Model(&entity.Role[K]{}).
		Joins(joinOn,
			clause.Table{Name: entity.TableUserRoles},
			column(entity.TableUserRoles, "RoleId"),
			column(entity.TableRoles, "Id")).
		Where(clause.Eq{Column: column(entity.TableUserRoles, "UserId"), Value: user.ID}).
		Pluck(entity.TableRoles+".Name", &names).Error
	if err != nil {
		return nil, domain.Persistence("get roles", err)
	}
	return names, nil
}

// IsInRole reports whether the user belongs to the role matching roleName
// case-insensitively. It only checks for existence.
func (s *UserStore[K]) IsInRole(ctx context.Context, user *entity.User[K], roleName string) (bool, error) {
	if err := checkRoleArgs(ctx, user, roleName); err != nil {
		return false, err
	}

	var rows []entity.UserRole[K]
	err := s.db.WithContext(ctx).
		Joins(joinOn,
			clause.Table{Name: entity.TableRoles},
			column(entity.TableRoles, "Id"),
			column(entity.TableUserRoles, "RoleId")).
		Where(clause.Eq{Column: column(entity.TableUserRoles, "UserId"), Value: user.ID}).
		Where("UPPER(?) = UPPER(?)", column(entity.TableRoles, "Name"), roleName).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return false, domain.Persistence("is in role", err)
	}
	return len(rows) > 0, nil
}

// GetUsersInRole returns every user that belongs to the role matching roleName
// case-insensitively.
func (s *UserStore[K]) GetUsersInRole(ctx context.Context, roleName string) ([]*entity.User[K], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(roleName) == "" {
		return nil, domain.InvalidArgument("role name")
	}

	var users []*entity.User[K]
	err := s.db.WithContext(ctx).
		Joins(joinOn,
			clause.Table{Name: entity.TableUserRoles},
			column(entity.TableUserRoles, "UserId"),
			column(entity.TableUsers, "Id")).
		Joins(joinOn,
			clause.Table{Name: entity.TableRoles},
			column(entity.TableRoles, "Id"),
			column(entity.TableUserRoles, "RoleId")).
		Where("UPPER(?) = UPPER(?)", column(entity.TableRoles, "Name"), roleName).
		Find(&users).Error
	if err != nil {
		return nil, domain.Persistence("get users in role", err)
	}
	return users, nil
}

// roleByName returns the role whose name matches case-insensitively, or nil.
// Both sides are folded by the database so they always fold the same way.
func (s *UserStore[K]) roleByName(ctx context.Context, roleName string) (*entity.Role[K], error) {
	var role entity.Role[K]
	err := s.db.WithContext(ctx).
		Where("UPPER(?) = UPPER(?)", clause.Column{Name: "Name"}, roleName).
		First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, domain.Persistence("find role by name", err)
	}
	return &role, nil
}

func checkRoleArgs[K comparable](ctx context.Context, user *entity.User[K], roleName string) error {
	if err := check(ctx, "user", user); err != nil {
		return err
	}
	if strings.TrimSpace(roleName) == "" {
		return domain.InvalidArgument("role name")
	}
	return nil
}
