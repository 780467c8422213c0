package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"identity_backend/internal/feature/identity/domain"
	"identity_backend/internal/feature/identity/domain/entity"
)

// AddLogin links an external login to the user inside a transaction.
func (s *UserStore[K]) AddLogin(ctx context.Context, user *entity.User[K], login entity.LoginInfo) error {
	if err := check(ctx, "user", user); err != nil {
		return err
	}
	if !login.Valid() {
		return domain.InvalidArgument("login")
	}

	row := &entity.UserLogin[K]{
		LoginProvider:       login.LoginProvider,
		ProviderKey:         login.ProviderKey,
		ProviderDisplayName: login.ProviderDisplayName,
		UserID:              user.ID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(row).Error
	})
	if err != nil {
		return domain.Persistence("add login", err)
	}
	return nil
}

// RemoveLogin deletes the user's login for (loginProvider, providerKey).
// Removing a login that does not exist is not an error.
func (s *UserStore[K]) RemoveLogin(ctx context.Context, user *entity.User[K], loginProvider, providerKey string) error {
	if err := check(ctx, "user", user); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).
		Where(map[string]any{
			"UserId":        user.ID,
			"LoginProvider": loginProvider,
			"ProviderKey":   providerKey,
		}).
		Delete(&entity.UserLogin[K]{}).Error
	if err != nil {
		return domain.Persistence("remove login", err)
	}
	return nil
}

// GetLogins lists the external logins of the user.
func (s *UserStore[K]) GetLogins(ctx context.Context, user *entity.User[K]) ([]entity.LoginInfo, error) {
	if err := check(ctx, "user", user); err != nil {
		return nil, err
	}

	var rows []entity.UserLogin[K]
	if err := s.db.WithContext(ctx).Where(map[string]any{"UserId": user.ID}).Find(&rows).Error; err != nil {
		return nil, domain.Persistence("get logins", err)
	}

	logins := make([]entity.LoginInfo, len(rows))
	for i := range rows {
		logins[i] = rows[i].ToLoginInfo()
	}
	return logins, nil
}

// FindByLogin returns the user owning the external login, or nil when there is none.
func (s *UserStore[K]) FindByLogin(ctx context.Context, loginProvider, providerKey string) (*entity.User[K], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var u entity.User[K]
	err := s.db.WithContext(ctx).
		Joins(joinOn,
			clause.Table{Name: entity.TableUserLogins},
			column(entity.TableUserLogins, "UserId"),
			column(entity.TableUsers, "Id")).
		Where(clause.Eq{Column: column(entity.TableUserLogins, "LoginProvider"), Value: loginProvider}).
		Where(clause.Eq{Column: column(entity.TableUserLogins, "ProviderKey"), Value: providerKey}).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, domain.Persistence("find user by login", err)
	}
	return &u, nil
}
