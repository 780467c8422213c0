package adapters

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"identity_backend/internal/feature/identity/domain"
	"identity_backend/internal/feature/identity/domain/entity"
)

// GetClaims lists the claims of the user. Order is not guaranteed.
func (s *UserStore[K]) GetClaims(ctx context.Context, user *entity.User[K]) ([]entity.Claim, error) {
	if err := check(ctx, "user", user); err != nil {
		return nil, err
	}

	var rows []entity.UserClaim[K]
	if err := s.db.WithContext(ctx).Where(map[string]any{"UserId": user.ID}).Find(&rows).Error; err != nil {
		return nil, domain.Persistence("get claims", err)
	}

	claims := make([]entity.Claim, len(rows))
	for i := range rows {
		claims[i] = rows[i].ToClaim()
	}
	return claims, nil
}

// AddClaims inserts one row per claim in a single transaction: either every claim
// is stored or none is. Duplicates are stored as given.
func (s *UserStore[K]) AddClaims(ctx context.Context, user *entity.User[K], claims []entity.Claim) error {
	if err := checkClaims(ctx, user, claims); err != nil {
		return err
	}
	if len(claims) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range claims {
			row := &entity.UserClaim[K]{UserID: user.ID, ClaimType: c.Type, ClaimValue: c.Value}
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Persistence("add claims", err)
	}
	return nil
}

// ReplaceClaim rewrites every row of the user matching claim to newClaim.
// Nothing happens when no row matches.
func (s *UserStore[K]) ReplaceClaim(ctx context.Context, user *entity.User[K], claim, newClaim entity.Claim) error {
	if err := check(ctx, "user", user); err != nil {
		return err
	}
	if !claim.Valid() {
		return domain.InvalidArgument("claim")
	}
	if !newClaim.Valid() {
		return domain.InvalidArgument("new claim")
	}

	err := s.db.WithContext(ctx).
		Model(&entity.UserClaim[K]{}).
		Where(claimConds(user.ID, claim)).
		Updates(map[string]any{"ClaimType": newClaim.Type, "ClaimValue": newClaim.Value}).Error
	if err != nil {
		return domain.Persistence("replace claim", err)
	}
	return nil
}

// RemoveClaims deletes, for each claim, every matching row of the user.
// Each delete runs on its own; a failure leaves earlier deletes in place.
func (s *UserStore[K]) RemoveClaims(ctx context.Context, user *entity.User[K], claims []entity.Claim) error {
	if err := checkClaims(ctx, user, claims); err != nil {
		return err
	}

	db := s.db.WithContext(ctx)
	for _, c := range claims {
		if err := db.Where(claimConds(user.ID, c)).Delete(&entity.UserClaim[K]{}).Error; err != nil {
			return domain.Persistence("remove claims", err)
		}
	}
	return nil
}

// GetUsersForClaim returns every user holding a claim equal to claim.
func (s *UserStore[K]) GetUsersForClaim(ctx context.Context, claim entity.Claim) ([]*entity.User[K], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !claim.Valid() {
		return nil, domain.InvalidArgument("claim")
	}

	var users []*entity.User[K]
	err := s.db.WithContext(ctx).
		Distinct().
		Joins(joinOn,
			clause.Table{Name: entity.TableUserClaims},
			column(entity.TableUserClaims, "UserId"),
			column(entity.TableUsers, "Id")).
		Where(clause.Eq{Column: column(entity.TableUserClaims, "ClaimType"), Value: claim.Type}).
		Where(clause.Eq{Column: column(entity.TableUserClaims, "ClaimValue"), Value: claim.Value}).
		Find(&users).Error
	if err != nil {
		return nil, domain.Persistence("get users for claim", err)
	}
	return users, nil
}

func claimConds[K comparable](userID K, c entity.Claim) map[string]any {
	return map[string]any{"UserId": userID, "ClaimType": c.Type, "ClaimValue": c.Value}
}

// checkClaims validates the whole batch before any row is touched.
func checkClaims[K comparable](ctx context.Context, user *entity.User[K], claims []entity.Claim) error {
	if err := check(ctx, "user", user); err != nil {
		return err
	}
	if claims == nil {
		return domain.InvalidArgument("claims")
	}
	for _, c := range claims {
		if !c.Valid() {
			return domain.InvalidArgument("claim")
		}
	}
	return nil
}
