package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"identity_backend/internal/feature/identity/domain"
	"identity_backend/internal/feature/identity/domain/entity"
)

func TestUserStore_Logins(t *testing.T) {
	google := entity.LoginInfo{LoginProvider: "google", ProviderKey: "g-123", ProviderDisplayName: "Google"}

	t.Run("find by login after add, nothing after remove", func(t *testing.T) {
		_, users, _ := newStores(t)
		ctx := context.Background()
		u := createUser(t, users, "alice")
		createUser(t, users, "bob")

		require.NoError(t, users.AddLogin(ctx, u, google))

		found, err := users.FindByLogin(ctx, "google", "g-123")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, u.ID, found.ID)
		assert.Equal(t, u.Email, found.Email)

		require.NoError(t, users.RemoveLogin(ctx, u, "google", "g-123"))

		found, err = users.FindByLogin(ctx, "google", "g-123")
		assert.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("get logins lists only the user's logins", func(t *testing.T) {
		_, users, _ := newStores(t)
		ctx := context.Background()
		u := createUser(t, users, "carol")
		other := createUser(t, users, "dave")
		github := entity.LoginInfo{LoginProvider: "github", ProviderKey: "gh-1", ProviderDisplayName: "GitHub"}

		require.NoError(t, users.AddLogin(ctx, u, google))
		require.NoError(t, users.AddLogin(ctx, u, github))
		require.NoError(t, users.AddLogin(ctx, other,
			entity.LoginInfo{LoginProvider: "google", ProviderKey: "g-999", ProviderDisplayName: "Google (work)"}))

		logins, err := users.GetLogins(ctx, u)

		require.NoError(t, err)
		assert.ElementsMatch(t, []entity.LoginInfo{google, github}, logins)
	})

	t.Run("provider key is not part of the table key", func(t *testing.T) {
		_, users, _ := newStores(t)
		ctx := context.Background()
		u := createUser(t, users, "erin")
		require.NoError(t, users.AddLogin(ctx, u, google))

		err := users.AddLogin(ctx, u,
			entity.LoginInfo{LoginProvider: "google", ProviderKey: "g-456", ProviderDisplayName: "Google"})

		assert.ErrorIs(t, err, domain.ErrPersistence)
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})

	t.Run("removing an unknown login is not an error", func(t *testing.T) {
		_, users, _ := newStores(t)
		u := createUser(t, users, "frank")

		assert.NoError(t, users.RemoveLogin(context.Background(), u, "google", "nope"))
	})
}

func TestUserStore_Roles(t *testing.T) {
	t.Run("add to missing role is an invalid operation", func(t *testing.T) {
		_, users, _ := newStores(t)
		u := createUser(t, users, "alice")

		err := users.AddToRole(context.Background(), u, "Admin")

		assert.ErrorIs(t, err, domain.ErrRoleNotFound)
		assert.ErrorIs(t, err, domain.ErrInvalidOperation)
	})

	t.Run("add to existing role", func(t *testing.T) {
		_, users, roles := newStores(t)
		ctx := context.Background()
		u := createUser(t, users, "bob")
		createRole(t, roles, "Admin")
		createRole(t, roles, "Editor")

		require.NoError(t, users.AddToRole(ctx, u, "admin"), "role name match is case-insensitive")

		in, err := users.IsInRole(ctx, u, "Admin")
		require.NoError(t, err)
		assert.True(t, in)

		in, err = users.IsInRole(ctx, u, "Editor")
		require.NoError(t, err)
		assert.False(t, in)

		names, err := users.GetRoles(ctx, u)
		require.NoError(t, err)
		assert.Equal(t, []string{"Admin"}, names)
	})

	t.Run("adding twice is tolerated", func(t *testing.T) {
		_, users, roles := newStores(t)
		ctx := context.Background()
		u := createUser(t, users, "carol")
		createRole(t, roles, "Admin")
		require.NoError(t, users.AddToRole(ctx, u, "Admin"))

		require.NoError(t, users.AddToRole(ctx, u, "ADMIN"))

		names, err := users.GetRoles(ctx, u)
		require.NoError(t, err)
		assert.Equal(t, []string{"Admin"}, names)
	})

	t.Run("non-ASCII role names match", func(t *testing.T) {
		_, users, roles := newStores(t)
		ctx := context.Background()
		a := createUser(t, users, "olga")
		b := createUser(t, users, "peter")
		createRole(t, roles, "ärzte")

		require.NoError(t, users.AddToRole(ctx, a, "ärzte"))
		require.NoError(t, users.AddToRole(ctx, b, "äRZTE"), "ASCII letters still fold")

		in, err := users.IsInRole(ctx, a, "ärzte")
		require.NoError(t, err)
		assert.True(t, in)

		members, err := users.GetUsersInRole(ctx, "ärzte")
		require.NoError(t, err)
		assert.Len(t, members, 2)

		require.NoError(t, users.RemoveFromRole(ctx, a, "ärzte"))
		in, err = users.IsInRole(ctx, a, "ärzte")
		require.NoError(t, err)
		assert.False(t, in)
	})

	t.Run("remove from missing role is a no-op", func(t *testing.T) {
		_, users, _ := newStores(t)
		u := createUser(t, users, "dave")

		assert.NoError(t, users.RemoveFromRole(context.Background(), u, "NonExistentRole"))
	})

	t.Run("remove from role", func(t *testing.T) {
		_, users, roles := newStores(t)
		ctx := context.Background()
		u := createUser(t, users, "erin")
		createRole(t, roles, "Admin")
		require.NoError(t, users.AddToRole(ctx, u, "Admin"))

		require.NoError(t, users.RemoveFromRole(ctx, u, "ADMIN"))

		in, err := users.IsInRole(ctx, u, "Admin")
		require.NoError(t, err)
		assert.False(t, in)
		names, err := users.GetRoles(ctx, u)
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("users in role", func(t *testing.T) {
		_, users, roles := newStores(t)
		ctx := context.Background()
		a := createUser(t, users, "frank")
		b := createUser(t, users, "grace")
		c := createUser(t, users, "heidi")
		createRole(t, roles, "Admin")
		createRole(t, roles, "Editor")
		require.NoError(t, users.AddToRole(ctx, a, "Admin"))
		require.NoError(t, users.AddToRole(ctx, b, "Admin"))
		require.NoError(t, users.AddToRole(ctx, c, "Editor"))

		members, err := users.GetUsersInRole(ctx, "admin")

		require.NoError(t, err)
		ids := make([]string, len(members))
		for i, m := range members {
			ids[i] = m.ID
		}
		assert.ElementsMatch(t, []string{a.ID, b.ID}, ids)
	})

	t.Run("role lookup does not leak between users", func(t *testing.T) {
		_, users, roles := newStores(t)
		ctx := context.Background()
		a := createUser(t, users, "ivan")
		b := createUser(t, users, "judy")
		createRole(t, roles, "Admin")
		require.NoError(t, users.AddToRole(ctx, a, "Admin"))

		in, err := users.IsInRole(ctx, b, "Admin")

		require.NoError(t, err)
		assert.False(t, in)
	})
}

func TestUserStore_Claims(t *testing.T) {
	dept := entity.Claim{Type: "department", Value: "engineering"}

	t.Run("add then remove", func(t *testing.T) {
		_, users, _ := newStores(t)
		ctx := context.Background()
		u := createUser(t, users, "alice")

		require.NoError(t, users.AddClaims(ctx, u, []entity.Claim{dept}))

		claims, err := users.GetClaims(ctx, u)
		require.NoError(t, err)
		assert.Equal(t, []entity.Claim{dept}, claims)

		require.NoError(t, users.RemoveClaims(ctx, u, []entity.Claim{dept}))

		claims, err = users.GetClaims(ctx, u)
		require.NoError(t, err)
		assert.Empty(t, claims)
	})

	t.Run("duplicates are kept and removed together", func(t *testing.T) {
		_, users, _ := newStores(t)
		ctx := context.Background()
		u := createUser(t, users, "bob")
		level := entity.Claim{Type: "level", Value: "3"}

		require.NoError(t, users.AddClaims(ctx, u, []entity.Claim{dept, dept, level}))

		claims, err := users.GetClaims(ctx, u)
		require.NoError(t, err)
		assert.ElementsMatch(t, []entity.Claim{dept, dept, level}, claims)

		require.NoError(t, users.RemoveClaims(ctx, u, []entity.Claim{dept}))

		claims, err = users.GetClaims(ctx, u)
		require.NoError(t, err)
		assert.Equal(t, []entity.Claim{level}, claims)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		db, users, _ := newStores(t)
		u := createUser(t, users, "carol")
		statements := countStatements(t, db)

		require.NoError(t, users.AddClaims(context.Background(), u, []entity.Claim{}))
		assert.Zero(t, statements.Load())
	})

	t.Run("batch insert is all or nothing", func(t *testing.T) {
		db, users, _ := newStores(t)
		ctx := context.Background()
		u := createUser(t, users, "dave")

		// Fail the third insert of the batch.
		var inserts int
		require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_third",
			func(tx *gorm.DB) {
				if tx.Statement.Table != entity.TableUserClaims {
					return
				}
				inserts++
				if inserts == 3 {
					_ = tx.AddError(assert.AnError)
				}
			}))

		err := users.AddClaims(ctx, u, []entity.Claim{
			{Type: "a", Value: "1"},
			{Type: "b", Value: "2"},
			{Type: "c", Value: "3"},
		})

		assert.ErrorIs(t, err, domain.ErrPersistence)
		assert.ErrorIs(t, err, assert.AnError)
		claims, err := users.GetClaims(ctx, u)
		require.NoError(t, err)
		assert.Empty(t, claims, "the first two inserts must be rolled back")
	})

	t.Run("replace rewrites every matching row", func(t *testing.T) {
		_, users, _ := newStores(t)
		ctx := context.Background()
		u := createUser(t, users, "erin")
		other := createUser(t, users, "frank")
		sales := entity.Claim{Type: "department", Value: "sales"}
		require.NoError(t, users.AddClaims(ctx, u, []entity.Claim{dept, dept}))
		require.NoError(t, users.AddClaims(ctx, other, []entity.Claim{dept}))

		require.NoError(t, users.ReplaceClaim(ctx, u, dept, sales))

		claims, err := users.GetClaims(ctx, u)
		require.NoError(t, err)
		assert.Equal(t, []entity.Claim{sales, sales}, claims)

		otherClaims, err := users.GetClaims(ctx, other)
		require.NoError(t, err)
		assert.Equal(t, []entity.Claim{dept}, otherClaims, "other users are untouched")
	})

	t.Run("replace without match is a no-op", func(t *testing.T) {
		_, users, _ := newStores(t)
		u := createUser(t, users, "grace")

		err := users.ReplaceClaim(context.Background(), u, dept, entity.Claim{Type: "x", Value: "y"})

		assert.NoError(t, err)
	})

	t.Run("users for claim", func(t *testing.T) {
		_, users, _ := newStores(t)
		ctx := context.Background()
		a := createUser(t, users, "heidi")
		b := createUser(t, users, "ivan")
		createUser(t, users, "judy")
		require.NoError(t, users.AddClaims(ctx, a, []entity.Claim{dept, dept}))
		require.NoError(t, users.AddClaims(ctx, b, []entity.Claim{dept}))

		holders, err := users.GetUsersForClaim(ctx, dept)

		require.NoError(t, err)
		ids := make([]string, len(holders))
		for i, h := range holders {
			ids[i] = h.ID
		}
		assert.ElementsMatch(t, []string{a.ID, b.ID}, ids)
	})
}
