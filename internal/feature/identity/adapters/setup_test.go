package adapters

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"identity_backend/internal/feature/identity/domain/entity"
	"identity_backend/internal/feature/identity/domain/key"
)

// setupTestDB prepares an in-memory SQLite database with the identity schema.
// A single connection keeps every statement on the same in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(entity.Models[string]()...)
	require.NoError(t, err, "failed to migrate tables")

	return db
}

// countStatements counts every statement GORM sends to the database from now on.
func countStatements(t *testing.T, db *gorm.DB) *atomic.Int64 {
	t.Helper()

	var n atomic.Int64
	inc := func(*gorm.DB) { n.Add(1) }

	cb := db.Callback()
	require.NoError(t, cb.Create().Before("gorm:create").Register("test:count_create", inc))
	require.NoError(t, cb.Query().Before("gorm:query").Register("test:count_query", inc))
	require.NoError(t, cb.Update().Before("gorm:update").Register("test:count_update", inc))
	require.NoError(t, cb.Delete().Before("gorm:delete").Register("test:count_delete", inc))
	require.NoError(t, cb.Row().Before("gorm:row").Register("test:count_row", inc))
	require.NoError(t, cb.Raw().Before("gorm:raw").Register("test:count_raw", inc))
	return &n
}

func newStores(t *testing.T) (*gorm.DB, *UserStore[string], *RoleStore[string]) {
	t.Helper()
	db := setupTestDB(t)
	return db, NewUserStore[string](db, key.String{}), NewRoleStore[string](db, key.String{})
}

// createUser persists a user with normalized name and email derived from name.
func createUser(t *testing.T, users *UserStore[string], name string) *entity.User[string] {
	t.Helper()

	u := entity.NewUser(name)
	u.NormalizedUserName = strings.ToUpper(name)
	u.Email = name + "@example.com"
	u.NormalizedEmail = strings.ToUpper(u.Email)
	require.NoError(t, users.Create(context.Background(), u), "failed to create test user")
	return u
}

func createRole(t *testing.T, roles *RoleStore[string], name string) *entity.Role[string] {
	t.Helper()

	r := entity.NewRole(name)
	r.NormalizedName = strings.ToUpper(name)
	require.NoError(t, roles.Create(context.Background(), r), "failed to create test role")
	return r
}

func canceledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}
