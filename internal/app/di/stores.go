// Package di provides dependency injection factories for creating application components.
package di

import (
	"gorm.io/gorm"

	"identity_backend/internal/feature/identity/adapters"
	"identity_backend/internal/feature/identity/domain/key"
	"identity_backend/internal/feature/identity/usecase"
)

// Stores bundles the capability views of the user and role stores.
type Stores[K comparable] struct {
	Accounts usecase.AccountStore[K]
	Roles    usecase.RoleManagementStore[K]
}

// NewStores creates the user and role stores over db for the key type K.
func NewStores[K comparable](db *gorm.DB, keys key.Converter[K]) Stores[K] {
	return Stores[K]{
		Accounts: adapters.NewUserStore(db, keys),
		Roles:    adapters.NewRoleStore(db, keys),
	}
}

// NewDefaultStores creates stores keyed by UUID text, the default key type.
func NewDefaultStores(db *gorm.DB) Stores[string] {
	return NewStores[string](db, key.String{})
}
