package entity

import "github.com/google/uuid"

// Role is a named group users can be members of. Id is immutable once assigned.
type Role[K comparable] struct {
	ID             K      `gorm:"column:Id;primaryKey"`
	Name           string `gorm:"column:Name"`
	NormalizedName string `gorm:"column:NormalizedName;index"`
}

// TableName returns the table name for GORM.
func (Role[K]) TableName() string {
	return TableRoles
}

// NewRole returns a role keyed by a fresh UUID rendered as text.
func NewRole(name string) *Role[string] {
	return &Role[string]{
		ID:   uuid.NewString(),
		Name: name,
	}
}

// UserRole is a pure association row between a user and a role.
// Both referenced rows are expected to exist; no foreign key is declared.
type UserRole[K comparable] struct {
	RoleID K `gorm:"column:RoleId;primaryKey"`
	UserID K `gorm:"column:UserId;primaryKey;index"`
}

// TableName returns the table name for GORM.
func (UserRole[K]) TableName() string {
	return TableUserRoles
}
