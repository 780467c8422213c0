// Package entity defines the relational entity schema of the identity feature.
//
// Every entity is generic over the key type K. GORM struct tags carry the table
// mapping; column names are part of the persisted contract and must not change.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Table names shared with any other consumer of the same schema.
const (
	TableUsers      = "Users"
	TableRoles      = "Roles"
	TableUserClaims = "UserClaims"
	TableRoleClaims = "RoleClaims"
	TableUserLogins = "UserLogins"
	TableUserRoles  = "UserRoles"
)

// User is one principal. Id is immutable once assigned.
type User[K comparable] struct {
	ID                   K          `gorm:"column:Id;primaryKey"`
	UserName             string     `gorm:"column:UserName"`
	NormalizedUserName   string     `gorm:"column:NormalizedUserName;index"`
	Email                string     `gorm:"column:Email"`
	NormalizedEmail      string     `gorm:"column:NormalizedEmail;index"`
	EmailConfirmed       bool       `gorm:"column:EmailConfirmed;not null"`
	PasswordHash         string     `gorm:"column:PasswordHash"`
	SecurityStamp        string     `gorm:"column:SecurityStamp"`
	PhoneNumber          string     `gorm:"column:PhoneNumber"`
	PhoneNumberConfirmed bool       `gorm:"column:PhoneNumberConfirmed;not null"`
	TwoFactorEnabled     bool       `gorm:"column:TwoFactorEnabled;not null"`
	LockoutEnabled       bool       `gorm:"column:LockoutEnabled;not null"`
	LockoutEnd           *time.Time `gorm:"column:LockoutEnd"`
	AccessFailedCount    int        `gorm:"column:AccessFailedCount;not null"`
}

// TableName returns the table name for GORM.
func (User[K]) TableName() string {
	return TableUsers
}

// NewUser returns a user keyed by a fresh UUID rendered as text.
func NewUser(userName string) *User[string] {
	return &User[string]{
		ID:       uuid.NewString(),
		UserName: userName,
	}
}
