package entity

// Claim is a (type, value) pair of metadata attached to a user or a role.
type Claim struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Valid reports whether the claim carries a type. A claim without one is malformed.
func (c Claim) Valid() bool {
	return c.Type != ""
}

// UserClaim stores one claim of a user. Identical triples may repeat.
type UserClaim[K comparable] struct {
	ID         int    `gorm:"column:Id;primaryKey;autoIncrement"`
	UserID     K      `gorm:"column:UserId;index"`
	ClaimType  string `gorm:"column:ClaimType"`
	ClaimValue string `gorm:"column:ClaimValue"`
}

// TableName returns the table name for GORM.
func (UserClaim[K]) TableName() string {
	return TableUserClaims
}

// ToClaim converts the row to a Claim.
func (c *UserClaim[K]) ToClaim() Claim {
	return Claim{Type: c.ClaimType, Value: c.ClaimValue}
}

// RoleClaim stores one claim of a role. Identical triples may repeat.
type RoleClaim[K comparable] struct {
	ID         int    `gorm:"column:Id;primaryKey;autoIncrement"`
	RoleID     K      `gorm:"column:RoleId;index"`
	ClaimType  string `gorm:"column:ClaimType"`
	ClaimValue string `gorm:"column:ClaimValue"`
}

// TableName returns the table name for GORM.
func (RoleClaim[K]) TableName() string {
	return TableRoleClaims
}

// ToClaim converts the row to a Claim.
func (c *RoleClaim[K]) ToClaim() Claim {
	return Claim{Type: c.ClaimType, Value: c.ClaimValue}
}
