package entity

// LoginInfo describes an external login as handed over by an identity provider.
type LoginInfo struct {
	LoginProvider       string `json:"login_provider"`
	ProviderKey         string `json:"provider_key"`
	ProviderDisplayName string `json:"provider_display_name"`
}

// Valid reports whether both the provider and the provider key are set.
func (l LoginInfo) Valid() bool {
	return l.LoginProvider != "" && l.ProviderKey != ""
}

// UserLogin associates an external login with a user.
//
// The primary key is (LoginProvider, ProviderDisplayName) as in the existing schema,
// although lookups go through (LoginProvider, ProviderKey). See DESIGN.md.
type UserLogin[K comparable] struct {
	LoginProvider       string `gorm:"column:LoginProvider;primaryKey;index:idx_user_logins_provider_key,priority:1"`
	ProviderDisplayName string `gorm:"column:ProviderDisplayName;primaryKey"`
	ProviderKey         string `gorm:"column:ProviderKey;index:idx_user_logins_provider_key,priority:2"`
	UserID              K      `gorm:"column:UserId;index"`
}

// TableName returns the table name for GORM.
func (UserLogin[K]) TableName() string {
	return TableUserLogins
}

// ToLoginInfo converts the row to a LoginInfo.
func (l *UserLogin[K]) ToLoginInfo() LoginInfo {
	return LoginInfo{
		LoginProvider:       l.LoginProvider,
		ProviderKey:         l.ProviderKey,
		ProviderDisplayName: l.ProviderDisplayName,
	}
}
