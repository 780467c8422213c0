package entity

// Models returns one zero value of every entity for the key type K, in dependency
// order, ready to pass to gorm's AutoMigrate.
func Models[K comparable]() []any {
	return []any{
		&User[K]{},
		&Role[K]{},
		&UserClaim[K]{},
		&RoleClaim[K]{},
		&UserLogin[K]{},
		&UserRole[K]{},
	}
}
