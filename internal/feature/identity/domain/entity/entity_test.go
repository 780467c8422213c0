package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser_AssignsUniqueID(t *testing.T) {
	t.Parallel()

	a := NewUser("alice")
	b := NewUser("alice")

	require.NotEmpty(t, a.ID)
	_, err := uuid.Parse(a.ID)
	assert.NoError(t, err, "ID should be a UUID rendered as text")
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "alice", a.UserName)
}

func TestNewRole_AssignsUniqueID(t *testing.T) {
	t.Parallel()

	r := NewRole("Admin")

	_, err := uuid.Parse(r.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Admin", r.Name)
	assert.Empty(t, r.NormalizedName, "normalization is the caller's job")
}

func TestTableNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Users", User[string]{}.TableName())
	assert.Equal(t, "Roles", Role[string]{}.TableName())
	assert.Equal(t, "UserClaims", UserClaim[string]{}.TableName())
	assert.Equal(t, "RoleClaims", RoleClaim[string]{}.TableName())
	assert.Equal(t, "UserLogins", UserLogin[int64]{}.TableName())
	assert.Equal(t, "UserRoles", UserRole[uuid.UUID]{}.TableName())
}

func TestClaim_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, Claim{Type: "department", Value: "engineering"}.Valid())
	assert.True(t, Claim{Type: "flag"}.Valid(), "empty value is allowed")
	assert.False(t, Claim{Value: "engineering"}.Valid())
}

func TestLoginInfo_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, LoginInfo{LoginProvider: "google", ProviderKey: "123"}.Valid())
	assert.False(t, LoginInfo{LoginProvider: "google"}.Valid())
	assert.False(t, LoginInfo{ProviderKey: "123"}.Valid())
}

func TestRowConversions(t *testing.T) {
	t.Parallel()

	uc := &UserClaim[string]{UserID: "u1", ClaimType: "t", ClaimValue: "v"}
	rc := &RoleClaim[string]{RoleID: "r1", ClaimType: "t2", ClaimValue: "v2"}
	ul := &UserLogin[string]{LoginProvider: "github", ProviderKey: "k", ProviderDisplayName: "GitHub", UserID: "u1"}

	assert.Equal(t, Claim{Type: "t", Value: "v"}, uc.ToClaim())
	assert.Equal(t, Claim{Type: "t2", Value: "v2"}, rc.ToClaim())
	assert.Equal(t, LoginInfo{LoginProvider: "github", ProviderKey: "k", ProviderDisplayName: "GitHub"}, ul.ToLoginInfo())
}

func TestModels(t *testing.T) {
	t.Parallel()

	models := Models[string]()

	assert.Len(t, models, 6)
	assert.IsType(t, &User[string]{}, models[0])
	assert.IsType(t, &UserRole[string]{}, models[5])
}
