package jwtmw

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func runAuth(token string) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		c.Request.Header.Set("Authorization", token)
	}
	AuthRequired()(c)
	return w, c
}

func TestAuthRequired_MissingBearerToken(t *testing.T) {
	t.Setenv(EnvKeyJWTSecret, "test-secret")

	tests := []struct {
		name       string
		authHeader string
	}{
		{"no header", ""},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"bearer lowercase", "bearer token123"},
		{"no space after Bearer", "Bearertoken123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, c := runAuth(tt.authHeader)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.True(t, c.IsAborted(), "expected request to be aborted")
		})
	}
}

func TestAuthRequired_MissingJWTSecret(t *testing.T) {
	t.Setenv(EnvKeyJWTSecret, "")

	w, _ := runAuth("Bearer sometoken")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	const testSecret = "test-secret-key-for-invalid"
	t.Setenv(EnvKeyJWTSecret, testSecret)

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	noSubjectStr, _ := noSubject.SignedString([]byte(testSecret))

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	unsignedStr, _ := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name  string
		token string
	}{
		{"malformed token", "not.a.valid.token"},
		{"random string", "randomstring"},
		{"wrong secret", createTokenWithSecret(t, "wrong-secret", time.Hour)},
		{"expired token", createTokenWithSecret(t, testSecret, -time.Hour)},
		{"missing subject", noSubjectStr},
		{"none algorithm", unsignedStr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, c := runAuth("Bearer " + tt.token)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.True(t, c.IsAborted())
		})
	}
}

func TestAuthRequired_ValidToken(t *testing.T) {
	const testSecret = "test-secret-key-for-valid"
	t.Setenv(EnvKeyJWTSecret, testSecret)

	w, c := runAuth("Bearer " + createTokenWithSecret(t, testSecret, time.Hour))

	require.False(t, c.IsAborted(), "response: %s", w.Body.String())
	assert.Equal(t, "user-1", c.GetString(ContextUserID))
	assert.Equal(t, "test@example.com", c.GetString(ContextEmail))
	assert.Equal(t, []string{"Admin"}, c.GetStringSlice(ContextRoles))
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		roles      []string
		wantStatus int
	}{
		{"has role", []string{"Editor", "Admin"}, http.StatusOK},
		{"case-insensitive match", []string{"admin"}, http.StatusOK},
		{"missing role", []string{"Editor"}, http.StatusForbidden},
		{"no roles", nil, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", func(c *gin.Context) {
				c.Set(ContextRoles, tt.roles)
				c.Next()
			}, RequireRole("ADMIN"), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})
			w := httptest.NewRecorder()

			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

// createTokenWithSecret signs a token for "user-1" with the Admin role using the generator.
func createTokenWithSecret(t *testing.T, secret string, expiration time.Duration) string {
	t.Helper()
	signed, err := NewGenerator(secret, expiration).GenerateToken("user-1", "test@example.com", []string{"Admin"}, nil)
	require.NoError(t, err)
	return signed
}
