// Package jwtmw issues and verifies the HS256 access tokens of the identity service.
package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claim names written into every token besides the registered ones.
const (
	ClaimEmail  = "email"
	ClaimRoles  = "roles"
	ClaimClaims = "claims"
)

// Generator signs access tokens with a shared HMAC secret.
type Generator struct {
	secret     []byte
	expiration time.Duration
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) *Generator {
	return &Generator{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken creates a signed JWT for subject. Roles and claims are copied into
// the payload so that downstream services can authorize without a store lookup.
func (g *Generator) GenerateToken(subject, email string, roles []string, claims map[string][]string) (string, error) {
	if roles == nil {
		roles = []string{}
	}
	if claims == nil {
		claims = map[string][]string{}
	}

	now := time.Now()
	payload := jwt.MapClaims{
		"sub":       subject,
		"exp":       now.Add(g.expiration).Unix(),
		"iat":       now.Unix(),
		ClaimEmail:  email,
		ClaimRoles:  roles,
		ClaimClaims: claims,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
