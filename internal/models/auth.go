package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the payload of a bearer token: a signed, time-bounded
// assertion of user identity and role. Tokens are never persisted.
type TokenClaims struct {
	UserID string `json:"user_id"`
	RoleID string `json:"role_id"`
	jwt.RegisteredClaims
}
