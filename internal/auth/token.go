package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/smoraleda/crmcore/internal/models"
)

// TokenManager signs and verifies bearer tokens. The signing key is fixed
// at construction; verification is a pure function of token and key.
// There is no revocation: tokens are invalidated only by expiry.
type TokenManager struct {
	signingKey []byte
	expiry     time.Duration
}

// NewTokenManager creates a TokenManager with the given key and token TTL.
func NewTokenManager(signingKey string, expiry time.Duration) *TokenManager {
	return &TokenManager{
		signingKey: []byte(signingKey),
		expiry:     expiry,
	}
}

// Issue mints a signed token asserting the user's identity and role.
func (tm *TokenManager) Issue(userID, roleID string) (string, error) {
	now := time.Now()

	claims := &models.TokenClaims{
		UserID: userID,
		RoleID: roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(tm.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify parses and validates a token, returning its claims.
// Fails on malformed encoding, signature mismatch, or expiry.
func (tm *TokenManager) Verify(tokenString string) (*models.TokenClaims, error) {
	claims := &models.TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tm.signingKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, models.ErrUnauthorized
	}

	if claims.UserID == "" || claims.RoleID == "" {
		return nil, fmt.Errorf("invalid token: missing identity claims")
	}

	return claims, nil
}
