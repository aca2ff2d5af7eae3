package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret-with-enough-entropy", 24*time.Hour)

	token, err := tm.Issue("user-123", "role-456")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "role-456", claims.RoleID)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenManager_ExpiredTokenRejected(t *testing.T) {
	tm := NewTokenManager("test-secret-with-enough-entropy", -time.Minute)

	token, err := tm.Issue("user-123", "role-456")
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.Error(t, err)
}

func TestTokenManager_AcceptedBeforeExpiry(t *testing.T) {
	tm := NewTokenManager("test-secret-with-enough-entropy", 2*time.Second)

	token, err := tm.Issue("user-123", "role-456")
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.NoError(t, err)
}

func TestTokenManager_SignatureMismatchRejected(t *testing.T) {
	issuer := NewTokenManager("issuer-secret-with-enough-entropy", time.Hour)
	verifier := NewTokenManager("different-secret-entirely-here", time.Hour)

	token, err := issuer.Issue("user-123", "role-456")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestTokenManager_MalformedTokenRejected(t *testing.T) {
	tm := NewTokenManager("test-secret-with-enough-entropy", time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJIUzI1NiJ9"} {
		_, err := tm.Verify(token)
		assert.Error(t, err, "token %q should be rejected", token)
	}
}

func TestTokenManager_MissingIdentityClaimsRejected(t *testing.T) {
	tm := NewTokenManager("test-secret-with-enough-entropy", time.Hour)

	token, err := tm.Issue("", "")
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.Error(t, err)
}
