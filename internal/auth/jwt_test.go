package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundtrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	tok, jti, exp, err := Sign(42)
	require.NoError(t, err)
	assert.NotEmpty(t, jti)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, jti, claims.JTI)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	tok, _, _, err := Sign(42)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, err = Verify(tok)
	assert.Error(t, err)
}

func TestTTLFromEnv(t *testing.T) {
	t.Setenv("JWT_TTL_HOURS", "3")
	assert.Equal(t, 3*time.Hour, TTL())

	t.Setenv("JWT_TTL_HOURS", "nonsense")
	assert.Equal(t, time.Hour, TTL())
}

func TestVerificationTokenRoundtrip(t *testing.T) {
	t.Setenv("VERIFY_SECRET", "verify-secret")
	sig, err := SignVerification(7)
	require.NoError(t, err)

	id, err := VerifySignature(sig)
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)
}

func TestVerificationRejectsAccessToken(t *testing.T) {
	// an access token must not pass as a verification signature even when
	// the two secrets match
	t.Setenv("JWT_SECRET", "same-secret")
	t.Setenv("VERIFY_SECRET", "same-secret")
	tok, _, _, err := Sign(7)
	require.NoError(t, err)

	_, err = VerifySignature(tok)
	assert.Error(t, err)
}

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NoError(t, CheckPassword(hash, "password123"))
	assert.Error(t, CheckPassword(hash, "wrongpass"))
}
