package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	auth := SetupAuth("test-secret")

	token, err := auth.GenerateToken(42, "maria@example.com", "CUSTOMER")
	require.NoError(t, err)

	claims, err := auth.VerifyToken(token)
	require.NoError(t, err)
	require.EqualValues(t, 42, claims.UserID)
	require.Equal(t, "maria@example.com", claims.Email)
	require.Equal(t, "CUSTOMER", claims.Role)

	// Bearer prefix is accepted too.
	claims, err = auth.VerifyToken("Bearer " + token)
	require.NoError(t, err)
	require.EqualValues(t, 42, claims.UserID)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := SetupAuth("secret-a").GenerateToken(42, "maria@example.com", "CUSTOMER")
	require.NoError(t, err)

	_, err = SetupAuth("secret-b").VerifyToken(token)
	require.Error(t, err)
}

func TestResetTokenIsNotASession(t *testing.T) {
	auth := SetupAuth("test-secret")

	resetToken, err := auth.GenerateResetToken(42, "maria@example.com")
	require.NoError(t, err)

	_, err = auth.VerifyToken(resetToken)
	require.Error(t, err)

	claims, err := auth.VerifyResetToken(resetToken)
	require.NoError(t, err)
	require.EqualValues(t, 42, claims.UserID)
}

func TestSessionTokenIsNotAReset(t *testing.T) {
	auth := SetupAuth("test-secret")

	sessionToken, err := auth.GenerateToken(42, "maria@example.com", "CUSTOMER")
	require.NoError(t, err)

	_, err = auth.VerifyResetToken(sessionToken)
	require.Error(t, err)
}

func TestGenerateOTP(t *testing.T) {
	code, hash, expiresAt, err := GenerateOTP()
	require.NoError(t, err)
	require.Len(t, code, 6)
	require.True(t, expiresAt.After(time.Now()))

	require.True(t, VerifyOTP(code, hash))
	require.False(t, VerifyOTP("000000", hash))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	auth := SetupAuth("test-secret")
	require.NoError(t, auth.VerifyPassword("secret123", hash))
	require.Error(t, auth.VerifyPassword("wrong", hash))
}
