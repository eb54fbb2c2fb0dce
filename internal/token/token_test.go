package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndVerifyUserRoundTrip(t *testing.T) {
	signed, err := IssueUser(UserClaims{UserID: 42, SecretID: "S42"}, "secret-a", time.Hour)
	require.NoError(t, err)

	claims, err := VerifyUser(signed, "secret-a")
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.UserID)
	require.Equal(t, "S42", claims.SecretID)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signed, err := IssueUser(UserClaims{UserID: 1, SecretID: "S1"}, "secret-a", time.Hour)
	require.NoError(t, err)

	_, err = VerifyUser(signed, "secret-b")
	require.ErrorIs(t, err, ErrInvalid)
}

func TestVerifyDistinguishesExpiredFromInvalid(t *testing.T) {
	signed, err := IssueUser(UserClaims{UserID: 1, SecretID: "S1"}, "secret-a", -time.Minute)
	require.NoError(t, err)

	_, err = VerifyUser(signed, "secret-a")
	require.ErrorIs(t, err, ErrExpired)
	require.NotErrorIs(t, err, ErrInvalid)
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	_, err := Verify("not-a-token", "secret-a")
	require.ErrorIs(t, err, ErrInvalid)
}

func TestTokenWithoutExpiryIsAlwaysValid(t *testing.T) {
	signed, err := IssueSuperAdmin(SuperAdminClaims{
		Username:      "root",
		Password:      "pw",
		SessionSecret: "ss",
	}, "super-secret")
	require.NoError(t, err)

	claims, err := VerifySuperAdmin(signed, "super-secret")
	require.NoError(t, err)
	require.Equal(t, "root", claims.Username)
	require.Equal(t, "pw", claims.Password)
	require.Equal(t, "ss", claims.SessionSecret)
}
