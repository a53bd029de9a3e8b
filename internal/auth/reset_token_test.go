package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetTokens_RoundTrip(t *testing.T) {
	tokens := NewResetTokens("secret", time.Minute)

	token, err := tokens.Issue("user-42")
	require.NoError(t, err)

	userID, ok := tokens.Verify(token)
	assert.True(t, ok)
	assert.Equal(t, "user-42", userID)
}

func TestResetTokens_Expired(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tokens := NewResetTokens("secret", 10*time.Minute).WithClock(func() time.Time { return now })

	token, err := tokens.Issue("user-42")
	require.NoError(t, err)

	later := tokens.WithClock(func() time.Time { return now.Add(11 * time.Minute) })
	_, ok := later.Verify(token)
	assert.False(t, ok)

	almost := tokens.WithClock(func() time.Time { return now.Add(9 * time.Minute) })
	_, ok = almost.Verify(token)
	assert.True(t, ok)
}

func TestResetTokens_WrongKey(t *testing.T) {
	token, err := NewResetTokens("secret", time.Minute).Issue("user-42")
	require.NoError(t, err)

	_, ok := NewResetTokens("another-secret", time.Minute).Verify(token)
	assert.False(t, ok)
}

func TestResetTokens_RejectsBadInput(t *testing.T) {
	tokens := NewResetTokens("secret", time.Minute)

	valid, err := tokens.Issue("user-42")
	require.NoError(t, err)
	parts := strings.Split(valid, ".")
	require.Len(t, parts, 3)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, ResetClaims{
		ResetPassword: "user-42",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, ResetClaims{ResetPassword: "user-42"}).
		SignedString([]byte("secret"))
	require.NoError(t, err)

	emptyClaim, err := jwt.NewWithClaims(jwt.SigningMethodHS256, ResetClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	cases := map[string]string{
		"empty":            "",
		"garbage":          "not-a-token",
		"tampered payload": parts[0] + "." + parts[1] + "x." + parts[2],
		"alg none":         noneToken,
		"missing exp":      noExp,
		"missing user":     emptyClaim,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok := tokens.Verify(token)
			assert.False(t, ok)
		})
	}
}
