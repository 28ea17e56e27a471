package tokens

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-32-bytes-should-be-long-enough"

func TestGenerateAccessToken_ValidAndClaims(t *testing.T) {
	tokenStr, err := GenerateAccessToken(testSecret, "user-123", 2*time.Minute)
	require.NoError(t, err)
	require.Equal(t, 3, len(strings.Split(tokenStr, ".")))

	parsed, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, "user-123", claims["sub"])
}

func TestGenerateAccessToken_EmptySecret(t *testing.T) {
	_, err := GenerateAccessToken("", "user-123", time.Minute)
	require.Error(t, err)
}

func TestHMACVerifier(t *testing.T) {
	v := NewHMACVerifier(testSecret)
	ctx := context.Background()

	good, err := GenerateAccessToken(testSecret, "user-1", time.Minute)
	require.NoError(t, err)
	tok, err := v.Verify(ctx, good)
	require.NoError(t, err)
	var claims map[string]interface{}
	require.NoError(t, tok.Claims(&claims))
	require.Equal(t, "user-1", claims["sub"])

	other, err := GenerateAccessToken("another-secret-of-decent-length!!", "user-1", time.Minute)
	require.NoError(t, err)
	_, err = v.Verify(ctx, other)
	require.Error(t, err)

	expired, err := GenerateAccessToken(testSecret, "user-1", -time.Minute)
	require.NoError(t, err)
	_, err = v.Verify(ctx, expired)
	require.Error(t, err)

	_, err = v.Verify(ctx, "not-a-token")
	require.Error(t, err)
}
