package jwthelper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	key := []byte("test-signing-key")

	token, err := GenerateToken(key, Claims{
		UserID:    42,
		Role:      "student",
		StudentID: 7,
	}, DefaultTokenTTL)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(key, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "student", claims.Role)
	assert.Equal(t, uint(7), claims.StudentID)
	assert.Zero(t, claims.StallID)
}

func TestParseTokenWrongKey(t *testing.T) {
	token, err := GenerateToken([]byte("key-one"), Claims{UserID: 1, Role: "admin"}, DefaultTokenTTL)
	require.NoError(t, err)

	_, err = ParseToken([]byte("key-two"), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenExpired(t *testing.T) {
	key := []byte("test-signing-key")

	token, err := GenerateToken(key, Claims{UserID: 1, Role: "staff", StallID: 3}, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(key, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken([]byte("key"), "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
