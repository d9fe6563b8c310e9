package jwthelper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("test-signing-key")

func TestGenerateAndParseToken(t *testing.T) {
	signed, err := GenerateToken(testKey, 42, "curl/8.0")
	require.NoError(t, err)

	claims, err := ParseToken(testKey, signed)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "curl/8.0", claims.UserAgent)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestParseTokenWrongKey(t *testing.T) {
	signed, err := GenerateToken(testKey, 42, "")
	require.NoError(t, err)

	_, err = ParseToken([]byte("some-other-key"), signed)
	assert.Error(t, err)
}

func TestParseTokenTampered(t *testing.T) {
	signed, err := GenerateToken(testKey, 42, "")
	require.NoError(t, err)

	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + ".eyJ1aWQiOjF9." + parts[2]

	_, err = ParseToken(testKey, tampered)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken(testKey, "not.a.token")
	assert.Error(t, err)
}

func TestParseTokenZeroUserID(t *testing.T) {
	signed, err := GenerateToken(testKey, 0, "")
	require.NoError(t, err)

	_, err = ParseToken(testKey, signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
