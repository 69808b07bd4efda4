package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDeleteToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateDeleteToken()
		require.NoError(t, err)
		assert.Len(t, token, 32)
		assert.False(t, seen[token], "tokens must not repeat")
		seen[token] = true
	}
}

func TestVerifyDeleteToken(t *testing.T) {
	token, err := GenerateDeleteToken()
	require.NoError(t, err)

	hash := HashDeleteToken(token)
	assert.NotEqual(t, token, hash)
	assert.Len(t, hash, 64)

	assert.True(t, VerifyDeleteToken(token, hash))
	assert.False(t, VerifyDeleteToken("not-the-token", hash))
	assert.False(t, VerifyDeleteToken("", hash))
}
