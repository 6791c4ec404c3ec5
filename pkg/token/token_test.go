package token

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	tok, err := Generate()
	require.NoError(t, err)
	assert.Len(t, tok, DefaultLength*2)

	_, err = hex.DecodeString(tok)
	assert.NoError(t, err)
}

func TestGenerateN(t *testing.T) {
	tok, err := GenerateN(8)
	require.NoError(t, err)
	assert.Len(t, tok, 16)
}

func TestTokensAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := Generate()
		require.NoError(t, err)
		require.False(t, seen[tok])
		seen[tok] = true
	}
}
