package nickname

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nicknamePattern = regexp.MustCompile(`^[a-z]+_[a-z]+_\d{3}$`)

func TestGenerateFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		nick, err := Generate()
		require.NoError(t, err)
		assert.Regexp(t, nicknamePattern, nick)
	}
}

func TestGenerateVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		nick, err := Generate()
		require.NoError(t, err)
		seen[nick] = true
	}
	// 400 word pairs times 1000 suffixes; 50 draws should not all collide
	assert.Greater(t, len(seen), 1)
}
