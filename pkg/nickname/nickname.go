package nickname

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Candidate nicknames are adjective_noun_NNN. They are human readable
// but not guaranteed unique; callers retry on collision against the
// store's unique constraint.

var adjectives = []string{
	"brave", "calm", "clever", "eager", "gentle", "happy", "keen",
	"lively", "merry", "nimble", "proud", "quick", "quiet", "sharp",
	"silent", "swift", "vivid", "warm", "wise", "witty",
}

var nouns = []string{
	"falcon", "otter", "badger", "heron", "lynx", "marten", "osprey",
	"panther", "raven", "salmon", "sparrow", "tiger", "walrus", "wren",
	"beaver", "condor", "dolphin", "gazelle", "ibex", "jaguar",
}

// Generate returns a candidate nickname such as "swift_otter_042".
func Generate() (string, error) {
	adj, err := pick(adjectives)
	if err != nil {
		return "", err
	}
	noun, err := pick(nouns)
	if err != nil {
		return "", err
	}
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		return "", fmt.Errorf("failed to generate nickname suffix: %w", err)
	}
	return fmt.Sprintf("%s_%s_%03d", adj, noun, n.Int64()), nil
}

func pick(words []string) (string, error) {
	i, err := rand.Int(rand.Reader, big.NewInt(int64(len(words))))
	if err != nil {
		return "", fmt.Errorf("failed to pick nickname word: %w", err)
	}
	return words[i.Int64()], nil
}
