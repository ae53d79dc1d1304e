package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

const apiKeyBytes = 32

// GenerateAPIKey returns a random hex key and the hash to persist.
func GenerateAPIKey() (string, []byte, error) {
	buf := make([]byte, apiKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", nil, fmt.Errorf("generate api key: %w", err)
	}
	key := hex.EncodeToString(buf)
	return key, HashAPIKey(key), nil
}

func HashAPIKey(key string) []byte {
	sum := sha256.Sum256([]byte(key))
	return sum[:]
}
