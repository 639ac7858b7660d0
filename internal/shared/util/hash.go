package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentDigest returns the hex SHA-256 of b.
func ContentDigest(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
