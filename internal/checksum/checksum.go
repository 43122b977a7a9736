package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the hex SHA-256 of content. Reported after a download so the
// user can verify what was written to disk.
func Sum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// Verify checks content against an expected hex SHA-256.
func Verify(expected string, content []byte) bool {
	return Sum(content) == expected
}
