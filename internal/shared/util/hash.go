package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// Checksum returns the hex sha256 of an upload body.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
