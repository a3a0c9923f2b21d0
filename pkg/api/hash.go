package api

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Digest returns a BLAKE3 hex digest of the script content bytes.
// Bundle requests log it so the embedded content can be checked byte-for-byte.
func (s GeneratedScript) Digest() string {
	return ContentDigest(s.Content)
}

// ContentDigest hashes s exactly as given; no normalization.
func ContentDigest(s string) string {
	sum := blake3.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
