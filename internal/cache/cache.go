package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a versioned cache key from an arbitrary identifier
// (e.g. a search query). Bump the version to invalidate old entries.
func Key(id string) string {
	hash := sha256.Sum256([]byte(id))
	return "claimlens:v1:" + hex.EncodeToString(hash[:])
}
