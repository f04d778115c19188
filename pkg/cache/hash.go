package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a content-addressed cache key of the form
// "prefix:hex(sha256(parts))". The prefix ("layout", "embedding",
// "summary") keeps key classes distinguishable in redis and in cache
// clear tooling; the hash carries everything the cached value depends
// on, so any input change lands on a fresh key.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash returns the SHA-256 of data as a 64-character hex string. It is
// the same digest the keyer uses, exposed for item-set content hashes.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
