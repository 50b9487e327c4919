package entities

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// AttributeKeyPrefix namespaces generated attribute keys. Hand-entered keys
// that avoid this prefix can never collide with a generated one.
const AttributeKeyPrefix = "attr_"

// attributeKeyEntropy is the number of random bytes in a generated key.
// 8 bytes gives 16 hex characters, enough that collisions within an
// editing session are negligible.
const attributeKeyEntropy = 8

// GenerateAttributeKey produces a fresh storage key for a new attribute
// definition. Uniqueness is probabilistic and client-side only; the store
// is the final arbiter and rejects duplicates per schema at write time.
func GenerateAttributeKey() string {
	buf := make([]byte, attributeKeyEntropy)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken; there is no
		// reasonable fallback for identifier generation.
		panic(fmt.Sprintf("entities: reading random bytes: %v", err))
	}
	return AttributeKeyPrefix + hex.EncodeToString(buf)
}

// IsGeneratedAttributeKey reports whether key carries the generated-key
// namespace prefix.
func IsGeneratedAttributeKey(key string) bool {
	return strings.HasPrefix(key, AttributeKeyPrefix)
}
