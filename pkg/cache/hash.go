package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// KeyVersion is mixed into every derived key. Bump it when layout or
// encoding output changes so stale artifacts are never served.
const KeyVersion = "v1"

// hashKey returns "prefix:" followed by the SHA-256 of the JSON-encoded
// parts and KeyVersion.
func hashKey(prefix string, parts ...any) string {
	data, err := json.Marshal(append([]any{KeyVersion}, parts...))
	if err != nil {
		// Keys are built from strings, numbers and option structs.
		panic("cache: unencodable key part: " + err.Error())
	}
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
