package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// keyVersion is bumped whenever the cached layout or artifact encoding
// changes, so entries written by older builds are never read back.
const keyVersion = "v1"

// hashKey returns kind:v1:sha256(json(parts)).
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s:%s", kind, keyVersion, hex.EncodeToString(sum[:]))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ClientPrefix returns the key prefix for a client id. The id itself never
// appears in a key; clients are told apart by the first 16 hex digits of
// its hash.
func ClientPrefix(client string) string {
	return "client:" + Hash([]byte(client))[:16] + ":"
}
