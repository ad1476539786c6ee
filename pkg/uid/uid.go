package uid

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateSnapshotID randomly generates a unique ID for a computed
// rankings snapshot.
func GenerateSnapshotID() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
