package tlaudit

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashContent computes the SHA-256 hash of raw file contents.
func HashContent(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// CacheKey generates the key under which the extraction of one document is
// cached. Findings depend on the content, the target language and the
// exceptions in force, so all three are part of the key.
func CacheKey(contentHash, targetLang, exceptionsFingerprint string) string {
	return contentHash + ":" + targetLang + ":" + exceptionsFingerprint
}
