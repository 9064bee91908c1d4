package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashString returns the hex HMAC-SHA256 of data under key. Equal inputs give
// equal tokens, which is what lets the pseudonym index answer equality
// searches without decrypting anything.
//
//	token := utils.HashString("patients.email:jean@example.org", pseudonymKey)
func HashString(data string, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
