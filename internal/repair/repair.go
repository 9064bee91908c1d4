// Package repair classifies and best-effort recovers field values whose
// decryption failed, and normalizes them before they reach a display or an
// edit form. Nothing in this package returns an error.
package repair

import (
	"encoding/base64"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/go-hds-keeper/internal/crypto"
	"github.com/MKhiriev/go-hds-keeper/models"
)

const (
	// DecodingFailedMarker is the single display value of a field that could
	// not be decrypted or repaired.
	DecodingFailedMarker = "[DECODING_FAILED]"

	// EncryptionErrorPrefix starts the placeholder written in place of a field
	// whose encryption failed.
	EncryptionErrorPrefix = "[ENCRYPTION_ERROR"

	// DefaultDisplayFallback is shown for unreadable fields in read-only views.
	DefaultDisplayFallback = "Information non disponible"

	minDriftedIVLength = 16
	maxDriftedIVLength = 48

	// IV hex chars guessed exhaustively when lost, 256 candidates at most
	maxGuessedHexChars = 2

	// an IV block plus a tag
	minRepairableBlobLength = 32

	hexDigits = "0123456789abcdefABCDEF"
)

var errorMarkers = []string{
	crypto.DecryptionErrorPrefix,
	EncryptionErrorPrefix,
	DecodingFailedMarker,
}

// boilerplate placeholders written by older clients instead of real data
var boilerplate = map[string]struct{}{
	"information non disponible": {},
	"donnée chiffrée":            {},
	"données chiffrées":          {},
	"non renseigné":              {},
	"chiffré":                    {},
	"encrypted":                  {},
	"n/a":                        {},
	"undefined":                  {},
	"null":                       {},
	"[object object]":            {},
}

// EncryptionErrorPlaceholder returns the placeholder stored for field when its
// encryption failed.
func EncryptionErrorPlaceholder(field string) string {
	return EncryptionErrorPrefix + ":" + field + "]"
}

// IsValidFormat reports whether s is structurally a ciphertext: exactly one
// delimiter, a 32-char hex IV and a non-empty blob.
func IsValidFormat(s string) bool {
	iv, blob, ok := strings.Cut(s, crypto.Delimiter)
	if !ok || strings.Contains(blob, crypto.Delimiter) {
		return false
	}
	return len(iv) == crypto.IVHexLength && isHex(iv) && blob != ""
}

// ResemblesCipherText reports whether s looks like a ciphertext whose IV
// drifted in length. Plaintext that merely contains the delimiter does not
// resemble one.
func ResemblesCipherText(s string) bool {
	parts := strings.Split(s, crypto.Delimiter)
	if len(parts) < 2 {
		return false
	}

	iv := parts[0]
	return len(iv) >= minDriftedIVLength && len(iv) <= maxDriftedIVLength && isHex(iv)
}

// AttemptRepair returns the most likely repair of a drifted value: a short
// IV right-padded with '0', a long one cut to its first 32 hex chars. It
// returns false when s does not resemble a repairable ciphertext. Callers able
// to verify a decryption should walk [RepairCandidates] instead.
func AttemptRepair(s string) (string, bool) {
	candidates := RepairCandidates(s)
	if len(candidates) == 0 {
		return "", false
	}
	return candidates[0], true
}

// RepairCandidates lists the well-formed values s may have been before its IV
// drifted, most likely first. A short IV is padded with zeros on the right,
// then on the left, and when at most two hex chars are missing every possible
// completion at either end follows. A long IV is cut to its first and then its
// last 32 hex chars. The list is empty when s is not repairable.
//
// Every candidate has to be verified by decryption: the tag covers the IV, so
// at most the original one can decrypt.
func RepairCandidates(s string) []string {
	parts := strings.Split(s, crypto.Delimiter)
	if len(parts) < 2 {
		return nil
	}

	iv := strings.ToLower(parts[0])
	if iv == "" || !isHex(iv) {
		return nil
	}

	blob := strings.Join(parts[1:], "")
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil || len(raw) < minRepairableBlobLength || len(raw)%16 != 0 {
		return nil
	}

	var ivs []string
	switch missing := crypto.IVHexLength - len(iv); {
	case missing > 0:
		zeros := strings.Repeat("0", missing)
		ivs = append(ivs, iv+zeros, zeros+iv)
		if missing <= maxGuessedHexChars {
			for _, fill := range hexFills(missing) {
				if fill != zeros {
					ivs = append(ivs, iv+fill, fill+iv)
				}
			}
		}
	case missing < 0:
		ivs = append(ivs, iv[:crypto.IVHexLength], iv[len(iv)-crypto.IVHexLength:])
	default:
		ivs = append(ivs, iv)
	}

	seen := make(map[string]struct{}, len(ivs))
	candidates := make([]string, 0, len(ivs))
	for _, candidate := range ivs {
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		candidates = append(candidates, candidate+crypto.Delimiter+blob)
	}
	return candidates
}

// hexFills returns every lowercase hex string of length n.
func hexFills(n int) []string {
	fills := []string{""}
	for range n {
		next := make([]string, 0, len(fills)*16)
		for _, prefix := range fills {
			for _, digit := range hexDigits[:16] {
				next = append(next, prefix+string(digit))
			}
		}
		fills = next
	}
	return fills
}

// IsErrorMarker reports whether s carries one of the error markers written by
// the cipher or the envelope.
func IsErrorMarker(s string) bool {
	for _, marker := range errorMarkers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

// CleanDisplayField is the last normalization before a value is rendered or
// put into an edit form. Unreadable values become "" when forEditing, and
// defaultValue (or [DefaultDisplayFallback]) otherwise.
func CleanDisplayField(value string, forEditing bool, defaultValue string) string {
	if !isUnreadable(value) {
		return value
	}

	if forEditing {
		return ""
	}
	if defaultValue != "" {
		return defaultValue
	}
	return DefaultDisplayFallback
}

// Classify returns the state of a stored field value.
func Classify(value string) models.FieldState {
	switch {
	case strings.TrimSpace(value) == "":
		return models.FieldEmpty
	case IsErrorMarker(value):
		return models.FieldErrorTagged
	case IsValidFormat(value):
		return models.FieldEncrypted
	case !ResemblesCipherText(value):
		return models.FieldPlaintext
	}

	if _, ok := AttemptRepair(value); ok {
		return models.FieldMalformedRepairable
	}
	return models.FieldMalformedUnrecoverable
}

func isUnreadable(value string) bool {
	if IsErrorMarker(value) {
		return true
	}
	if !utf8.ValidString(value) || strings.ContainsRune(value, utf8.RuneError) {
		return true
	}
	for _, r := range value {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return true
		}
	}

	_, isBoilerplate := boilerplate[strings.ToLower(strings.TrimSpace(value))]
	return isBoilerplate
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(hexDigits, rune(s[i])) {
			return false
		}
	}
	return s != ""
}
