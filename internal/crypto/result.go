package crypto

import (
	"encoding/json"
	"fmt"
)

// FailureCode identifies why a value could not be decrypted.
type FailureCode string

const (
	FailureMalformedFormat  FailureCode = "malformed_format"
	FailureMissingIV        FailureCode = "missing_iv"
	FailureEmptyCiphertext  FailureCode = "empty_ciphertext"
	FailureInvalidEncoding  FailureCode = "invalid_encoding"
	FailureDecryptionFailed FailureCode = "decryption_failed"
	FailureInvalidPadding   FailureCode = "invalid_padding"
	FailureInvalidUTF8      FailureCode = "invalid_utf8"
)

// DecryptionErrorPrefix starts every legacy decryption sentinel string.
const DecryptionErrorPrefix = "[DECRYPTION_ERROR"

// DecryptResult is the outcome of [FieldCipher.DecryptField]: either a
// decrypted Value or a Failure code, never both.
type DecryptResult struct {
	// Value is a string, or a map[string]any / []any for structured fields.
	Value any

	// Failure is empty on success.
	Failure FailureCode
}

func failed(code FailureCode) DecryptResult {
	return DecryptResult{Failure: code}
}

// OK reports whether decryption succeeded.
func (r DecryptResult) OK() bool {
	return r.Failure == ""
}

// Sentinel renders a failed result as the "[DECRYPTION_ERROR:<code>]" string
// used at display boundaries. It returns "" for a successful result.
func (r DecryptResult) Sentinel() string {
	if r.OK() {
		return ""
	}
	return fmt.Sprintf("%s:%s]", DecryptionErrorPrefix, r.Failure)
}

// String returns the decrypted value as text: strings as-is, structured
// values as JSON, failures as their sentinel.
func (r DecryptResult) String() string {
	if !r.OK() {
		return r.Sentinel()
	}

	switch v := r.Value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}
