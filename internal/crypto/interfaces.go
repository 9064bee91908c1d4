// Package crypto implements the symmetric field cipher of the compliance
// layer: per-user key derivation and the encryption of individual record
// field values.
//
// Ciphertext format:
//
//	<iv: 32 lowercase hex chars>:<blob: base64(AES-256-CBC ciphertext ‖ tag)>
//
// where tag is the first 16 bytes of HMAC-SHA256(macKey, iv ‖ ciphertext).
// Field-level failures never escape as errors: decryption returns a
// [DecryptResult] carrying a [FailureCode]. The only hard error of the
// package is [ErrNoActor], raised when there is no identity to key against.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/field_cipher_mock.go -package=mock

// FieldCipher encrypts and decrypts individual field values under the key of
// the acting user.
type FieldCipher interface {
	// EncryptField serializes value (strings as-is, everything else as
	// canonical JSON) and encrypts it with a fresh random IV.
	//
	// A string that already looks like ciphertext is returned unchanged so
	// values are never encrypted twice. A nil value yields [ErrNilPlaintext].
	// An empty userID yields [ErrNoActor].
	EncryptField(value any, userID string) (string, error)

	// DecryptField parses and decrypts cipherText. Malformed input, a wrong
	// key, a corrupted blob, bad padding or non-UTF-8 plaintext are reported
	// through [DecryptResult.Failure], never as an error. The returned error
	// is non-nil only for an empty userID ([ErrNoActor]).
	DecryptField(cipherText, userID string) (DecryptResult, error)
}
