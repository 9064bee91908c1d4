package crypto

import "errors"

var (
	// ErrNoActor is returned when a keyed operation is attempted without an
	// authenticated actor. There is no safe default identity to key against.
	ErrNoActor = errors.New("no authenticated actor for keyed operation")

	// ErrNilPlaintext is returned by EncryptField when there is nothing to
	// encrypt.
	ErrNilPlaintext = errors.New("nil value cannot be encrypted")

	// ErrSerialization is returned when a structured value cannot be
	// serialized before encryption.
	ErrSerialization = errors.New("field value serialization failed")

	// ErrEncryption wraps failures of the underlying cipher primitives or of
	// the random source.
	ErrEncryption = errors.New("field encryption failed")

	// ErrKeyDerivation is returned when the key derivation function cannot
	// produce key material. It only happens on a broken runtime and is
	// treated as fatal by callers.
	ErrKeyDerivation = errors.New("user key derivation failed")
)
