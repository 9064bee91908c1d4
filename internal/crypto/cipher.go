// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-hds-keeper/internal/logger"
)

const (
	// Delimiter separates the IV from the blob.
	Delimiter = ":"

	// IVSize is the size of the CBC initialization vector in bytes.
	IVSize = aes.BlockSize

	// IVHexLength is the length of the hex-encoded IV.
	IVHexLength = IVSize * 2

	// TagSize is the size of the truncated HMAC tag appended to the ciphertext.
	TagSize = 16

	// MinCipherTextLength is the length below which a value is never taken
	// for ciphertext by [IsCipherText].
	MinCipherTextLength = 40
)

// fieldCipher is the AES-256-CBC implementation of [FieldCipher].
type fieldCipher struct {
	keys   *KeyStore
	random io.Reader
	logger *logger.Logger
}

// NewFieldCipher constructs a [FieldCipher] keyed by keys. IVs are read from
// the OS CSPRNG.
func NewFieldCipher(keys *KeyStore, logger *logger.Logger) FieldCipher {
	return &fieldCipher{
		keys:   keys,
		random: rand.Reader,
		logger: logger,
	}
}

// IsCipherText is a heuristic: it reports whether value contains the
// delimiter and is at least [MinCipherTextLength] long. It is meant for
// quick checks, not as a format guarantee.
func IsCipherText(value string) bool {
	return strings.Contains(value, Delimiter) && len(value) >= MinCipherTextLength
}

// looksEncrypted narrows [IsCipherText] to values with a well-formed IV, so
// that long plaintext containing the delimiter still gets encrypted.
func looksEncrypted(value string) bool {
	if !IsCipherText(value) {
		return false
	}
	ivHex, _, code := splitCipherText(value)
	if code != "" {
		return false
	}
	_, err := hex.DecodeString(ivHex)
	return err == nil
}

// EncryptField implements [FieldCipher].
func (c *fieldCipher) EncryptField(value any, userID string) (string, error) {
	if userID == "" {
		return "", ErrNoActor
	}
	if value == nil {
		c.logger.Warn().Str("func", "fieldCipher.EncryptField").Msg("nil value passed for encryption, skipping")
		return "", ErrNilPlaintext
	}

	plaintext, isString := value.(string)
	if isString && looksEncrypted(plaintext) {
		c.logger.Warn().Str("func", "fieldCipher.EncryptField").Msg("value already looks encrypted, skipping")
		return plaintext, nil
	}
	if !isString {
		serialized, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrSerialization, err)
		}
		plaintext = string(serialized)
	}

	key, err := c.keys.DeriveUserKey(userID)
	if err != nil {
		return "", err
	}

	iv := make([]byte, IVSize)
	if _, err = io.ReadFull(c.random, iv); err != nil {
		return "", fmt.Errorf("%w: generate iv: %w", ErrEncryption, err)
	}

	block, err := aes.NewCipher(key.Enc)
	if err != nil {
		return "", fmt.Errorf("%w: create cipher: %w", ErrEncryption, err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	blob := append(ciphertext, computeTag(key.MAC, iv, ciphertext)...)

	return hex.EncodeToString(iv) + Delimiter + base64.StdEncoding.EncodeToString(blob), nil
}

// DecryptField implements [FieldCipher].
func (c *fieldCipher) DecryptField(cipherText, userID string) (DecryptResult, error) {
	if userID == "" {
		return DecryptResult{}, ErrNoActor
	}

	ivHex, blobB64, code := splitCipherText(cipherText)
	if code != "" {
		return failed(code), nil
	}

	iv, err := hex.DecodeString(ivHex)
	if err != nil {
		return failed(FailureMalformedFormat), nil
	}

	blob, err := base64.StdEncoding.DecodeString(blobB64)
	if err != nil {
		return failed(FailureInvalidEncoding), nil
	}
	if len(blob) < aes.BlockSize+TagSize || (len(blob)-TagSize)%aes.BlockSize != 0 {
		return failed(FailureDecryptionFailed), nil
	}

	key, err := c.keys.DeriveUserKey(userID)
	if err != nil {
		c.logger.Err(err).Str("func", "fieldCipher.DecryptField").Msg("key derivation failed")
		return failed(FailureDecryptionFailed), nil
	}

	ciphertext, tag := blob[:len(blob)-TagSize], blob[len(blob)-TagSize:]
	if !hmac.Equal(tag, computeTag(key.MAC, iv, ciphertext)) {
		// wrong key or corrupted blob
		return failed(FailureDecryptionFailed), nil
	}

	block, err := aes.NewCipher(key.Enc)
	if err != nil {
		return failed(FailureDecryptionFailed), nil
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plaintext, ok := pkcs7Unpad(padded, aes.BlockSize)
	if !ok {
		return failed(FailureInvalidPadding), nil
	}
	if !utf8.Valid(plaintext) {
		return failed(FailureInvalidUTF8), nil
	}

	return DecryptResult{Value: parseStructured(string(plaintext))}, nil
}

// splitCipherText splits value into its IV and blob parts, returning a
// failure code when the two-part structure is violated.
func splitCipherText(value string) (string, string, FailureCode) {
	parts := strings.Split(value, Delimiter)
	if len(parts) != 2 {
		return "", "", FailureMalformedFormat
	}

	ivHex, blob := parts[0], parts[1]
	switch {
	case ivHex == "":
		return "", "", FailureMissingIV
	case len(ivHex) != IVHexLength:
		return "", "", FailureMalformedFormat
	case blob == "":
		return "", "", FailureEmptyCiphertext
	}

	return ivHex, blob, ""
}

// parseStructured returns the JSON value held by s when s is a JSON object or
// array, and s itself otherwise.
func parseStructured(s string) any {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return s
	}

	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		return s
	}
	return v
}

func computeTag(macKey, iv, ciphertext []byte) []byte {
	mac := hmac.New(sha256.New, macKey)
	mac.Write(iv)
	mac.Write(ciphertext)
	return mac.Sum(nil)[:TagSize]
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, bool) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, false
	}

	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize {
		return nil, false
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, false
		}
	}

	return data[:len(data)-padding], true
}
