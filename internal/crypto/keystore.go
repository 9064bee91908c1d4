// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/hkdf"
)

// DefaultMasterSecret is used when no master secret is configured. Keys
// derived from it are predictable across deployments; [KeyStore.UsesDefaultSecret]
// exposes the condition so diagnostics can flag it as a compliance risk.
const DefaultMasterSecret = "hds-keeper-default-master-secret"

const (
	// keySalt domain-separates every key derived by this package.
	keySalt = "go-hds-keeper/field-encryption/v1"

	encKeyLen = 32 // AES-256
	macKeyLen = 32 // HMAC-SHA256
)

// UserKey is the key material of one user: an AES-256 encryption key and an
// HMAC-SHA256 key for the ciphertext tag.
type UserKey struct {
	Enc []byte
	MAC []byte
}

// KeyStore derives and caches per-user keys from the master secret.
//
// Derivation is HKDF-SHA256(masterSecret, salt=keySalt, info="user:"+userID):
// deterministic, so re-deriving a key for the same user always yields the same
// material and nothing has to be persisted. Derived keys are cached for the
// lifetime of the KeyStore; the store is meant to be created once per process
// (or per tenant) and passed explicitly to the cipher.
//
// KeyStore is safe for concurrent use.
type KeyStore struct {
	masterSecret []byte
	usingDefault bool

	mu   sync.RWMutex
	keys map[string]UserKey
}

// NewKeyStore constructs a [KeyStore] for masterSecret. An empty masterSecret
// falls back to [DefaultMasterSecret].
func NewKeyStore(masterSecret string) *KeyStore {
	if masterSecret == "" {
		masterSecret = DefaultMasterSecret
	}
	usingDefault := masterSecret == DefaultMasterSecret

	return &KeyStore{
		masterSecret: []byte(masterSecret),
		usingDefault: usingDefault,
		keys:         make(map[string]UserKey),
	}
}

// UsesDefaultSecret reports whether the store runs on [DefaultMasterSecret].
func (k *KeyStore) UsesDefaultSecret() bool {
	return k.usingDefault
}

// DeriveUserKey returns the key material of userID, deriving and caching it on
// first use. Returns [ErrNoActor] for an empty userID.
func (k *KeyStore) DeriveUserKey(userID string) (UserKey, error) {
	if userID == "" {
		return UserKey{}, ErrNoActor
	}

	k.mu.RLock()
	key, ok := k.keys[userID]
	k.mu.RUnlock()
	if ok {
		return key, nil
	}

	material, err := k.derive("user:"+userID, encKeyLen+macKeyLen)
	if err != nil {
		return UserKey{}, err
	}
	key = UserKey{Enc: material[:encKeyLen], MAC: material[encKeyLen:]}

	// concurrent derivations for the same user store identical material
	k.mu.Lock()
	k.keys[userID] = key
	k.mu.Unlock()

	return key, nil
}

// PseudonymKey returns the key of the pseudonym index. It is derived from the
// master secret under its own label so that pseudonym tokens cannot be
// correlated with any field encryption key.
func (k *KeyStore) PseudonymKey() ([]byte, error) {
	return k.derive("pseudonym-index", 32)
}

// CachedUsers returns the number of users whose key is cached.
func (k *KeyStore) CachedUsers() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.keys)
}

func (k *KeyStore) derive(info string, size int) ([]byte, error) {
	reader := hkdf.New(sha256.New, k.masterSecret, []byte(keySalt), []byte(info))

	material := make([]byte, size)
	if _, err := io.ReadFull(reader, material); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyDerivation, err)
	}
	return material, nil
}
