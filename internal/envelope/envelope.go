// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package envelope

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/go-hds-keeper/internal/crypto"
	"github.com/MKhiriev/go-hds-keeper/internal/logger"
	"github.com/MKhiriev/go-hds-keeper/internal/repair"
	"github.com/MKhiriev/go-hds-keeper/internal/utils"
	"github.com/MKhiriev/go-hds-keeper/models"
)

// ComplianceVersion is the version tag written into the metadata of every
// record prepared by the envelope.
const ComplianceVersion = models.ComplianceVersion

type envelope struct {
	cipher       crypto.FieldCipher
	schema       Schema
	pseudonymKey string
	now          func() time.Time
	logger       *logger.Logger
}

// NewEnvelope constructs an [Envelope] over cipher and schema. The pseudonym
// key is derived from keys once, at construction.
func NewEnvelope(cipher crypto.FieldCipher, keys *crypto.KeyStore, schema Schema, logger *logger.Logger) (Envelope, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	pseudonymKey, err := keys.PseudonymKey()
	if err != nil {
		return nil, err
	}

	return &envelope{
		cipher:       cipher,
		schema:       schema,
		pseudonymKey: string(pseudonymKey),
		now:          time.Now,
		logger:       logger,
	}, nil
}

func (e *envelope) Policy(recordType string) (FieldPolicy, bool) {
	policy, ok := e.schema[recordType]
	return policy, ok
}

func (e *envelope) PrepareForStorage(record models.Record, recordType, actorID string) (models.StoredRecord, error) {
	if actorID == "" {
		return models.StoredRecord{}, crypto.ErrNoActor
	}
	policy, ok := e.Policy(recordType)
	if !ok {
		return models.StoredRecord{}, fmt.Errorf("%w: %s", ErrUnknownRecordType, recordType)
	}

	payload := make(models.Record, len(record))
	for field, value := range record {
		if models.IsReservedKey(field) {
			continue
		}
		payload[field] = normalizeTimes(value)
	}

	pseudonyms := e.buildPseudonyms(payload, policy, recordType)

	encrypted := make([]string, 0, len(policy.Sensitive))
	for _, field := range policy.Sensitive {
		value, present := payload[field]
		if !present || isEmpty(value) {
			continue
		}
		if s, isString := value.(string); isString {
			if repair.IsErrorMarker(s) {
				continue
			}
			if repair.IsValidFormat(s) {
				encrypted = append(encrypted, field)
				continue
			}
		}

		cipherText, err := e.cipher.EncryptField(value, actorID)
		if err != nil {
			if errors.Is(err, crypto.ErrNoActor) {
				return models.StoredRecord{}, err
			}
			e.logger.Err(err).
				Str("func", "envelope.PrepareForStorage").
				Str("record_type", recordType).
				Str("field", field).
				Msg("field encryption failed, storing error placeholder")
			payload[field] = repair.EncryptionErrorPlaceholder(field)
			continue
		}

		payload[field] = cipherText
		encrypted = append(encrypted, field)
	}

	return models.StoredRecord{
		Payload: payload,
		Metadata: &models.ComplianceMetadata{
			Version:             ComplianceVersion,
			EncryptedFields:     encrypted,
			PseudonymizedFields: sortedKeys(pseudonyms),
			UpdatedAt:           e.now().UTC(),
			UpdatedBy:           actorID,
		},
		Pseudonyms: pseudonyms,
	}, nil
}

// buildPseudonyms computes the pseudonym index from plaintext values. Values
// that are already ciphertext cannot be indexed and are skipped.
func (e *envelope) buildPseudonyms(payload models.Record, policy FieldPolicy, recordType string) models.PseudonymIndex {
	pseudonyms := make(models.PseudonymIndex, len(policy.Pseudonymized))
	for _, field := range policy.Pseudonymized {
		value, present := payload[field]
		if !present || isEmpty(value) {
			continue
		}

		text := stringify(value)
		if repair.IsValidFormat(text) || repair.IsErrorMarker(text) {
			e.logger.Warn().
				Str("func", "envelope.buildPseudonyms").
				Str("record_type", recordType).
				Str("field", field).
				Msg("pseudonymized field is not plaintext, leaving it out of the index")
			continue
		}
		pseudonyms[field] = e.Pseudonymize(recordType, field, text)
	}
	return pseudonyms
}

func (e *envelope) DecryptForDisplay(stored models.StoredRecord, recordType, actorID string) (models.Record, error) {
	if actorID == "" {
		return nil, crypto.ErrNoActor
	}
	policy, ok := e.Policy(recordType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRecordType, recordType)
	}

	out := make(models.Record, len(stored.Payload))
	for field, value := range stored.Payload {
		if models.IsReservedKey(field) {
			continue
		}
		out[field] = normalizeTimes(value)
	}

	for _, field := range policy.Sensitive {
		value, isString := out[field].(string)
		if !isString || strings.TrimSpace(value) == "" || repair.IsErrorMarker(value) || !crypto.IsCipherText(value) {
			continue
		}

		decrypted, ok, err := e.decryptValue(value, actorID)
		if err != nil {
			return nil, err
		}
		if !ok {
			e.logger.Warn().
				Str("func", "envelope.DecryptForDisplay").
				Str("record_type", recordType).
				Str("field", field).
				Msg("field could not be decoded")
			out[field] = repair.DecodingFailedMarker
			continue
		}
		out[field] = normalizeTimes(decrypted)
	}

	return out, nil
}

// decryptValue decrypts value. A drifted IV is repaired by trying each
// candidate from [repair.RepairCandidates] until one authenticates. A value
// that only looks like ciphertext is returned as is. ok is false when the
// value cannot be decoded.
func (e *envelope) decryptValue(value, actorID string) (any, bool, error) {
	candidates := []string{value}
	if !repair.IsValidFormat(value) {
		if !repair.ResemblesCipherText(value) {
			return value, true, nil
		}
		candidates = repair.RepairCandidates(value)
	}

	for _, candidate := range candidates {
		result, err := e.cipher.DecryptField(candidate, actorID)
		if err != nil {
			return nil, false, err
		}
		if result.OK() {
			return result.Value, true, nil
		}
		e.logger.Debug().
			Str("func", "envelope.decryptValue").
			Str("failure", string(result.Failure)).
			Msg("decryption failed")
	}
	return nil, false, nil
}

func (e *envelope) IsCompliant(stored models.StoredRecord) bool {
	meta := stored.Metadata
	return meta != nil &&
		meta.Version == ComplianceVersion &&
		meta.UpdatedBy != "" &&
		!meta.UpdatedAt.IsZero() &&
		meta.EncryptedFields != nil
}

func (e *envelope) Pseudonymize(recordType, field, value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	return utils.HashString(recordType+"."+field+":"+normalized, e.pseudonymKey)
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	}
	return false
}

func stringify(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(b)
}

func sortedKeys(index models.PseudonymIndex) []string {
	keys := make([]string, 0, len(index))
	for k := range index {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
