// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ComplianceVersion is the HDS compliance version tag written into record
// metadata and audit events.
const ComplianceVersion = "hds-1.0"

// Reserved keys of the persisted record shape. Consumers outside the
// compliance layer must never hand-edit these blocks.
const (
	MetadataKey       = "_hds"
	PseudonymIndexKey = "_pseudoIndex"
)

// Record is one entity of a record type (patient, consultation, invoice...)
// expressed as a mapping from field name to value. Which fields are sensitive
// is decided by the record type's field policy, never by the record itself.
type Record map[string]any

// ComplianceMetadata is attached to every record written through the
// compliance envelope. It is created or overwritten on every write.
type ComplianceMetadata struct {
	// Version is the compliance version tag the record was written under.
	Version string `json:"version"`

	// EncryptedFields lists the fields holding ciphertext after the write.
	EncryptedFields []string `json:"encryptedFields"`

	// PseudonymizedFields lists the fields present in the pseudonym index.
	PseudonymizedFields []string `json:"pseudonymizedFields"`

	// UpdatedAt is the time of the last write through the envelope.
	UpdatedAt time.Time `json:"lastUpdated"`

	// UpdatedBy is the identity of the actor who performed the last write.
	UpdatedBy string `json:"updatedBy"`
}

// PseudonymIndex maps a pseudonymized field name to its one-way token.
// It is regenerated wholesale on each write and never updated on its own.
type PseudonymIndex map[string]string

// StoredRecord is the explicit storage envelope of a sensitive record:
// the (partially encrypted) payload, its compliance metadata and its
// pseudonym index.
//
// As a JSON document, the form exchanged by hdsctl seal and open, it is
// flattened into the legacy persisted shape where metadata and pseudonyms
// live next to the payload fields under the reserved [MetadataKey] and
// [PseudonymIndexKey] keys. The records table keeps the three parts in
// separate columns.
type StoredRecord struct {
	Payload    Record
	Metadata   *ComplianceMetadata
	Pseudonyms PseudonymIndex
}

// MarshalJSON implements [json.Marshaler] producing the flattened shape.
// Payload keys colliding with the reserved keys are dropped.
func (s StoredRecord) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(s.Payload)+2)
	for field, value := range s.Payload {
		if IsReservedKey(field) {
			continue
		}
		flat[field] = value
	}

	if s.Metadata != nil {
		flat[MetadataKey] = s.Metadata
	}
	if len(s.Pseudonyms) > 0 {
		flat[PseudonymIndexKey] = s.Pseudonyms
	}

	return json.Marshal(flat)
}

// UnmarshalJSON implements [json.Unmarshaler] for the flattened shape.
func (s *StoredRecord) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decode stored record: %w", err)
	}

	payload := make(Record, len(raw))
	var (
		metadata   *ComplianceMetadata
		pseudonyms PseudonymIndex
	)

	for field, value := range raw {
		switch field {
		case MetadataKey:
			var err error
			if metadata, err = DecodeComplianceMetadata(value); err != nil {
				return fmt.Errorf("decode %s block: %w", MetadataKey, err)
			}
		case PseudonymIndexKey:
			if err := json.Unmarshal(value, &pseudonyms); err != nil {
				return fmt.Errorf("decode %s block: %w", PseudonymIndexKey, err)
			}
		default:
			var v any
			if err := json.Unmarshal(value, &v); err != nil {
				return fmt.Errorf("decode field %q: %w", field, err)
			}
			payload[field] = v
		}
	}

	s.Payload = payload
	s.Metadata = metadata
	s.Pseudonyms = pseudonyms
	return nil
}

// DecodeComplianceMetadata decodes a metadata block. An absent or null block
// decodes to nil, the state of a record never written through the envelope.
func DecodeComplianceMetadata(b []byte) (*ComplianceMetadata, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	metadata := new(ComplianceMetadata)
	if err := json.Unmarshal(trimmed, metadata); err != nil {
		return nil, err
	}
	return metadata, nil
}

// IsReservedKey reports whether field is one of the reserved storage keys.
func IsReservedKey(field string) bool {
	return field == MetadataKey || field == PseudonymIndexKey
}

// StoredRecordRow is a [StoredRecord] together with its identity, as kept by
// the record repository.
type StoredRecordRow struct {
	ID         string
	RecordType string
	Record     StoredRecord
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
