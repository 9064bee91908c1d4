// Package envelope wraps records of sensitive record types for storage and
// unwraps them for display.
//
// On write, every configured sensitive field is encrypted under the actor's
// key, configured pseudonymizable fields get a one-way token in the pseudonym
// index, and compliance metadata is attached. On read, ciphertext is decrypted
// field by field, drifted ciphertext is repaired when possible, and every
// failure collapses into a single display marker. Errors local to one field
// never abort the rest of the record.
//
// The envelope performs no I/O: persistence and audit are the caller's job.
package envelope

import "github.com/MKhiriev/go-hds-keeper/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/envelope_mock.go -package=mock

// Envelope prepares records for storage and decrypts them for display.
type Envelope interface {
	// PrepareForStorage encrypts the sensitive fields of record, builds its
	// pseudonym index and attaches compliance metadata. The input record is
	// not modified.
	PrepareForStorage(record models.Record, recordType, actorID string) (models.StoredRecord, error)

	// DecryptForDisplay returns the plain payload of stored with sensitive
	// fields decrypted and timestamps normalized. Metadata and pseudonyms are
	// stripped.
	DecryptForDisplay(stored models.StoredRecord, recordType, actorID string) (models.Record, error)

	// IsCompliant reports whether stored carries complete metadata of the
	// current compliance version.
	IsCompliant(stored models.StoredRecord) bool

	// Pseudonymize returns the pseudonym token of value for recordType.field.
	Pseudonymize(recordType, field, value string) string

	// Policy returns the field policy of recordType.
	Policy(recordType string) (FieldPolicy, bool)
}
