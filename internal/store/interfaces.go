package store

import (
	"context"

	"github.com/MKhiriev/go-hds-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// AuditRepository is the append-only PostgreSQL audit trail. It satisfies
// the audit package's Store.
type AuditRepository interface {
	Append(ctx context.Context, event models.AuditEvent) (string, error)
	AppendBatch(ctx context.Context, events []models.AuditEvent) (int, error)
	List(ctx context.Context, filter models.AuditFilter) ([]models.AuditEvent, error)
}

// RecordRepository persists records in their storage envelope.
type RecordRepository interface {
	// Save inserts row or replaces the stored record with the same type and
	// id. The returned row carries the database timestamps.
	Save(ctx context.Context, row models.StoredRecordRow) (models.StoredRecordRow, error)

	// Get returns the record of recordType with id, or [ErrRecordNotFound].
	Get(ctx context.Context, recordType, id string) (models.StoredRecordRow, error)

	// FindByPseudonym returns the records of recordType whose pseudonym index
	// maps field to token.
	FindByPseudonym(ctx context.Context, recordType, field, token string) ([]models.StoredRecordRow, error)

	// Delete removes a record, or returns [ErrRecordNotFound].
	Delete(ctx context.Context, recordType, id string) error
}
