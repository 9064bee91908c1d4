package store

import "github.com/MKhiriev/go-hds-keeper/internal/logger"

// Storages groups the repositories backed by one database.
type Storages struct {
	AuditRepository  AuditRepository
	RecordRepository RecordRepository
}

// NewStorages constructs every repository over db.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		AuditRepository:  NewAuditRepository(db, logger),
		RecordRepository: NewRecordRepository(db, logger),
	}
}
