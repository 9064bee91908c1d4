package service

import (
	"context"

	"github.com/MKhiriev/go-hds-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// RecordService stores and reads sensitive records through the compliance
// envelope. Every operation is audited on behalf of the actor in ctx; audit
// failures never fail the operation.
type RecordService interface {
	// Save encrypts and stores record under id, generating a new id when id
	// is empty. It returns the id of the stored record.
	Save(ctx context.Context, recordType, id string, record models.Record) (string, error)

	// Get returns the decrypted record. Unreadable sensitive fields come back
	// empty when forEditing is set and as the display fallback otherwise.
	Get(ctx context.Context, recordType, id string, forEditing bool) (models.Record, error)

	// FindByPseudonym returns the decrypted records whose pseudonymized field
	// matches value.
	FindByPseudonym(ctx context.Context, query models.PseudonymQuery) ([]models.Record, error)

	Delete(ctx context.Context, recordType, id string) error

	// Diagnose reports the state of every sensitive field of a stored record.
	Diagnose(ctx context.Context, recordType, id string) (models.RecordDiagnostics, error)
}

// ComplianceService reports on and maintains the compliance state of the
// process.
type ComplianceService interface {
	Status(ctx context.Context) models.ComplianceStatus

	// SyncAudit re-submits the locally queued audit events.
	SyncAudit(ctx context.Context) (int, error)

	// AuditTrail exports the audit events matching filter.
	AuditTrail(ctx context.Context, filter models.AuditFilter) ([]models.AuditEvent, error)
}

// AppInfoService describes the running instance.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetAppInfo(ctx context.Context) models.AppInfo
}
