// Package audit records every access to and mutation of sensitive resources
// in an append-only audit trail.
//
// Audit is a side channel: nothing in this package returns an error to the
// primary operation it describes. Events that cannot reach the durable
// [Store] are kept in a bounded [LocalQueue] and re-submitted later by
// [Logger.SyncLocalLogs].
package audit

import (
	"context"

	"github.com/MKhiriev/go-hds-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/audit_mock.go -package=mock

// Store is the durable, append-only audit event storage. There is no update
// or delete operation.
type Store interface {
	// Append persists event and returns its server-assigned id.
	Append(ctx context.Context, event models.AuditEvent) (string, error)

	// AppendBatch persists all events atomically and returns how many were
	// written.
	AppendBatch(ctx context.Context, events []models.AuditEvent) (int, error)

	// List returns the events matching filter, oldest first.
	List(ctx context.Context, filter models.AuditFilter) ([]models.AuditEvent, error)
}

// LocalQueue is the bounded FIFO holding events the Store rejected.
// When full, the oldest entry is dropped.
type LocalQueue interface {
	Push(ctx context.Context, event models.AuditEvent) error

	// Peek returns every queued event in insertion order without removing
	// them.
	Peek(ctx context.Context) ([]models.QueuedAuditEvent, error)

	// DiscardThrough removes the entries whose Seq is at most seq. Entries
	// pushed after a Peek are kept.
	DiscardThrough(ctx context.Context, seq int64) error

	Len(ctx context.Context) (int, error)
}

// Logger writes audit events on behalf of the actor found in the context.
type Logger interface {
	// Log records one event and returns its id. It returns "" when there is
	// no actor in ctx or when the event went to the local queue.
	Log(ctx context.Context, eventType models.AuditEventType, resource, action string,
		sensitivity models.Sensitivity, outcome models.AuditOutcome, details map[string]any) string

	// SyncLocalLogs re-submits the locally queued events as one batch and
	// returns how many were synced.
	SyncLocalLogs(ctx context.Context) (int, error)

	LogPatientAccess(ctx context.Context, patientID, action string) string
	LogDataCreation(ctx context.Context, resource string, outcome models.AuditOutcome, details map[string]any) string
	LogDataModification(ctx context.Context, resource string, outcome models.AuditOutcome, details map[string]any) string
	LogDataDeletion(ctx context.Context, resource string, outcome models.AuditOutcome, details map[string]any) string
	LogAuthentication(ctx context.Context, action string, outcome models.AuditOutcome, details map[string]any) string
	LogExport(ctx context.Context, resource, format string, count int) string
	LogSecurityEvent(ctx context.Context, action string, sensitivity models.Sensitivity, details map[string]any) string
	LogDecryptionFailure(ctx context.Context, resource string, fields []string) string

	// SessionID returns the process-lifetime audit session id.
	SessionID() string

	// QueueLen returns the number of events waiting in the local queue.
	QueueLen(ctx context.Context) int
}
