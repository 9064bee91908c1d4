// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package audit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-hds-keeper/internal/logger"
	"github.com/MKhiriev/go-hds-keeper/internal/utils"
	"github.com/MKhiriev/go-hds-keeper/models"
)

const (
	// DefaultRetentionYears is the retention period tagged on every event.
	DefaultRetentionYears = 6

	// DefaultQueueCapacity bounds the local fallback queue.
	DefaultQueueCapacity = 100

	// DefaultWriteTimeout bounds a single audit write, to the store and then
	// to the local queue.
	DefaultWriteTimeout = 5 * time.Second
)

type auditLogger struct {
	store          Store
	queue          LocalQueue
	sessionID      string
	retentionYears int
	writeTimeout   time.Duration
	now            func() time.Time

	// serializes SyncLocalLogs so one batch is never submitted twice
	syncMu sync.Mutex

	logger *logger.Logger
}

// NewLogger constructs an audit [Logger] writing to store and falling back to
// queue. Non-positive retentionYears and writeTimeout mean
// [DefaultRetentionYears] and [DefaultWriteTimeout].
func NewLogger(store Store, queue LocalQueue, retentionYears int, writeTimeout time.Duration, logger *logger.Logger) Logger {
	if retentionYears <= 0 {
		retentionYears = DefaultRetentionYears
	}
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}

	return &auditLogger{
		store:          store,
		queue:          queue,
		sessionID:      utils.NewUUIDGenerator().Generate(),
		retentionYears: retentionYears,
		writeTimeout:   writeTimeout,
		now:            time.Now,
		logger:         logger,
	}
}

func (a *auditLogger) Log(ctx context.Context, eventType models.AuditEventType, resource, action string,
	sensitivity models.Sensitivity, outcome models.AuditOutcome, details map[string]any) string {
	actorID, ok := utils.GetActorIDFromContext(ctx)
	if !ok {
		a.logger.Warn().
			Str("func", "auditLogger.Log").
			Str("event_type", string(eventType)).
			Str("resource", resource).
			Msg("audit event without authenticated actor dropped")
		return ""
	}

	event := models.AuditEvent{
		LocalTimestamp: a.now().UTC(),
		ActorID:        actorID,
		SessionID:      a.sessionID,
		EventType:      eventType,
		Resource:       resource,
		Action:         action,
		Sensitivity:    sensitivity,
		Outcome:        outcome,
		Details:        details,
		Compliance: models.AuditCompliance{
			Version:        models.ComplianceVersion,
			RetentionYears: a.retentionYears,
			Immutable:      true,
		},
	}

	// audit writes outlive a cancelled request but not a hung store
	base := context.WithoutCancel(ctx)

	appendCtx, cancel := context.WithTimeout(base, a.writeTimeout)
	id, err := a.store.Append(appendCtx, event)
	cancel()
	if err == nil {
		return id
	}

	a.logger.Err(err).
		Str("func", "auditLogger.Log").
		Str("event_type", string(eventType)).
		Str("resource", resource).
		Msg("audit store unavailable, queueing event locally")

	pushCtx, cancel := context.WithTimeout(base, a.writeTimeout)
	defer cancel()
	if err = a.queue.Push(pushCtx, event); err != nil {
		a.logger.Err(err).
			Str("func", "auditLogger.Log").
			Str("event_type", string(eventType)).
			Msg("audit event lost: local queue rejected it")
	}
	return ""
}

func (a *auditLogger) SyncLocalLogs(ctx context.Context) (int, error) {
	a.syncMu.Lock()
	defer a.syncMu.Unlock()

	queued, err := a.queue.Peek(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: read local queue: %w", ErrSyncFailed, err)
	}
	if len(queued) == 0 {
		return 0, nil
	}

	events := make([]models.AuditEvent, len(queued))
	for i, q := range queued {
		events[i] = q.Event
		events[i].SyncedFromLocal = true
	}

	synced, err := a.store.AppendBatch(ctx, events)
	if err != nil {
		a.logger.Err(err).
			Str("func", "auditLogger.SyncLocalLogs").
			Int("queued", len(events)).
			Msg("failed to sync local audit events, keeping them queued")
		return 0, fmt.Errorf("%w: %w", ErrSyncFailed, err)
	}

	if err = a.queue.DiscardThrough(ctx, queued[len(queued)-1].Seq); err != nil {
		return synced, fmt.Errorf("%w: discard synced events: %w", ErrSyncFailed, err)
	}

	a.logger.Info().
		Str("func", "auditLogger.SyncLocalLogs").
		Int("synced", synced).
		Msg("local audit events synced")
	return synced, nil
}

func (a *auditLogger) SessionID() string {
	return a.sessionID
}

func (a *auditLogger) QueueLen(ctx context.Context) int {
	n, err := a.queue.Len(ctx)
	if err != nil {
		a.logger.Err(err).Str("func", "auditLogger.QueueLen").Msg("failed to read local queue length")
		return 0
	}
	return n
}
