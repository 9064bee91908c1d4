package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-hds-keeper/internal/logger"
	"github.com/MKhiriev/go-hds-keeper/models"
)

// auditRepository is the PostgreSQL-backed [AuditRepository]. Rows of the
// audit_events table are protected from UPDATE and DELETE by a trigger, so
// the repository only ever inserts and reads.
type auditRepository struct {
	*DB
	logger *logger.Logger
}

// NewAuditRepository constructs an [AuditRepository] over db.
func NewAuditRepository(db *DB, logger *logger.Logger) AuditRepository {
	return &auditRepository{
		DB:     db,
		logger: logger,
	}
}

// Append inserts one event and returns the identifier assigned by the database.
func (a *auditRepository) Append(ctx context.Context, event models.AuditEvent) (string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertAuditEventQuery(event)
	if err != nil {
		log.Err(err).
			Str("func", "auditRepository.Append").
			Str("event_type", string(event.EventType)).
			Msg("failed to create query")
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id string
	if err = a.DB.QueryRowContext(ctx, query, args...).Scan(&id, &event.Timestamp); err != nil {
		log.Err(err).
			Str("func", "auditRepository.Append").
			Str("event_type", string(event.EventType)).
			Str("resource", event.Resource).
			Msg("failed to insert audit event")
		return "", a.wrapError(ErrExecutingStatement, err)
	}

	return id, nil
}

// AppendBatch inserts events in one transaction: either every event is stored
// or none is.
func (a *auditRepository) AppendBatch(ctx context.Context, events []models.AuditEvent) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	log := logger.FromContext(ctx)

	tx, err := a.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "auditRepository.AppendBatch").
			Msg("failed to begin transaction")
		return 0, a.wrapError(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for i, event := range events {
		query, args, buildErr := buildInsertAuditEventQuery(event)
		if buildErr != nil {
			log.Err(buildErr).
				Str("func", "auditRepository.AppendBatch").
				Int("iteration", i).
				Msg("failed to create query")
			return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}

		var id string
		if scanErr := tx.QueryRowContext(ctx, query, args...).Scan(&id, &event.Timestamp); scanErr != nil {
			log.Err(scanErr).
				Str("func", "auditRepository.AppendBatch").
				Int("iteration", i).
				Str("event_type", string(event.EventType)).
				Msg("failed to insert audit event")
			return 0, a.wrapError(ErrExecutingStatement, scanErr)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "auditRepository.AppendBatch").
			Int("events", len(events)).
			Msg("failed to commit transaction")
		return 0, a.wrapError(ErrCommitingTransaction, err)
	}

	return len(events), nil
}

// List returns the events matching filter, oldest first.
func (a *auditRepository) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditEvent, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListAuditEventsQuery(filter)
	if err != nil {
		log.Err(err).
			Str("func", "auditRepository.List").
			Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := a.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "auditRepository.List").
			Str("actor_id", filter.ActorID).
			Str("resource", filter.Resource).
			Msg("failed to execute query for listing audit events")
		return nil, a.wrapError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	events := make([]models.AuditEvent, 0, 50)

	for rows.Next() {
		var (
			event       models.AuditEvent
			eventType   string
			sensitivity string
			outcome     string
			details     []byte
		)

		scanErr := rows.Scan(
			&event.ID,
			&event.Timestamp,
			&event.LocalTimestamp,
			&event.ActorID,
			&event.SessionID,
			&eventType,
			&event.Resource,
			&event.Action,
			&sensitivity,
			&outcome,
			&details,
			&event.Compliance.Version,
			&event.Compliance.RetentionYears,
			&event.Compliance.Immutable,
			&event.SyncedFromLocal,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "auditRepository.List").
				Msg("failed to scan audit event row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		if len(details) > 0 {
			if jsonErr := json.Unmarshal(details, &event.Details); jsonErr != nil {
				log.Err(jsonErr).
					Str("func", "auditRepository.List").
					Str("event_id", event.ID).
					Msg("failed to decode audit event details")
				return nil, fmt.Errorf("%w: details: %w", ErrEncodingColumn, jsonErr)
			}
		}

		event.EventType = models.AuditEventType(eventType)
		event.Sensitivity = models.Sensitivity(sensitivity)
		event.Outcome = models.AuditOutcome(outcome)
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).
			Str("func", "auditRepository.List").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return events, nil
}
