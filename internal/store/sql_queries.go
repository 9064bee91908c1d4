// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-hds-keeper/models"
)

const (
	auditEventsTable = "audit_events"
	recordsTable     = "records"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var auditEventColumns = []string{
	"id",
	"created_at",
	"local_timestamp",
	"actor_id",
	"session_id",
	"event_type",
	"resource",
	"action",
	"sensitivity",
	"outcome",
	"details",
	"compliance_version",
	"retention_years",
	"immutable",
	"synced_from_local",
}

var recordColumns = []string{
	"id",
	"record_type",
	"payload",
	"hds",
	"pseudo_index",
	"created_at",
	"updated_at",
}

// buildInsertAuditEventQuery builds the INSERT of one event. The id and the
// server timestamp are assigned by the database and returned.
func buildInsertAuditEventQuery(event models.AuditEvent) (string, []any, error) {
	details, err := encodeJSONB(event.Details)
	if err != nil {
		return "", nil, err
	}

	return psql.Insert(auditEventsTable).
		Columns(auditEventColumns[2:]...).
		Values(
			event.LocalTimestamp,
			event.ActorID,
			event.SessionID,
			string(event.EventType),
			event.Resource,
			event.Action,
			string(event.Sensitivity),
			string(event.Outcome),
			details,
			event.Compliance.Version,
			event.Compliance.RetentionYears,
			event.Compliance.Immutable,
			event.SyncedFromLocal,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
}

// buildListAuditEventsQuery builds the SELECT of the events matching filter,
// oldest first.
func buildListAuditEventsQuery(filter models.AuditFilter) (string, []any, error) {
	query := psql.Select(auditEventColumns...).
		From(auditEventsTable).
		OrderBy("created_at ASC", "id ASC")

	if filter.ActorID != "" {
		query = query.Where(sq.Eq{"actor_id": filter.ActorID})
	}
	if filter.Resource != "" {
		query = query.Where(sq.Eq{"resource": filter.Resource})
	}
	if filter.EventType != "" {
		query = query.Where(sq.Eq{"event_type": string(filter.EventType)})
	}
	if !filter.Since.IsZero() {
		query = query.Where(sq.GtOrEq{"created_at": filter.Since})
	}
	if !filter.Until.IsZero() {
		query = query.Where(sq.Lt{"created_at": filter.Until})
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	return query.ToSql()
}

// buildUpsertRecordQuery builds the INSERT ... ON CONFLICT of one stored
// record, returning the database timestamps.
func buildUpsertRecordQuery(row models.StoredRecordRow) (string, []any, error) {
	payload, hds, pseudonyms, err := encodeStoredRecord(row.Record)
	if err != nil {
		return "", nil, err
	}

	return psql.Insert(recordsTable).
		Columns("id", "record_type", "payload", "hds", "pseudo_index").
		Values(row.ID, row.RecordType, payload, hds, pseudonyms).
		Suffix(`ON CONFLICT (record_type, id) DO UPDATE
			SET payload = EXCLUDED.payload,
				hds = EXCLUDED.hds,
				pseudo_index = EXCLUDED.pseudo_index,
				updated_at = now()
			RETURNING created_at, updated_at`).
		ToSql()
}

func buildGetRecordQuery(recordType, id string) (string, []any, error) {
	return psql.Select(recordColumns...).
		From(recordsTable).
		Where(sq.Eq{"record_type": recordType}).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildFindByPseudonymQuery(recordType, field, token string) (string, []any, error) {
	return psql.Select(recordColumns...).
		From(recordsTable).
		Where(sq.Eq{"record_type": recordType}).
		Where(sq.Expr("pseudo_index ->> ? = ?", field, token)).
		OrderBy("created_at ASC").
		ToSql()
}

func buildDeleteRecordQuery(recordType, id string) (string, []any, error) {
	return psql.Delete(recordsTable).
		Where(sq.Eq{"record_type": recordType}).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func encodeStoredRecord(record models.StoredRecord) (payload, hds, pseudonyms []byte, err error) {
	if payload, err = encodeJSONB(record.Payload); err != nil {
		return nil, nil, nil, err
	}
	if record.Metadata != nil {
		if hds, err = encodeJSONB(record.Metadata); err != nil {
			return nil, nil, nil, err
		}
	}

	index := record.Pseudonyms
	if index == nil {
		index = models.PseudonymIndex{}
	}
	if pseudonyms, err = encodeJSONB(index); err != nil {
		return nil, nil, nil, err
	}
	return payload, hds, pseudonyms, nil
}

func decodeStoredRecord(payload, hds, pseudonyms []byte) (models.StoredRecord, error) {
	var record models.StoredRecord

	if err := json.Unmarshal(payload, &record.Payload); err != nil {
		return models.StoredRecord{}, fmt.Errorf("%w: payload: %w", ErrEncodingColumn, err)
	}
	metadata, err := models.DecodeComplianceMetadata(hds)
	if err != nil {
		return models.StoredRecord{}, fmt.Errorf("%w: hds: %w", ErrEncodingColumn, err)
	}
	record.Metadata = metadata
	if len(pseudonyms) > 0 {
		if err := json.Unmarshal(pseudonyms, &record.Pseudonyms); err != nil {
			return models.StoredRecord{}, fmt.Errorf("%w: pseudo_index: %w", ErrEncodingColumn, err)
		}
	}

	return record, nil
}

// encodeJSONB returns nil for a nil map so the column is stored as NULL.
func encodeJSONB(v any) ([]byte, error) {
	if m, ok := v.(map[string]any); ok && m == nil {
		return nil, nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingColumn, err)
	}
	return b, nil
}
