// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-hds-keeper/internal/logger"
	"github.com/MKhiriev/go-hds-keeper/models"
)

// recordRepository is the PostgreSQL-backed [RecordRepository]. The payload,
// the compliance metadata and the pseudonym index are kept in three JSONB
// columns of the records table.
type recordRepository struct {
	*DB
	logger *logger.Logger
}

// NewRecordRepository constructs a [RecordRepository] over db.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	return &recordRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *recordRepository) Save(ctx context.Context, row models.StoredRecordRow) (models.StoredRecordRow, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertRecordQuery(row)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Save").
			Str("record_type", row.RecordType).
			Str("id", row.ID).
			Msg("failed to create query")
		return models.StoredRecordRow{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.DB.QueryRowContext(ctx, query, args...).Scan(&row.CreatedAt, &row.UpdatedAt); err != nil {
		log.Err(err).
			Str("func", "recordRepository.Save").
			Str("record_type", row.RecordType).
			Str("id", row.ID).
			Msg("failed to save record")
		return models.StoredRecordRow{}, r.wrapError(ErrExecutingStatement, err)
	}

	return row, nil
}

func (r *recordRepository) Get(ctx context.Context, recordType, id string) (models.StoredRecordRow, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetRecordQuery(recordType, id)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Get").
			Msg("failed to create query")
		return models.StoredRecordRow{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row, err := scanRecordRow(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.StoredRecordRow{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Get").
			Str("record_type", recordType).
			Str("id", id).
			Msg("failed to get record")
		if errors.Is(err, ErrEncodingColumn) {
			return models.StoredRecordRow{}, err
		}
		return models.StoredRecordRow{}, r.wrapError(ErrScanningRow, err)
	}

	return row, nil
}

func (r *recordRepository) FindByPseudonym(ctx context.Context, recordType, field, token string) ([]models.StoredRecordRow, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindByPseudonymQuery(recordType, field, token)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.FindByPseudonym").
			Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.FindByPseudonym").
			Str("record_type", recordType).
			Str("field", field).
			Msg("failed to execute query for finding records by pseudonym")
		return nil, r.wrapError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	found := make([]models.StoredRecordRow, 0)

	for rows.Next() {
		row, scanErr := scanRecordRow(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "recordRepository.FindByPseudonym").
				Str("record_type", recordType).
				Msg("failed to scan record row")
			if errors.Is(scanErr, ErrEncodingColumn) {
				return nil, scanErr
			}
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		found = append(found, row)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).
			Str("func", "recordRepository.FindByPseudonym").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return found, nil
}

func (r *recordRepository) Delete(ctx context.Context, recordType, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteRecordQuery(recordType, id)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Delete").
			Msg("failed to create query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Delete").
			Str("record_type", recordType).
			Str("id", id).
			Msg("failed to delete record")
		return r.wrapError(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecordRow(s rowScanner) (models.StoredRecordRow, error) {
	var (
		row                     models.StoredRecordRow
		payload, hds, pseudonym []byte
	)

	if err := s.Scan(&row.ID, &row.RecordType, &payload, &hds, &pseudonym, &row.CreatedAt, &row.UpdatedAt); err != nil {
		return models.StoredRecordRow{}, err
	}

	record, err := decodeStoredRecord(payload, hds, pseudonym)
	if err != nil {
		return models.StoredRecordRow{}, err
	}
	row.Record = record

	return row, nil
}
