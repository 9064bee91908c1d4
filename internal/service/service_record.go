// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/MKhiriev/go-hds-keeper/internal/audit"
	"github.com/MKhiriev/go-hds-keeper/internal/config"
	"github.com/MKhiriev/go-hds-keeper/internal/crypto"
	"github.com/MKhiriev/go-hds-keeper/internal/envelope"
	"github.com/MKhiriev/go-hds-keeper/internal/logger"
	"github.com/MKhiriev/go-hds-keeper/internal/repair"
	"github.com/MKhiriev/go-hds-keeper/internal/store"
	"github.com/MKhiriev/go-hds-keeper/internal/utils"
	"github.com/MKhiriev/go-hds-keeper/models"
)

const patientsRecordType = "patients"

type recordService struct {
	records  store.RecordRepository
	envelope envelope.Envelope
	cipher   crypto.FieldCipher
	keys     *crypto.KeyStore
	audit    audit.Logger
	ids      *utils.UUIDGenerator

	displayFallback string

	logger *logger.Logger
}

func NewRecordService(records store.RecordRepository, env envelope.Envelope, cipher crypto.FieldCipher,
	keys *crypto.KeyStore, auditLogger audit.Logger, cfg config.App, logger *logger.Logger) RecordService {
	return &recordService{
		records:         records,
		envelope:        env,
		cipher:          cipher,
		keys:            keys,
		audit:           auditLogger,
		ids:             utils.NewUUIDGenerator(),
		displayFallback: cfg.DisplayFallback,
		logger:          logger,
	}
}

func (s *recordService) Save(ctx context.Context, recordType, id string, record models.Record) (string, error) {
	actorID, err := s.actor(ctx, recordType)
	if err != nil {
		return "", err
	}

	isNew := id == ""
	if isNew {
		id = s.ids.Generate()
	}
	resource := resourceOf(recordType, id)

	stored, err := s.envelope.PrepareForStorage(record, recordType, actorID)
	if err != nil {
		s.logSave(ctx, resource, isNew, models.OutcomeFailure, nil)
		return "", mapEnvelopeError(err)
	}

	row, err := s.records.Save(ctx, models.StoredRecordRow{ID: id, RecordType: recordType, Record: stored})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "recordService.Save").
			Str("record_type", recordType).
			Msg("failed to save record")
		s.logSave(ctx, resource, isNew, models.OutcomeFailure, nil)
		return "", fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	details := map[string]any{"recordType": recordType}
	if stored.Metadata != nil {
		details["encryptedFields"] = len(stored.Metadata.EncryptedFields)
	}

	// the upsert leaves both timestamps equal on insert
	s.logSave(ctx, resource, row.CreatedAt.Equal(row.UpdatedAt), models.OutcomeSuccess, details)

	return id, nil
}

func (s *recordService) logSave(ctx context.Context, resource string, created bool, outcome models.AuditOutcome, details map[string]any) {
	if created {
		s.audit.LogDataCreation(ctx, resource, outcome, details)
		return
	}
	s.audit.LogDataModification(ctx, resource, outcome, details)
}

func (s *recordService) Get(ctx context.Context, recordType, id string, forEditing bool) (models.Record, error) {
	actorID, err := s.actor(ctx, recordType)
	if err != nil {
		return nil, err
	}

	row, err := s.load(ctx, recordType, id)
	if err != nil {
		return nil, err
	}

	record, err := s.display(ctx, row, actorID, forEditing)
	if err != nil {
		return nil, err
	}

	if recordType == patientsRecordType {
		s.audit.LogPatientAccess(ctx, id, "read")
	} else {
		s.audit.Log(ctx, models.AuditDataAccess, resourceOf(recordType, id), "read",
			models.SensitivityHigh, models.OutcomeSuccess, nil)
	}

	return record, nil
}

func (s *recordService) FindByPseudonym(ctx context.Context, query models.PseudonymQuery) ([]models.Record, error) {
	actorID, err := s.actor(ctx, query.RecordType)
	if err != nil {
		return nil, err
	}

	policy, _ := s.envelope.Policy(query.RecordType)
	if !policy.IsPseudonymized(query.Field) {
		return nil, fmt.Errorf("%w: %s.%s", ErrFieldNotSearchable, query.RecordType, query.Field)
	}

	token := s.envelope.Pseudonymize(query.RecordType, query.Field, query.Value)
	rows, err := s.records.FindByPseudonym(ctx, query.RecordType, query.Field, token)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "recordService.FindByPseudonym").
			Str("record_type", query.RecordType).
			Str("field", query.Field).
			Msg("failed to search records")
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	found := make([]models.Record, 0, len(rows))
	for _, row := range rows {
		record, displayErr := s.display(ctx, row, actorID, false)
		if displayErr != nil {
			return nil, displayErr
		}
		found = append(found, record)
	}

	s.audit.Log(ctx, models.AuditDataAccess, query.RecordType, "search",
		models.SensitivityHigh, models.OutcomeSuccess,
		map[string]any{"field": query.Field, "matches": len(found)})

	return found, nil
}

func (s *recordService) Delete(ctx context.Context, recordType, id string) error {
	if _, err := s.actor(ctx, recordType); err != nil {
		return err
	}
	resource := resourceOf(recordType, id)

	err := s.records.Delete(ctx, recordType, id)
	switch {
	case errors.Is(err, store.ErrRecordNotFound):
		s.audit.LogDataDeletion(ctx, resource, models.OutcomeFailure, map[string]any{"reason": "not_found"})
		return ErrRecordNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).
			Str("func", "recordService.Delete").
			Str("record_type", recordType).
			Msg("failed to delete record")
		s.audit.LogDataDeletion(ctx, resource, models.OutcomeFailure, nil)
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	s.audit.LogDataDeletion(ctx, resource, models.OutcomeSuccess, nil)
	return nil
}

func (s *recordService) Diagnose(ctx context.Context, recordType, id string) (models.RecordDiagnostics, error) {
	actorID, err := s.actor(ctx, recordType)
	if err != nil {
		return models.RecordDiagnostics{}, err
	}

	row, err := s.load(ctx, recordType, id)
	if err != nil {
		return models.RecordDiagnostics{}, err
	}

	policy, _ := s.envelope.Policy(recordType)
	report := models.RecordDiagnostics{
		RecordType:        recordType,
		ID:                id,
		Compliant:         s.envelope.IsCompliant(row.Record),
		DefaultSecretUsed: s.keys.UsesDefaultSecret(),
		Fields:            make([]models.FieldDiagnostic, 0, len(policy.Sensitive)),
	}

	for _, field := range policy.Sensitive {
		report.Fields = append(report.Fields, s.diagnoseField(field, row.Record.Payload[field], actorID))
	}

	s.audit.LogSecurityEvent(ctx, "record_diagnostics", models.SensitivityMedium, map[string]any{
		"resource":  resourceOf(recordType, id),
		"compliant": report.Compliant,
	})

	return report, nil
}

func (s *recordService) diagnoseField(field string, value any, actorID string) models.FieldDiagnostic {
	diagnostic := models.FieldDiagnostic{Field: field}

	text, isString := value.(string)
	switch {
	case value == nil:
		diagnostic.State = models.FieldEmpty
		return diagnostic
	case !isString:
		diagnostic.State = models.FieldPlaintext
		return diagnostic
	}

	diagnostic.State = repair.Classify(text)

	candidates := []string{text}
	switch diagnostic.State {
	case models.FieldEncrypted:
	case models.FieldMalformedRepairable:
		candidates = repair.RepairCandidates(text)
	default:
		return diagnostic
	}

	for _, candidate := range candidates {
		result, err := s.cipher.DecryptField(candidate, actorID)
		if err == nil && result.OK() {
			diagnostic.Decryptable = true
			break
		}
	}
	return diagnostic
}

// display decrypts row for actorID, cleans unreadable sensitive fields and
// audits the fields that could not be decoded.
func (s *recordService) display(ctx context.Context, row models.StoredRecordRow, actorID string, forEditing bool) (models.Record, error) {
	record, err := s.envelope.DecryptForDisplay(row.Record, row.RecordType, actorID)
	if err != nil {
		return nil, mapEnvelopeError(err)
	}

	policy, _ := s.envelope.Policy(row.RecordType)
	var failed []string
	for _, field := range policy.Sensitive {
		text, isString := record[field].(string)
		if !isString {
			continue
		}
		if text == repair.DecodingFailedMarker {
			failed = append(failed, field)
		}
		record[field] = repair.CleanDisplayField(text, forEditing, s.displayFallback)
	}

	if len(failed) > 0 {
		sort.Strings(failed)
		logger.FromContext(ctx).Warn().
			Str("func", "recordService.display").
			Str("record_type", row.RecordType).
			Str("failure", strings.Join(failed, ",")).
			Msg("record has undecodable fields")
		s.audit.LogDecryptionFailure(ctx, resourceOf(row.RecordType, row.ID), failed)
	}

	if _, ok := record["id"]; !ok {
		record["id"] = row.ID
	}

	return record, nil
}

func (s *recordService) load(ctx context.Context, recordType, id string) (models.StoredRecordRow, error) {
	row, err := s.records.Get(ctx, recordType, id)
	if errors.Is(err, store.ErrRecordNotFound) {
		return models.StoredRecordRow{}, ErrRecordNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "recordService.load").
			Str("record_type", recordType).
			Msg("failed to load record")
		return models.StoredRecordRow{}, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return row, nil
}

// actor returns the actor of ctx after checking that recordType has a field
// policy.
func (s *recordService) actor(ctx context.Context, recordType string) (string, error) {
	actorID, ok := utils.GetActorIDFromContext(ctx)
	if !ok {
		return "", ErrUnauthenticated
	}
	if _, known := s.envelope.Policy(recordType); !known {
		return "", fmt.Errorf("%w: %s", ErrUnknownRecordType, recordType)
	}
	return actorID, nil
}

func mapEnvelopeError(err error) error {
	switch {
	case errors.Is(err, crypto.ErrNoActor):
		return ErrUnauthenticated
	case errors.Is(err, envelope.ErrUnknownRecordType):
		return fmt.Errorf("%w: %w", ErrUnknownRecordType, err)
	default:
		return err
	}
}

func resourceOf(recordType, id string) string {
	return recordType + "/" + id
}
