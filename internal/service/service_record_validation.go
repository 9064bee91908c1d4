package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-hds-keeper/internal/validators"
	"github.com/MKhiriev/go-hds-keeper/models"
)

// recordValidationService rejects malformed identifiers and empty payloads
// before they reach the wrapped RecordService.
type recordValidationService struct {
	inner     RecordService
	validator validators.Validator
}

func NewRecordValidationService() RecordServiceWrapper {
	return &recordValidationService{
		validator: validators.NewRecordValidator(),
	}
}

func (v *recordValidationService) Save(ctx context.Context, recordType, id string, record models.Record) (string, error) {
	fields := []string{validators.FieldRecordType}
	if id != "" {
		fields = append(fields, validators.FieldID)
	}
	if err := v.validate(ctx, models.RecordRef{RecordType: recordType, ID: id}, fields...); err != nil {
		return "", err
	}
	if err := v.validate(ctx, record); err != nil {
		return "", err
	}

	return v.inner.Save(ctx, recordType, id, record)
}

func (v *recordValidationService) Get(ctx context.Context, recordType, id string, forEditing bool) (models.Record, error) {
	if err := v.validate(ctx, models.RecordRef{RecordType: recordType, ID: id}); err != nil {
		return nil, err
	}
	return v.inner.Get(ctx, recordType, id, forEditing)
}

func (v *recordValidationService) FindByPseudonym(ctx context.Context, query models.PseudonymQuery) ([]models.Record, error) {
	if err := v.validate(ctx, query); err != nil {
		return nil, err
	}
	return v.inner.FindByPseudonym(ctx, query)
}

func (v *recordValidationService) Delete(ctx context.Context, recordType, id string) error {
	if err := v.validate(ctx, models.RecordRef{RecordType: recordType, ID: id}); err != nil {
		return err
	}
	return v.inner.Delete(ctx, recordType, id)
}

func (v *recordValidationService) Diagnose(ctx context.Context, recordType, id string) (models.RecordDiagnostics, error) {
	if err := v.validate(ctx, models.RecordRef{RecordType: recordType, ID: id}); err != nil {
		return models.RecordDiagnostics{}, err
	}
	return v.inner.Diagnose(ctx, recordType, id)
}

func (v *recordValidationService) Wrap(inner RecordService) RecordService {
	v.inner = inner
	return v
}

func (v *recordValidationService) validate(ctx context.Context, obj any, fields ...string) error {
	if err := v.validator.Validate(ctx, obj, fields...); err != nil {
		return fmt.Errorf("%w: %w", mapValidationError(err), err)
	}
	return nil
}

func mapValidationError(err error) error {
	switch {
	case errors.Is(err, validators.ErrInvalidRecordType):
		return ErrInvalidRecordType
	case errors.Is(err, validators.ErrInvalidID):
		return ErrInvalidRecordID
	case errors.Is(err, validators.ErrEmptyRecord):
		return ErrEmptyRecord
	default:
		return ErrEmptySearchValue
	}
}
