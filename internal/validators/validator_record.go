package validators

import (
	"context"
	"regexp"
	"strings"

	"github.com/MKhiriev/go-hds-keeper/models"
)

const (
	FieldRecordType = "record_type"
	FieldID         = "id"
	FieldPayload    = "payload"
	FieldSearch     = "field"
	FieldValue      = "value"
)

// identifiers are used verbatim in audit resources ("patients/<id>"), so the
// separator is never allowed.
var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,128}$`)

type RecordValidator struct {
}

func NewRecordValidator() Validator {
	return &RecordValidator{}
}

func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RecordRef:
		return v.validateRef(value, fields...)
	case *models.RecordRef:
		return v.validateRef(*value, fields...)

	case models.Record:
		return v.validateRecord(value, fields...)

	case models.PseudonymQuery:
		return v.validateQuery(value, fields...)
	case *models.PseudonymQuery:
		return v.validateQuery(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RecordValidator) validateRef(ref models.RecordRef, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRecordType, FieldID}
	}

	for _, f := range fields {
		switch f {
		case FieldRecordType:
			if !identifierPattern.MatchString(ref.RecordType) {
				return ErrInvalidRecordType
			}
		case FieldID:
			if !identifierPattern.MatchString(ref.ID) {
				return ErrInvalidID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validateRecord(record models.Record, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPayload}
	}

	for _, f := range fields {
		switch f {
		case FieldPayload:
			// reserved keys are dropped by the envelope and do not count
			for field := range record {
				if !models.IsReservedKey(field) {
					return nil
				}
			}
			return ErrEmptyRecord
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validateQuery(query models.PseudonymQuery, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRecordType, FieldSearch, FieldValue}
	}

	for _, f := range fields {
		switch f {
		case FieldRecordType:
			if !identifierPattern.MatchString(query.RecordType) {
				return ErrInvalidRecordType
			}
		case FieldSearch:
			if strings.TrimSpace(query.Field) == "" {
				return ErrEmptySearchField
			}
		case FieldValue:
			if strings.TrimSpace(query.Value) == "" {
				return ErrEmptySearchValue
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
