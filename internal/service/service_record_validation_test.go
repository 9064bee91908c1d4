package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-hds-keeper/internal/mock"
	"github.com/MKhiriev/go-hds-keeper/internal/validators"
	"github.com/MKhiriev/go-hds-keeper/models"
)

func newValidatedRecordService(t *testing.T) (RecordService, *mock.MockRecordService) {
	t.Helper()

	inner := mock.NewMockRecordService(gomock.NewController(t))
	return NewRecordValidationService().Wrap(inner), inner
}

func TestRecordValidation_Save(t *testing.T) {
	svc, inner := newValidatedRecordService(t)
	ctx := context.Background()

	inner.EXPECT().Save(ctx, "patients", "", models.Record{"firstName": "Jean"}).Return("new-id", nil)

	id, err := svc.Save(ctx, "patients", "", models.Record{"firstName": "Jean"})
	require.NoError(t, err)
	assert.Equal(t, "new-id", id)
}

func TestRecordValidation_Save_Rejects(t *testing.T) {
	svc, _ := newValidatedRecordService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, "", "", models.Record{"a": 1})
	assert.ErrorIs(t, err, ErrInvalidRecordType)
	assert.ErrorIs(t, err, validators.ErrInvalidRecordType)

	_, err = svc.Save(ctx, "patients", "bad/id", models.Record{"a": 1})
	assert.ErrorIs(t, err, ErrInvalidRecordID)

	_, err = svc.Save(ctx, "patients", "", models.Record{})
	assert.ErrorIs(t, err, ErrEmptyRecord)
}

func TestRecordValidation_Get(t *testing.T) {
	svc, inner := newValidatedRecordService(t)
	ctx := context.Background()

	inner.EXPECT().Get(ctx, "patients", "p-1", true).Return(models.Record{"id": "p-1"}, nil)

	record, err := svc.Get(ctx, "patients", "p-1", true)
	require.NoError(t, err)
	assert.Equal(t, "p-1", record["id"])

	_, err = svc.Get(ctx, "patients", "", false)
	assert.ErrorIs(t, err, ErrInvalidRecordID)
}

func TestRecordValidation_FindByPseudonym(t *testing.T) {
	svc, inner := newValidatedRecordService(t)
	ctx := context.Background()

	query := models.PseudonymQuery{RecordType: "patients", Field: "email", Value: "a@b.fr"}
	inner.EXPECT().FindByPseudonym(ctx, query).Return(nil, nil)

	_, err := svc.FindByPseudonym(ctx, query)
	require.NoError(t, err)

	_, err = svc.FindByPseudonym(ctx, models.PseudonymQuery{RecordType: "patients", Field: "email"})
	assert.ErrorIs(t, err, ErrEmptySearchValue)
}

func TestRecordValidation_DeleteAndDiagnose(t *testing.T) {
	svc, inner := newValidatedRecordService(t)
	ctx := context.Background()

	inner.EXPECT().Delete(ctx, "invoices", "i-1").Return(nil)
	inner.EXPECT().Diagnose(ctx, "invoices", "i-1").Return(models.RecordDiagnostics{ID: "i-1"}, nil)

	require.NoError(t, svc.Delete(ctx, "invoices", "i-1"))
	report, err := svc.Diagnose(ctx, "invoices", "i-1")
	require.NoError(t, err)
	assert.Equal(t, "i-1", report.ID)

	assert.ErrorIs(t, svc.Delete(ctx, "in voices", "i-1"), ErrInvalidRecordType)
	_, err = svc.Diagnose(ctx, "invoices", "")
	assert.ErrorIs(t, err, ErrInvalidRecordID)
}
