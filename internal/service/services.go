package service

import (
	"github.com/MKhiriev/go-hds-keeper/internal/audit"
	"github.com/MKhiriev/go-hds-keeper/internal/config"
	"github.com/MKhiriev/go-hds-keeper/internal/crypto"
	"github.com/MKhiriev/go-hds-keeper/internal/envelope"
	"github.com/MKhiriev/go-hds-keeper/internal/logger"
	"github.com/MKhiriev/go-hds-keeper/internal/store"
	"github.com/MKhiriev/go-hds-keeper/models"
)

// Compliance groups the core compliance components the services are built on.
type Compliance struct {
	Envelope   envelope.Envelope
	Cipher     crypto.FieldCipher
	Keys       *crypto.KeyStore
	Audit      audit.Logger
	AuditStore audit.Store
}

type Services struct {
	RecordService     RecordService
	ComplianceService ComplianceService
	AppInfoService    AppInfoService
}

func NewServices(records store.RecordRepository, compliance Compliance, cfg config.StructuredConfig,
	build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, err
	}

	recordService := NewRecordService(records, compliance.Envelope, compliance.Cipher, compliance.Keys,
		compliance.Audit, cfg.App, logger)

	return &Services{
		RecordService:     NewRecordValidationService().Wrap(recordService),
		ComplianceService: NewComplianceService(compliance.Audit, compliance.AuditStore, compliance.Keys, cfg.Compliance, logger),
		AppInfoService:    appInfoService,
	}, nil
}
