package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-hds-keeper/internal/audit"
	"github.com/MKhiriev/go-hds-keeper/internal/config"
	"github.com/MKhiriev/go-hds-keeper/internal/crypto"
	"github.com/MKhiriev/go-hds-keeper/internal/logger"
	"github.com/MKhiriev/go-hds-keeper/models"
)

type complianceService struct {
	audit      audit.Logger
	auditStore audit.Store
	keys       *crypto.KeyStore

	retentionYears int

	logger *logger.Logger
}

func NewComplianceService(auditLogger audit.Logger, auditStore audit.Store, keys *crypto.KeyStore,
	cfg config.Compliance, logger *logger.Logger) ComplianceService {
	return &complianceService{
		audit:          auditLogger,
		auditStore:     auditStore,
		keys:           keys,
		retentionYears: cfg.RetentionYears,
		logger:         logger,
	}
}

func (c *complianceService) Status(ctx context.Context) models.ComplianceStatus {
	return models.ComplianceStatus{
		ComplianceVersion: models.ComplianceVersion,
		DefaultSecretUsed: c.keys.UsesDefaultSecret(),
		QueuedAuditEvents: c.audit.QueueLen(ctx),
		RetentionYears:    c.retentionYears,
		AuditSessionID:    c.audit.SessionID(),
		CachedUserKeys:    c.keys.CachedUsers(),
	}
}

func (c *complianceService) SyncAudit(ctx context.Context) (int, error) {
	synced, err := c.audit.SyncLocalLogs(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return synced, nil
}

// AuditTrail reads the audit trail. The export itself is audited.
func (c *complianceService) AuditTrail(ctx context.Context, filter models.AuditFilter) ([]models.AuditEvent, error) {
	events, err := c.auditStore.List(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "complianceService.AuditTrail").
			Msg("failed to list audit events")
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	c.audit.LogExport(ctx, "audit_events", "json", len(events))
	return events, nil
}
