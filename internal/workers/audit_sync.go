// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-hds-keeper/internal/logger"
	"github.com/MKhiriev/go-hds-keeper/internal/service"
)

// AuditSyncWorker periodically re-submits audit events that were queued
// locally while the audit store was unreachable.
type AuditSyncWorker struct {
	compliance service.ComplianceService
	interval   time.Duration
	logger     *logger.Logger
}

func NewAuditSyncWorker(compliance service.ComplianceService, interval time.Duration, logger *logger.Logger) *AuditSyncWorker {
	return &AuditSyncWorker{
		compliance: compliance,
		interval:   interval,
		logger:     logger,
	}
}

func (a *AuditSyncWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	a.logger.Info().Dur("interval", a.interval).Msg("audit sync worker started")
	for {
		select {
		case <-ctx.Done():
			a.logger.Info().Msg("audit sync worker stopped")
			return
		case <-ticker.C:
			a.sync(ctx)
		}
	}
}

func (a *AuditSyncWorker) sync(ctx context.Context) {
	synced, err := a.compliance.SyncAudit(a.logger.WithContext(ctx))
	if err != nil {
		// events stay queued, the next tick retries
		a.logger.Warn().Err(err).Str("func", "AuditSyncWorker.sync").Msg("audit sync failed")
		return
	}
	if synced > 0 {
		a.logger.Info().Int("synced", synced).Msg("queued audit events synced")
	}
}
