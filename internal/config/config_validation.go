// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"time"
)

// Defaults applied to fields left empty by every source.
const (
	DefaultHTTPAddress       = "localhost:8080"
	DefaultRequestTimeout    = 30 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultTokenIssuer       = "go-hds-keeper"
	DefaultTokenDuration     = time.Hour
	DefaultRetentionYears    = 6
	DefaultQueueCapacity     = 100
	DefaultAuditSyncInterval = time.Minute
	DefaultCollectorTimeout  = 10 * time.Second
	DefaultAuditWriteTimeout = 5 * time.Second
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
	if cfg.Compliance.RetentionYears == 0 {
		cfg.Compliance.RetentionYears = DefaultRetentionYears
	}
	if cfg.Storage.LocalQueue.Capacity == 0 {
		cfg.Storage.LocalQueue.Capacity = DefaultQueueCapacity
	}
	if cfg.Workers.AuditSyncInterval == 0 {
		cfg.Workers.AuditSyncInterval = DefaultAuditSyncInterval
	}
	if cfg.Audit.RequestTimeout == 0 {
		cfg.Audit.RequestTimeout = DefaultCollectorTimeout
	}
	if cfg.Audit.WriteTimeout == 0 {
		cfg.Audit.WriteTimeout = DefaultAuditWriteTimeout
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants before it is used at startup. A missing master secret is not an
// error: the key store falls back to its default and reports it.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.LocalQueue.Capacity < 0 {
		return fmt.Errorf("%w: negative local queue capacity", ErrInvalidStorageConfigs)
	}

	if cfg.Compliance.RetentionYears < 0 {
		return fmt.Errorf("%w: negative retention period", ErrInvalidComplianceConfigs)
	}

	if cfg.Audit.CollectorURL != "" {
		u, err := url.Parse(cfg.Audit.CollectorURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: collector URL must be absolute", ErrInvalidAuditConfigs)
		}
	}

	if cfg.Workers.AuditSyncInterval < 0 {
		return fmt.Errorf("%w: negative audit sync interval", ErrInvalidWorkerConfigs)
	}

	return nil
}
