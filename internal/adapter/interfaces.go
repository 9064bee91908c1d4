// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound transport of go-hds-keeper: the HTTP
// client of the remote audit collector.
//
// [NewAuditCollector] returns an [audit.Store] so the audit logger can write
// either to the record database or to a central collector without knowing
// which one it talks to.
//
// Non-2xx responses are mapped by mapHTTPError to the sentinel values of
// errors.go so that callers can use [errors.Is] (e.g. [ErrUnauthorized] for
// 401, [ErrServiceUnavailable] for 503).
package adapter

import "github.com/MKhiriev/go-hds-keeper/models"

// Collector endpoints.
const (
	eventsPath      = "/api/audit/events"
	eventsBatchPath = "/api/audit/events/batch"
)

// appendResponse is the collector's reply to a single append.
type appendResponse struct {
	ID string `json:"id"`
}

// batchRequest carries the events submitted in one batch. Length lets the
// collector reject truncated bodies.
type batchRequest struct {
	Events []models.AuditEvent `json:"events"`
	Length int                 `json:"length"`
}

// batchResponse is the collector's reply to a batch append.
type batchResponse struct {
	Stored int `json:"stored"`
}
