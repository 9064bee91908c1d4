// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// AuditEventType classifies what happened to a sensitive resource.
type AuditEventType string

const (
	AuditDataAccess       AuditEventType = "data_access"
	AuditDataCreation     AuditEventType = "data_creation"
	AuditDataModification AuditEventType = "data_modification"
	AuditDataDeletion     AuditEventType = "data_deletion"
	AuditAuthentication   AuditEventType = "authentication"
	AuditDataExport       AuditEventType = "data_export"
	AuditSecurityEvent    AuditEventType = "security_event"
)

// Sensitivity is the sensitivity level of the resource an event refers to.
type Sensitivity string

const (
	SensitivityLow      Sensitivity = "low"
	SensitivityMedium   Sensitivity = "medium"
	SensitivityHigh     Sensitivity = "high"
	SensitivityCritical Sensitivity = "critical"
)

// AuditOutcome is the outcome of the audited operation.
type AuditOutcome string

const (
	OutcomeSuccess AuditOutcome = "success"
	OutcomeFailure AuditOutcome = "failure"
	OutcomeDenied  AuditOutcome = "denied"
)

// AuditCompliance is the static compliance tag carried by every event.
type AuditCompliance struct {
	Version        string `json:"version"`
	RetentionYears int    `json:"retentionYears"`
	Immutable      bool   `json:"immutable"`
}

// AuditEvent is an immutable record of one access or mutation of a sensitive
// resource. Events are never updated or deleted once created.
type AuditEvent struct {
	// ID is assigned by the durable store.
	ID string `json:"id,omitempty"`

	// Timestamp is assigned by the durable store.
	Timestamp time.Time `json:"timestamp"`

	// LocalTimestamp is the time the event was produced in this process.
	// It survives a detour through the local fallback queue.
	LocalTimestamp time.Time `json:"localTimestamp"`

	ActorID     string         `json:"actorId"`
	SessionID   string         `json:"sessionId"`
	EventType   AuditEventType `json:"eventType"`
	Resource    string         `json:"resource"`
	Action      string         `json:"action"`
	Sensitivity Sensitivity    `json:"sensitivity"`
	Outcome     AuditOutcome   `json:"outcome"`
	Details     map[string]any `json:"details,omitempty"`

	Compliance AuditCompliance `json:"compliance"`

	// SyncedFromLocal is set on events that reached the durable store through
	// the local fallback queue.
	SyncedFromLocal bool `json:"syncedFromLocal"`
}

// QueuedAuditEvent is an event waiting in the local fallback queue.
// Seq grows monotonically in insertion order.
type QueuedAuditEvent struct {
	Seq   int64
	Event AuditEvent
}

// AuditFilter narrows the events returned by an audit listing.
// Zero-valued fields are ignored.
type AuditFilter struct {
	ActorID   string
	Resource  string
	EventType AuditEventType
	Since     time.Time
	Until     time.Time
	Limit     uint64
}
