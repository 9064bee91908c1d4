package models

// FieldState is the diagnosed state of a single sensitive field value.
type FieldState string

const (
	FieldEmpty                  FieldState = "empty"
	FieldPlaintext              FieldState = "plaintext"
	FieldEncrypted              FieldState = "encrypted"
	FieldMalformedRepairable    FieldState = "malformed_repairable"
	FieldMalformedUnrecoverable FieldState = "malformed_unrecoverable"
	FieldErrorTagged            FieldState = "error_tagged"
)

// FieldDiagnostic reports the state of one sensitive field of a stored record.
type FieldDiagnostic struct {
	Field string     `json:"field"`
	State FieldState `json:"state"`
	// Decryptable is only meaningful for encrypted or repairable fields: it
	// tells whether the requesting actor's key opens the value.
	Decryptable bool `json:"decryptable"`
}

// RecordDiagnostics is the compliance report of one stored record.
type RecordDiagnostics struct {
	RecordType        string            `json:"recordType"`
	ID                string            `json:"id"`
	Compliant         bool              `json:"compliant"`
	DefaultSecretUsed bool              `json:"defaultSecretUsed"`
	Fields            []FieldDiagnostic `json:"fields"`
}

// ComplianceStatus is the process-wide compliance summary.
type ComplianceStatus struct {
	ComplianceVersion string `json:"complianceVersion"`
	DefaultSecretUsed bool   `json:"defaultSecretUsed"`
	QueuedAuditEvents int    `json:"queuedAuditEvents"`
	RetentionYears    int    `json:"retentionYears"`
	AuditSessionID    string `json:"auditSessionId"`
	CachedUserKeys    int    `json:"cachedUserKeys"`
}
