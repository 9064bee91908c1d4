package models

// RecordRef identifies one stored record.
type RecordRef struct {
	RecordType string `json:"recordType"`
	ID         string `json:"id"`
}

// PseudonymQuery looks records up by the plaintext value of a pseudonymized
// field. Value never leaves the process: only its token is sent to storage.
type PseudonymQuery struct {
	RecordType string `json:"recordType"`
	Field      string `json:"field"`
	Value      string `json:"value"`
}
