package envelope

import "errors"

var (
	// ErrUnknownRecordType is returned for a record type without a field
	// policy.
	ErrUnknownRecordType = errors.New("record type has no field policy")

	// ErrInvalidSchema is returned when a field policy table is malformed.
	ErrInvalidSchema = errors.New("invalid field policy schema")
)
