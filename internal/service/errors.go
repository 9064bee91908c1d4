package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	// ErrUnauthenticated is returned when ctx carries no actor.
	ErrUnauthenticated = errors.New("no authenticated actor")

	ErrRecordNotFound     = errors.New("record not found")
	ErrUnknownRecordType  = errors.New("unknown record type")
	ErrFieldNotSearchable = errors.New("field is not pseudonymized")

	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Validation errors.
var (
	ErrInvalidRecordType = errors.New("invalid record type")
	ErrInvalidRecordID   = errors.New("invalid record id")
	ErrEmptyRecord       = errors.New("record has no fields")
	ErrEmptySearchValue  = errors.New("search field and value are required")
)
