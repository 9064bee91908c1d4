package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidRecordType = errors.New("invalid record type")
	ErrInvalidID         = errors.New("invalid record id")
	ErrEmptyRecord       = errors.New("record must have at least one field")
	ErrEmptySearchField  = errors.New("search field is required")
	ErrEmptySearchValue  = errors.New("search value is required")
)
