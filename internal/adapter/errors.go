package adapter

import "errors"

// Errors mapped from the collector's HTTP status codes.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")
)

var (
	// ErrInvalidCollectorURL is returned when the collector address cannot be
	// normalized into an absolute URL.
	ErrInvalidCollectorURL = errors.New("invalid audit collector url")

	// ErrPartialBatch is returned when the collector acknowledges fewer
	// events than were submitted.
	ErrPartialBatch = errors.New("audit collector stored a partial batch")
)
