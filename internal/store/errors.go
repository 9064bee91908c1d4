package store

import "errors"

// Errors surfaced to the service layer. Match them with [errors.Is].
var (
	ErrRecordNotFound = errors.New("record was not found")

	// ErrRetryable is joined to driver errors that [PostgresErrorClassifier]
	// reports as transient.
	ErrRetryable = errors.New("transient database failure")
)

// Wrapping errors for each stage of a repository call.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to execute statement")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")
	ErrEncodingColumn       = errors.New("failed to encode jsonb column")
)
