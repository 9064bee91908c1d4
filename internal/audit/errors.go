package audit

import "errors"

var (
	ErrSyncFailed  = errors.New("audit queue sync failed")
	ErrQueueClosed = errors.New("audit queue is closed")
)
