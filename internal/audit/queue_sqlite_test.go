package audit

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-hds-keeper/internal/logger"
	"github.com/MKhiriev/go-hds-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockSQLiteQueue(t *testing.T) (*SQLiteQueue, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS audit_queue")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	q, err := newSQLiteQueue(context.Background(), db, 2, logger.Nop())
	require.NoError(t, err)
	return q, mock
}

func TestSQLiteQueue_Push(t *testing.T) {
	q, mock := newMockSQLiteQueue(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(pushQueuedEvent)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(trimQueue)).
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, q.Push(context.Background(), models.AuditEvent{Resource: "patients/p-1"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteQueue_Push_RollsBackOnError(t *testing.T) {
	q, mock := newMockSQLiteQueue(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(pushQueuedEvent)).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := q.Push(context.Background(), models.AuditEvent{})
	assert.ErrorContains(t, err, "disk full")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteQueue_Peek(t *testing.T) {
	q, mock := newMockSQLiteQueue(t)

	payload, err := json.Marshal(models.AuditEvent{Resource: "patients/p-1", ActorID: "u-1"})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(peekQueuedEvents)).
		WillReturnRows(sqlmock.NewRows([]string{"seq", "event"}).
			AddRow(int64(4), string(payload)).
			AddRow(int64(5), "{broken").
			AddRow(int64(6), string(payload)))

	items, err := q.Peek(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(4), items[0].Seq)
	assert.Equal(t, "patients/p-1", items[0].Event.Resource)
	assert.Equal(t, int64(6), items[1].Seq)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteQueue_DiscardAndLen(t *testing.T) {
	q, mock := newMockSQLiteQueue(t)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(discardQueued)).
		WithArgs(int64(6)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(regexp.QuoteMeta(countQueuedEvents)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	require.NoError(t, q.DiscardThrough(ctx, 6))

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewSQLiteQueue_CreateTableError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("read-only file system"))

	_, err = newSQLiteQueue(context.Background(), db, 0, logger.Nop())
	assert.ErrorContains(t, err, "read-only file system")
}

func TestSQLiteQueue_Closed(t *testing.T) {
	q, mock := newMockSQLiteQueue(t)
	ctx := context.Background()

	mock.ExpectClose()
	require.NoError(t, q.Close())
	require.NoError(t, q.Close())

	assert.ErrorIs(t, q.Push(ctx, models.AuditEvent{}), ErrQueueClosed)
	_, err := q.Peek(ctx)
	assert.ErrorIs(t, err, ErrQueueClosed)
	_, err = q.Len(ctx)
	assert.ErrorIs(t, err, ErrQueueClosed)
	assert.ErrorIs(t, q.DiscardThrough(ctx, 1), ErrQueueClosed)
	require.NoError(t, mock.ExpectationsWereMet())
}
