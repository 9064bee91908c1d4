package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-hds-keeper/internal/logger"
	"github.com/MKhiriev/go-hds-keeper/internal/mock"
	"github.com/MKhiriev/go-hds-keeper/internal/utils"
	"github.com/MKhiriev/go-hds-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errStoreDown = errors.New("store unavailable")

func newTestAuditLogger(t *testing.T, ctrl *gomock.Controller, queue LocalQueue) (*auditLogger, *mock.MockStore) {
	t.Helper()
	store := mock.NewMockStore(ctrl)
	if queue == nil {
		queue = NewMemoryQueue(DefaultQueueCapacity)
	}

	a := NewLogger(store, queue, 0, 0, logger.Nop()).(*auditLogger)
	a.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return a, store
}

func actorCtx() context.Context {
	return utils.WithActorID(context.Background(), "practitioner-1")
}

func TestAuditLogger_Log(t *testing.T) {
	ctrl := gomock.NewController(t)
	a, store := newTestAuditLogger(t, ctrl, nil)

	store.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e models.AuditEvent) (string, error) {
			assert.Equal(t, "practitioner-1", e.ActorID)
			assert.Equal(t, a.SessionID(), e.SessionID)
			assert.Equal(t, models.AuditDataAccess, e.EventType)
			assert.Equal(t, "patients/p-1", e.Resource)
			assert.Equal(t, "read", e.Action)
			assert.Equal(t, models.SensitivityHigh, e.Sensitivity)
			assert.Equal(t, models.OutcomeSuccess, e.Outcome)
			assert.Equal(t, models.AuditCompliance{Version: "hds-1.0", RetentionYears: 6, Immutable: true}, e.Compliance)
			assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), e.LocalTimestamp)
			assert.False(t, e.SyncedFromLocal)
			return "evt-1", nil
		})

	id := a.LogPatientAccess(actorCtx(), "p-1", "read")
	assert.Equal(t, "evt-1", id)
	assert.Zero(t, a.QueueLen(context.Background()))
}

func TestAuditLogger_Log_NoActor(t *testing.T) {
	ctrl := gomock.NewController(t)
	a, _ := newTestAuditLogger(t, ctrl, nil)

	// no store call expected
	id := a.Log(context.Background(), models.AuditDataAccess, "patients/p-1", "read",
		models.SensitivityHigh, models.OutcomeSuccess, nil)
	assert.Empty(t, id)
	assert.Zero(t, a.QueueLen(context.Background()))
}

func TestAuditLogger_Log_CancelledContextStillWrites(t *testing.T) {
	ctrl := gomock.NewController(t)
	a, store := newTestAuditLogger(t, ctrl, nil)

	ctx, cancel := context.WithCancel(actorCtx())
	cancel()

	store.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ models.AuditEvent) (string, error) {
			require.NoError(t, ctx.Err())
			return "evt-2", nil
		})

	assert.Equal(t, "evt-2", a.LogDataDeletion(ctx, "patients/p-1", models.OutcomeSuccess, nil))
}

func TestAuditLogger_Log_HungStoreIsBounded(t *testing.T) {
	ctrl := gomock.NewController(t)
	a, store := newTestAuditLogger(t, ctrl, nil)
	a.writeTimeout = 20 * time.Millisecond

	store.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ models.AuditEvent) (string, error) {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			<-ctx.Done()
			return "", ctx.Err()
		})

	done := make(chan string, 1)
	go func() {
		done <- a.LogPatientAccess(actorCtx(), "p-1", "read")
	}()

	select {
	case id := <-done:
		assert.Empty(t, id)
	case <-time.After(2 * time.Second):
		t.Fatal("audit write was not bounded by the write timeout")
	}
	assert.Equal(t, 1, a.QueueLen(context.Background()))
}

func TestNewLogger_Defaults(t *testing.T) {
	a := NewLogger(nil, NewMemoryQueue(1), -1, -1, logger.Nop()).(*auditLogger)

	assert.Equal(t, DefaultRetentionYears, a.retentionYears)
	assert.Equal(t, DefaultWriteTimeout, a.writeTimeout)
}

func TestAuditLogger_Log_FallsBackToQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	a, store := newTestAuditLogger(t, ctrl, nil)

	store.EXPECT().Append(gomock.Any(), gomock.Any()).Return("", errStoreDown).Times(3)

	ctx := actorCtx()
	assert.Empty(t, a.LogDataCreation(ctx, "patients/p-1", models.OutcomeSuccess, nil))
	assert.Empty(t, a.LogAuthentication(ctx, "login", models.OutcomeDenied, nil))
	assert.Empty(t, a.LogExport(ctx, "patients", "csv", 12))
	assert.Equal(t, 3, a.QueueLen(ctx))
}

func TestAuditLogger_Log_QueueRejects(t *testing.T) {
	ctrl := gomock.NewController(t)
	queue := mock.NewMockLocalQueue(ctrl)
	a, store := newTestAuditLogger(t, ctrl, queue)

	store.EXPECT().Append(gomock.Any(), gomock.Any()).Return("", errStoreDown)
	queue.EXPECT().Push(gomock.Any(), gomock.Any()).Return(ErrQueueClosed)

	assert.Empty(t, a.LogSecurityEvent(actorCtx(), "default_secret", models.SensitivityCritical, nil))
}

func TestAuditLogger_QueueCapacity(t *testing.T) {
	ctrl := gomock.NewController(t)
	a, store := newTestAuditLogger(t, ctrl, nil)

	store.EXPECT().Append(gomock.Any(), gomock.Any()).Return("", errStoreDown).AnyTimes()

	ctx := actorCtx()
	for i := range DefaultQueueCapacity + 5 {
		a.Log(ctx, models.AuditDataAccess, "patients", "read", models.SensitivityLow, models.OutcomeSuccess,
			map[string]any{"n": i})
	}
	assert.Equal(t, DefaultQueueCapacity, a.QueueLen(ctx))

	queued, err := a.queue.Peek(ctx)
	require.NoError(t, err)
	// the oldest five were dropped
	assert.Equal(t, 5, queued[0].Event.Details["n"])
}

func TestAuditLogger_SyncLocalLogs(t *testing.T) {
	ctrl := gomock.NewController(t)
	a, store := newTestAuditLogger(t, ctrl, nil)
	ctx := actorCtx()

	gomock.InOrder(
		store.EXPECT().Append(gomock.Any(), gomock.Any()).Return("", errStoreDown).Times(2),
		store.EXPECT().AppendBatch(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, events []models.AuditEvent) (int, error) {
				require.Len(t, events, 2)
				for _, e := range events {
					assert.True(t, e.SyncedFromLocal)
				}
				return len(events), nil
			}),
	)

	a.LogDataModification(ctx, "patients/p-1", models.OutcomeSuccess, nil)
	a.LogDataModification(ctx, "patients/p-2", models.OutcomeFailure, nil)

	n, err := a.SyncLocalLogs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Zero(t, a.QueueLen(ctx))
}

func TestAuditLogger_SyncLocalLogs_IntoRepository(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockAuditRepository(ctrl)
	a := NewLogger(repo, NewMemoryQueue(DefaultQueueCapacity), 0, 0, logger.Nop())
	ctx := actorCtx()

	gomock.InOrder(
		repo.EXPECT().Append(gomock.Any(), gomock.Any()).Return("", errStoreDown),
		repo.EXPECT().AppendBatch(gomock.Any(), gomock.Len(1)).Return(1, nil),
	)

	assert.Empty(t, a.LogPatientAccess(ctx, "p-1", "read"))
	n, err := a.SyncLocalLogs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Zero(t, a.QueueLen(ctx))
}

func TestAuditLogger_ClosedQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	q, sqlMock := newMockSQLiteQueue(t)
	sqlMock.ExpectClose()
	require.NoError(t, q.Close())

	store := mock.NewMockStore(ctrl)
	a := NewLogger(store, q, 0, 0, logger.Nop())
	ctx := actorCtx()

	store.EXPECT().Append(gomock.Any(), gomock.Any()).Return("", errStoreDown)
	assert.Empty(t, a.LogPatientAccess(ctx, "p-1", "read"))
	assert.Zero(t, a.QueueLen(ctx))

	_, err := a.SyncLocalLogs(ctx)
	assert.ErrorIs(t, err, ErrSyncFailed)
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestAuditLogger_SyncLocalLogs_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	a, _ := newTestAuditLogger(t, ctrl, nil)

	n, err := a.SyncLocalLogs(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAuditLogger_SyncLocalLogs_BatchFailureKeepsQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	a, store := newTestAuditLogger(t, ctrl, nil)
	ctx := actorCtx()

	store.EXPECT().Append(gomock.Any(), gomock.Any()).Return("", errStoreDown)
	store.EXPECT().AppendBatch(gomock.Any(), gomock.Any()).Return(0, errStoreDown)

	a.LogDecryptionFailure(ctx, "patients/p-1", []string{"lastName", "email"})

	n, err := a.SyncLocalLogs(ctx)
	assert.ErrorIs(t, err, ErrSyncFailed)
	assert.ErrorIs(t, err, errStoreDown)
	assert.Zero(t, n)
	assert.Equal(t, 1, a.QueueLen(ctx))
}

func TestAuditLogger_SyncLocalLogs_KeepsEventsQueuedDuringSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	a, store := newTestAuditLogger(t, ctrl, nil)
	ctx := actorCtx()

	store.EXPECT().Append(gomock.Any(), gomock.Any()).Return("", errStoreDown).Times(2)
	store.EXPECT().AppendBatch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, events []models.AuditEvent) (int, error) {
			// an event arrives while the batch is in flight
			a.LogPatientAccess(ctx, "p-late", "read")
			return len(events), nil
		})

	a.LogPatientAccess(ctx, "p-1", "read")

	n, err := a.SyncLocalLogs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	queued, err := a.queue.Peek(ctx)
	require.NoError(t, err)
	require.Len(t, queued, 1)
	assert.Equal(t, "patients/p-late", queued[0].Event.Resource)
}

func TestAuditLogger_SyncLocalLogs_DiscardFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	queue := mock.NewMockLocalQueue(ctrl)
	a, store := newTestAuditLogger(t, ctrl, queue)
	ctx := context.Background()

	queue.EXPECT().Peek(ctx).Return([]models.QueuedAuditEvent{{Seq: 7}}, nil)
	store.EXPECT().AppendBatch(ctx, gomock.Len(1)).Return(1, nil)
	queue.EXPECT().DiscardThrough(ctx, int64(7)).Return(ErrQueueClosed)

	n, err := a.SyncLocalLogs(ctx)
	assert.ErrorIs(t, err, ErrQueueClosed)
	assert.Equal(t, 1, n)
}

func TestAuditLogger_QueueLenError(t *testing.T) {
	ctrl := gomock.NewController(t)
	queue := mock.NewMockLocalQueue(ctrl)
	a, _ := newTestAuditLogger(t, ctrl, queue)

	queue.EXPECT().Len(gomock.Any()).Return(0, ErrQueueClosed)
	assert.Zero(t, a.QueueLen(context.Background()))
}

func TestNewLogger_SessionID(t *testing.T) {
	ctrl := gomock.NewController(t)
	a, _ := newTestAuditLogger(t, ctrl, nil)
	b, _ := newTestAuditLogger(t, ctrl, nil)

	assert.True(t, utils.IsUUID(a.SessionID()))
	assert.NotEqual(t, a.SessionID(), b.SessionID())
	assert.Equal(t, DefaultRetentionYears, a.retentionYears)
}
