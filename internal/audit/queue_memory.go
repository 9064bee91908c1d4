package audit

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-hds-keeper/models"
)

type memoryQueue struct {
	capacity int

	mu      sync.Mutex
	nextSeq int64
	items   []models.QueuedAuditEvent
}

// NewMemoryQueue constructs an in-process [LocalQueue] holding at most
// capacity events. A non-positive capacity means [DefaultQueueCapacity].
func NewMemoryQueue(capacity int) LocalQueue {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &memoryQueue{
		capacity: capacity,
		nextSeq:  1,
		items:    make([]models.QueuedAuditEvent, 0, capacity),
	}
}

func (q *memoryQueue) Push(_ context.Context, event models.AuditEvent) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, models.QueuedAuditEvent{Seq: q.nextSeq, Event: event})
	q.nextSeq++

	if overflow := len(q.items) - q.capacity; overflow > 0 {
		q.items = append(q.items[:0], q.items[overflow:]...)
	}
	return nil
}

func (q *memoryQueue) Peek(_ context.Context) ([]models.QueuedAuditEvent, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]models.QueuedAuditEvent, len(q.items))
	copy(out, q.items)
	return out, nil
}

func (q *memoryQueue) DiscardThrough(_ context.Context, seq int64) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := 0
	for i < len(q.items) && q.items[i].Seq <= seq {
		i++
	}
	q.items = append(q.items[:0], q.items[i:]...)
	return nil
}

func (q *memoryQueue) Len(_ context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items), nil
}
