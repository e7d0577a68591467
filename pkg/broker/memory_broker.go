package broker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/predatorx7/thoth/pkg/model"
)

// DefaultBufferSize is the per-subscriber channel capacity.
const DefaultBufferSize = 2000

// MemoryBroker implements a simple in-memory pub/sub using channels.
type MemoryBroker struct {
	subscribers                 []chan []model.Record
	bufferSize                  int
	mu                          sync.RWMutex
	ingestedCount, droppedCount atomic.Uint64
}

// NewMemoryBroker creates a MemoryBroker with DefaultBufferSize.
func NewMemoryBroker() *MemoryBroker {
	return NewMemoryBrokerWithBuffer(DefaultBufferSize)
}

// NewMemoryBrokerWithBuffer creates a MemoryBroker whose subscriber
// channels hold size batches.
func NewMemoryBrokerWithBuffer(size int) *MemoryBroker {
	return &MemoryBroker{
		subscribers: make([]chan []model.Record, 0),
		bufferSize:  size,
	}
}

// Publish sends records to all registered subscribers non-blocking.
func (b *MemoryBroker) Publish(ctx context.Context, records []model.Record) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	b.ingestedCount.Add(uint64(len(records)))

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subscribers {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sub <- records:
		default:
			// Buffer full, drop for this subscriber to prevent backpressure
			b.droppedCount.Add(uint64(len(records)))
		}
	}
	return nil
}

// Subscribe returns a channel that receives record batches.
func (b *MemoryBroker) Subscribe(ctx context.Context) (<-chan []model.Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan []model.Record, b.bufferSize)
	b.subscribers = append(b.subscribers, ch)
	return ch, nil
}

// Stats returns the current metrics
func (b *MemoryBroker) Stats() (ingested, dropped uint64) {
	return b.ingestedCount.Load(), b.droppedCount.Load()
}
