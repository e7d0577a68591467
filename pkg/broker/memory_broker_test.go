package broker

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/predatorx7/thoth/pkg/model"
)

func TestMemoryBroker(t *testing.T) {
	b := NewMemoryBroker()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	subCh, err := b.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	records := []model.Record{
		{ID: "1", App: "myapp", Type: model.LogTypeInfo, Info: json.RawMessage(`"test log 1"`)},
		{ID: "2", App: "myapp", Type: model.LogTypeError, Info: json.RawMessage(`"test log 2"`)},
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := b.Publish(ctx, records); err != nil {
			t.Errorf("Publish failed: %v", err)
		}
	}()

	select {
	case received := <-subCh:
		if len(received) != 2 {
			t.Errorf("Expected 2 records, got %d", len(received))
		}
		if string(received[0].Info) != `"test log 1"` {
			t.Errorf("Unexpected record info: %s", received[0].Info)
		}
	case <-ctx.Done():
		t.Fatal("Timeout waiting for records")
	}

	wg.Wait()
}

func TestMemoryBroker_ContextCancel(t *testing.T) {
	b := NewMemoryBroker()
	ctx, cancel := context.WithCancel(context.Background())

	subCh, _ := b.Subscribe(ctx)
	cancel()

	err := b.Publish(ctx, []model.Record{{ID: "1"}})
	if err == nil {
		t.Error("Expected error on cancelled context, got nil")
	}

	select {
	case <-subCh:
	default:
	}
}
