package broker

import (
	"context"

	"github.com/predatorx7/thoth/pkg/model"
)

// Publisher defines the interface for publishing received records.
type Publisher interface {
	Publish(ctx context.Context, records []model.Record) error
}

// Subscriber defines the interface for consuming received records.
type Subscriber interface {
	Subscribe(ctx context.Context) (<-chan []model.Record, error)
}

// Broker combines Publisher and Subscriber interfaces.
type Broker interface {
	Publisher
	Subscriber
	Stats() (uint64, uint64)
}
