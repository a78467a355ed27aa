package testutil

import (
	"context"
	"sync"
)

// MockPublisher is an in-memory stand-in for the RabbitMQ publisher. It
// records every published routing key and payload.
type MockPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

// PublishedEvent is one recorded Publish call.
type PublishedEvent struct {
	RoutingKey string
	Payload    interface{}
}

// NewMockPublisher creates an empty mock publisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, eventData interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{RoutingKey: routingKey, Payload: eventData})
	return nil
}

func (m *MockPublisher) Close() error { return nil }

// RoutingKeys returns the recorded routing keys in publish order.
func (m *MockPublisher) RoutingKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, len(m.Events))
	for i, e := range m.Events {
		keys[i] = e.RoutingKey
	}
	return keys
}
