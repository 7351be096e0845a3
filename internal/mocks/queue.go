package mocks

import "sync"

// MockQueue is an in-memory MessageQueue for tests: publishes are delivered
// synchronously to any registered subscriber.
type MockQueue struct {
	mu          sync.Mutex
	subscribers map[string][]func(data []byte) error
	Published   map[string][][]byte
}

func NewMockQueue() *MockQueue {
	return &MockQueue{
		subscribers: make(map[string][]func(data []byte) error),
		Published:   make(map[string][][]byte),
	}
}

func (m *MockQueue) Publish(subject string, data []byte) error {
	m.mu.Lock()
	m.Published[subject] = append(m.Published[subject], data)
	handlers := append([]func(data []byte) error(nil), m.subscribers[subject]...)
	m.mu.Unlock()

	for _, handler := range handlers {
		_ = handler(data)
	}
	return nil
}

func (m *MockQueue) Subscribe(subject string, handler func(data []byte) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers[subject] = append(m.subscribers[subject], handler)
	return nil
}

func (m *MockQueue) Close() error {
	return nil
}
