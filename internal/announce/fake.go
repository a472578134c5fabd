package announce

import "sync"

// Published is one message seen by FakePublisher.
type Published struct {
	Topic    string
	Payload  []byte
	Retained bool
}

// FakePublisher records published messages for tests.
type FakePublisher struct {
	mu sync.Mutex

	Messages []Published

	// PublishError, if set, is returned by Publish.
	PublishError error

	Closed bool
}

// NewFakePublisher creates a FakePublisher.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// Publish records the message.
func (f *FakePublisher) Publish(topic string, payload []byte, retained bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PublishError != nil {
		return f.PublishError
	}
	f.Messages = append(f.Messages, Published{Topic: topic, Payload: payload, Retained: retained})
	return nil
}

// Close marks the publisher closed.
func (f *FakePublisher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// Snapshot returns the recorded messages.
func (f *FakePublisher) Snapshot() []Published {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Published(nil), f.Messages...)
}

// IsClosed reports whether Close was called.
func (f *FakePublisher) IsClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Closed
}
