package outboxmock

import (
	"context"
	"sync"
	"time"

	"tdr-registry/internal/domain/event"
)

var (
	_ event.Outbox    = (*Outbox)(nil)
	_ event.Publisher = (*Publisher)(nil)
)

// Outbox records appended events in memory. Fn fields override the defaults.
type Outbox struct {
	mu     sync.Mutex
	Events []*event.Event

	AppendFn        func(ctx context.Context, e *event.Event) error
	PendingFn       func(ctx context.Context, limit int) ([]event.Event, error)
	MarkPublishedFn func(ctx context.Context, ids []uint64, at time.Time) error
}

func (m *Outbox) Append(ctx context.Context, e *event.Event) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, e)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, e)
	return nil
}

func (m *Outbox) Pending(ctx context.Context, limit int) ([]event.Event, error) {
	if m.PendingFn != nil {
		return m.PendingFn(ctx, limit)
	}
	return nil, nil
}

func (m *Outbox) MarkPublished(ctx context.Context, ids []uint64, at time.Time) error {
	if m.MarkPublishedFn != nil {
		return m.MarkPublishedFn(ctx, ids, at)
	}
	return nil
}

// Names returns the names of the appended events in order.
func (m *Outbox) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Events))
	for i, e := range m.Events {
		out[i] = e.Name
	}
	return out
}

// Publisher is a function-backed event.Publisher.
type Publisher struct {
	PublishFn func(ctx context.Context, e event.Event) error
}

func (m *Publisher) Publish(ctx context.Context, e event.Event) error {
	if m.PublishFn != nil {
		return m.PublishFn(ctx, e)
	}
	return nil
}
