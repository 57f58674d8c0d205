package event

import (
	"context"
	"time"

	domain "tdr-registry/internal/domain/event"
	"tdr-registry/internal/infrastructure/metrics"

	"go.uber.org/zap"
)

// Relay drains the outbox into a Publisher. Delivery is at-least-once: an
// event published right before a failed MarkPublished is sent again.
type Relay struct {
	outbox   domain.Outbox
	pub      domain.Publisher
	log      *zap.Logger
	m        *metrics.Metrics
	interval time.Duration
	batch    int
}

func NewRelay(outbox domain.Outbox, pub domain.Publisher, interval time.Duration, batch int, log *zap.Logger, m *metrics.Metrics) *Relay {
	if log == nil {
		log = zap.NewNop()
	}
	if m == nil {
		m = metrics.Nop()
	}
	if interval <= 0 {
		interval = time.Second
	}
	if batch <= 0 {
		batch = 100
	}
	return &Relay{outbox: outbox, pub: pub, log: log, m: m, interval: interval, batch: batch}
}

// Run flushes on every tick until ctx is done.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := r.Flush(ctx); err != nil && ctx.Err() == nil {
				r.log.Warn("outbox flush failed", zap.Error(err))
			}
		}
	}
}

// Flush publishes one batch in order. It stops at the first failed publish so
// later events never overtake an earlier one.
func (r *Relay) Flush(ctx context.Context) (int, error) {
	pending, err := r.outbox.Pending(ctx, r.batch)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	done := make([]uint64, 0, len(pending))
	var pubErr error
	for _, e := range pending {
		if pubErr = r.pub.Publish(ctx, e); pubErr != nil {
			r.m.EventPublishErrs.Inc()
			r.log.Warn("publish event",
				zap.String("event_id", e.EventID),
				zap.String("name", e.Name),
				zap.Error(pubErr),
			)
			break
		}
		done = append(done, e.ID)
	}

	if err := r.outbox.MarkPublished(ctx, done, time.Now().UTC()); err != nil {
		return 0, err
	}
	r.m.EventsPublished.Add(float64(len(done)))
	if len(done) > 0 {
		r.log.Debug("outbox flushed", zap.Int("published", len(done)))
	}
	return len(done), pubErr
}
