package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	domain "tdr-registry/internal/domain/event"

	"github.com/redis/go-redis/v9"
)

// StreamPublisher appends events to a Redis Stream with XADD.
type StreamPublisher struct {
	rdb    *redis.Client
	stream string
	maxLen int64
}

// NewStreamPublisher caps the stream at roughly maxLen entries; zero means uncapped.
func NewStreamPublisher(rdb *redis.Client, stream string, maxLen int64) *StreamPublisher {
	return &StreamPublisher{rdb: rdb, stream: stream, maxLen: maxLen}
}

func (p *StreamPublisher) Publish(ctx context.Context, e domain.Event) error {
	payload, err := json.Marshal(e.Payload)
	if err != nil {
		return fmt.Errorf("encode payload of %s: %w", e.EventID, err)
	}
	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{
			"event_id":    e.EventID,
			"name":        e.Name,
			"actor":       e.Actor,
			"payload":     string(payload),
			"occurred_at": e.OccurredAt.UTC().Format(time.RFC3339Nano),
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}
	return p.rdb.XAdd(ctx, args).Err()
}
