// Package event describes the notifications emitted by successful mutations.
// They are written to an outbox in the same transaction as the mutation and
// relayed later, giving at-least-once delivery.
package event

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"tdr-registry/pkg/id"
)

const (
	DrcCreated        = "drc.created"
	DrcUpdated        = "drc.updated"
	TransferCompleted = "transfer.completed"
	PrincipalSet      = "principal.set"
)

// IdentityEvent returns names like "officer.added" / "issuer.deleted".
func IdentityEvent(kind, verb string) string { return kind + "." + verb }

type Event struct {
	ID          uint64            `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	EventID     string            `gorm:"column:event_id;type:char(32);not null;uniqueIndex" json:"event_id"`
	Name        string            `gorm:"column:name;size:64;not null;index" json:"name"`
	Actor       string            `gorm:"column:actor;size:32" json:"actor,omitempty"`
	Payload     datatypes.JSONMap `gorm:"column:payload" json:"payload"`
	OccurredAt  time.Time         `gorm:"column:occurred_at;not null" json:"occurred_at"`
	PublishedAt *time.Time        `gorm:"column:published_at;index" json:"-"`
}

func (Event) TableName() string { return "outbox_events" }

// New builds an unpublished event. actor is the role that performed the mutation.
func New(name, actor string, payload map[string]any) *Event {
	return &Event{
		EventID:    id.NewID32(),
		Name:       name,
		Actor:      actor,
		Payload:    datatypes.JSONMap(payload),
		OccurredAt: time.Now().UTC(),
	}
}

type Outbox interface {
	Append(ctx context.Context, e *Event) error
	// Pending returns unpublished events oldest first.
	Pending(ctx context.Context, limit int) ([]Event, error)
	MarkPublished(ctx context.Context, ids []uint64, at time.Time) error
}

// Publisher delivers one event to the external audit/indexing sink.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}
