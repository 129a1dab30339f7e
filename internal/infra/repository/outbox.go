package repository

import (
	"context"
	"time"

	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/db"

	"github.com/google/uuid"
)

const (
	outboxStatusPending = "pending"

	insertOutboxEventSQL = `
		INSERT INTO outbox_events (shop_id, kind, topic, payload, run_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)`
)

// OutboxRepository writes events in the same transaction as the state change they
// describe. Delivery is left to a relay outside this service.
type OutboxRepository struct{}

func NewOutboxRepository() *OutboxRepository {
	return &OutboxRepository{}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, tx db.DBTX, shopID uuid.UUID, kind, topic string, payload []byte, runAt time.Time) error {
	if _, err := tx.Exec(ctx, insertOutboxEventSQL, shopID, kind, topic, payload, runAt, outboxStatusPending); err != nil {
		return infra.WrapRepoErr("failed to enqueue outbox event", err)
	}
	return nil
}
