// Package cache serves catalog lookups through Redis. Redis failures degrade to
// database reads; they never fail a request.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "salon:catalog:"

type CatalogSource interface {
	ServiceByID(ctx context.Context, tx db.DBTX, shopID, id uuid.UUID) (*catalog.Service, error)
	ProductByID(ctx context.Context, tx db.DBTX, shopID, id uuid.UUID) (*catalog.Product, error)
}

type CatalogReads struct {
	rdb    redis.UniversalClient
	source CatalogSource
	db     db.DBTX
	ttl    time.Duration
}

// NewCatalogReads returns a read-through cache. A nil rdb disables caching.
func NewCatalogReads(rdb redis.UniversalClient, source CatalogSource, db db.DBTX, ttl time.Duration) *CatalogReads {
	return &CatalogReads{rdb: rdb, source: source, db: db, ttl: ttl}
}

var _ shared.CatalogReads = (*CatalogReads)(nil)

func (c *CatalogReads) ServiceSnapshot(ctx context.Context, shopID, id uuid.UUID) (*shared.ServiceSnapshot, error) {
	key := serviceKey(shopID, id)
	var snap shared.ServiceSnapshot
	if c.get(ctx, key, &snap) {
		return &snap, nil
	}

	svc, err := c.source.ServiceByID(ctx, c.db, shopID, id)
	if err != nil {
		return nil, err
	}
	out := shared.ServiceSnapshotOf(svc)
	c.set(ctx, key, out)
	return out, nil
}

func (c *CatalogReads) ProductSnapshot(ctx context.Context, shopID, id uuid.UUID) (*shared.ProductSnapshot, error) {
	key := productKey(shopID, id)
	var snap shared.ProductSnapshot
	if c.get(ctx, key, &snap) {
		return &snap, nil
	}

	p, err := c.source.ProductByID(ctx, c.db, shopID, id)
	if err != nil {
		return nil, err
	}
	out := shared.ProductSnapshotOf(p)
	c.set(ctx, key, out)
	return out, nil
}

// InvalidateProduct drops the cached product so the next read sees the new stock.
func (c *CatalogReads) InvalidateProduct(ctx context.Context, shopID, id uuid.UUID) error {
	if c.rdb == nil {
		return nil
	}
	if err := c.rdb.Del(ctx, productKey(shopID, id)).Err(); err != nil {
		return errs.Wrap(err, "invalidate product cache")
	}
	return nil
}

func (c *CatalogReads) get(ctx context.Context, key string, dst any) bool {
	if c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errs.Is(err, redis.Nil) {
			slog.WarnContext(ctx, "catalog cache read failed", "key", key, "error", err.Error())
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		slog.WarnContext(ctx, "discarding corrupt catalog cache entry", "key", key, "error", err.Error())
		return false
	}
	return true
}

func (c *CatalogReads) set(ctx context.Context, key string, v any) {
	if c.rdb == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		slog.WarnContext(ctx, "catalog cache write failed", "key", key, "error", err.Error())
	}
}

func serviceKey(shopID, id uuid.UUID) string {
	return keyPrefix + shopID.String() + ":service:" + id.String()
}

func productKey(shopID, id uuid.UUID) string {
	return keyPrefix + shopID.String() + ":product:" + id.String()
}
