package treasury

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sgiordano/ventapos-backend/pkg/enums"
	"github.com/sgiordano/ventapos-backend/pkg/logger"
	redispkg "github.com/sgiordano/ventapos-backend/pkg/redis"
)

// MappingCache keeps payment-method → cash-account routes in redis so the
// hot posting path doesn't hit the mappings table on every card sale.
// Cache failures degrade to the DB lookup, never to a posting error. A nil
// cache is valid and always misses.
type MappingCache struct {
	rdb  *redispkg.Client
	ttl  time.Duration
	logg *logger.Logger
}

// NewMappingCache returns a MappingCache over the given redis client.
func NewMappingCache(rdb *redispkg.Client, ttl time.Duration, logg *logger.Logger) *MappingCache {
	return &MappingCache{rdb: rdb, ttl: ttl, logg: logg}
}

// Get returns the cached cash account for a (tenant, method) pair.
func (c *MappingCache) Get(ctx context.Context, tenantID uuid.UUID, method enums.PaymentMethod) (uuid.UUID, bool) {
	if c == nil || c.rdb == nil {
		return uuid.Nil, false
	}
	raw, err := c.rdb.Get(ctx, c.rdb.MappingKey(tenantID.String(), method.String()))
	if err != nil {
		if c.logg != nil && err != redispkg.Nil {
			c.logg.Warn(ctx, "treasury mapping cache read failed: "+err.Error())
		}
		return uuid.Nil, false
	}
	accountID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return accountID, true
}

// Put stores a resolved mapping.
func (c *MappingCache) Put(ctx context.Context, tenantID uuid.UUID, method enums.PaymentMethod, accountID uuid.UUID) {
	if c == nil || c.rdb == nil {
		return
	}
	err := c.rdb.Set(ctx, c.rdb.MappingKey(tenantID.String(), method.String()), accountID.String(), c.ttl)
	if err != nil && c.logg != nil {
		c.logg.Warn(ctx, "treasury mapping cache write failed: "+err.Error())
	}
}

// Invalidate drops a cached mapping, used when mappings change.
func (c *MappingCache) Invalidate(ctx context.Context, tenantID uuid.UUID, method enums.PaymentMethod) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, c.rdb.MappingKey(tenantID.String(), method.String()))
}
