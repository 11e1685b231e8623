package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/dto"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	stockCacheTTL    = 60 * time.Second
	stockCachePrefix = "informe:stock:"
	stockCacheIndex  = "informe:stock:keys"
)

// StockCache is a best-effort Redis cache for the consolidated stock report.
// Every entrada/salida write invalidates it wholesale, so repeated identical
// reads between writes return identical rows. A nil receiver or nil client is
// a no-op, which keeps unit tests free of Redis.
type StockCache struct {
	rdb *redis.Client
}

func NewStockCache(rdb *redis.Client) *StockCache { return &StockCache{rdb: rdb} }

func cacheKey(filter dto.ProductoFilter) string {
	return fmt.Sprintf("%s%s|%s|%s|%t",
		stockCachePrefix, filter.Nombre, filter.Categoria, filter.Tipo, filter.BajoMinimo)
}

func (c *StockCache) Get(ctx context.Context, filter dto.ProductoFilter) ([]dto.StockReportRow, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, cacheKey(filter)).Bytes()
	if err != nil {
		return nil, false
	}
	var rows []dto.StockReportRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, false
	}
	return rows, true
}

func (c *StockCache) Set(ctx context.Context, filter dto.ProductoFilter, rows []dto.StockReportRow) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(rows)
	if err != nil {
		return
	}
	key := cacheKey(filter)
	pipe := c.rdb.Pipeline()
	pipe.Set(ctx, key, raw, stockCacheTTL)
	// Track live keys so Invalidate can drop them without SCAN
	pipe.SAdd(ctx, stockCacheIndex, key)
	pipe.Expire(ctx, stockCacheIndex, stockCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Debug().Err(err).Msg("stock cache: set failed")
	}
}

// Invalidate drops every cached report variant. Best effort: a failed
// invalidation only shortens to the TTL, it never serves wrong data forever.
func (c *StockCache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	keys, err := c.rdb.SMembers(ctx, stockCacheIndex).Result()
	if err != nil {
		return
	}
	if len(keys) > 0 {
		keys = append(keys, stockCacheIndex)
		if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
			log.Debug().Err(err).Msg("stock cache: invalidate failed")
		}
	}
}
