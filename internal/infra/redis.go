package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis connects the client that backs the stock-report cache. The
// backend runs fine without it: on error the caller keeps a nil client and
// the cache layer treats that as "disabled".
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	// Surface a bad URL or unreachable server at startup, not on the first
	// informe request.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return rdb, nil
}
