// Package cache owns the Redis connection and its key layout.
package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"matchboard/internal/middleware"
	"matchboard/internal/observability"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// errorCounter feeds failed commands into RedisErrorRate. A missing key
// (redis.Nil) is not a failure.
type errorCounter struct{}

func (errorCounter) count(op string, err error) {
	if err != nil && !errors.Is(err, redis.Nil) {
		observability.RedisErrorRate.WithLabelValues(op).Inc()
	}
}

func (errorCounter) DialHook(next redis.DialHook) redis.DialHook { return next }

func (h errorCounter) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		h.count(cmd.Name(), err)
		return err
	}
}

func (h errorCounter) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		h.count("pipeline", err)
		return err
	}
}

// NewClient builds an unconnected client. addr is either host:port or a
// redis:// URL.
func NewClient(addr string) (*redis.Client, error) {
	opts := &redis.Options{Addr: addr}
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, err
		}
		opts = parsed
	}
	rdb := redis.NewClient(opts)
	rdb.AddHook(errorCounter{})
	return rdb, nil
}

// Connect returns a client that answered PING, or nil. Redis is optional:
// an empty, malformed or unreachable addr is logged and the service runs
// without it.
func Connect(ctx context.Context, addr string) *redis.Client {
	if strings.TrimSpace(addr) == "" {
		middleware.Logger.Info("Redis disabled, REDIS_URL is empty")
		return nil
	}

	rdb, err := NewClient(addr)
	if err != nil {
		middleware.Logger.Warn("Invalid REDIS_URL, continuing without Redis", "error", err.Error())
		return nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		middleware.Logger.Warn("Redis unreachable, continuing without Redis", "error", err.Error())
		_ = rdb.Close()
		return nil
	}

	middleware.Logger.Info("Redis connected")
	return rdb
}
