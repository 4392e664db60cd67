package middleware

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// FailPolicy decides what happens to a request when Redis cannot be asked.
type FailPolicy int

const (
	// FailOpen lets the request through.
	FailOpen FailPolicy = iota
	// FailClosed answers 503.
	FailClosed
)

// ErrNoLimiter is returned by Allow when no Redis client is configured.
var ErrNoLimiter = errors.New("rate limiter has no redis client")

// Limit is a fixed-window budget for one kind of dashboard action.
type Limit struct {
	Name   string
	Max    int
	Window time.Duration
}

// Decision is the outcome of counting one request against a Limit.
type Decision struct {
	Allowed   bool
	Remaining int
	// ResetIn is how long until the window restarts.
	ResetIn time.Duration
}

// Allow counts one request for key against l. The counter and its expiry
// are set in one transaction so a crash between the two cannot leave a
// counter without a TTL.
func Allow(ctx context.Context, rdb *redis.Client, l Limit, key string) (Decision, error) {
	if rdb == nil {
		return Decision{}, ErrNoLimiter
	}

	redisKey := "rl:" + l.Name + ":" + key
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, redisKey)
		p.ExpireNX(ctx, redisKey, l.Window)
		ttl = p.PTTL(ctx, redisKey)
		return nil
	})
	if err != nil {
		return Decision{}, err
	}

	count := int(incr.Val())
	reset := ttl.Val()
	if reset < 0 {
		reset = l.Window
	}
	return Decision{
		Allowed:   count <= l.Max,
		Remaining: max(l.Max-count, 0),
		ResetIn:   reset,
	}, nil
}

// limitsEnforced reports whether APP_ENV asks for rate limiting. Local
// development and tests run unlimited.
func limitsEnforced() bool {
	switch os.Getenv("APP_ENV") {
	case "", "development", "test":
		return false
	}
	return true
}

// rateLimitKey identifies the caller: the dashboard session when there is
// one, else the remote IP.
func rateLimitKey(c *fiber.Ctx) string {
	if sid := SessionID(c); sid != "" {
		return "session:" + sid
	}
	return "ip:" + c.IP()
}

// RateLimit enforces l per caller and lets requests through when Redis is
// unavailable.
func RateLimit(rdb *redis.Client, l Limit) fiber.Handler {
	return RateLimitWithPolicy(rdb, l, FailOpen)
}

// RateLimitWithPolicy enforces l per caller. policy applies when Redis
// cannot be reached.
func RateLimitWithPolicy(rdb *redis.Client, l Limit, policy FailPolicy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !limitsEnforced() {
			return c.Next()
		}

		ctx := c.UserContext()
		d, err := Allow(ctx, rdb, l, rateLimitKey(c))
		if err != nil {
			if policy == FailClosed {
				Logger.WarnContext(ctx, "rate limit fail-closed",
					"limit", l.Name, "path", c.Path(), "error", err.Error())
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"error": "rate limit unavailable",
				})
			}
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(l.Max))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		if !d.Allowed {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(d.ResetIn.Round(time.Second).Seconds())))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded",
				"limit": l.Name,
			})
		}
		return c.Next()
	}
}
