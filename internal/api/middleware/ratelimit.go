package middleware

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vietanh2810/raffle-api/internal/api/handler/v1/response"
)

// Limiter is a fixed-window counter per key.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// LimitFunc returns the current number of requests allowed per window.
// Zero or less disables the limit.
type LimitFunc func() int

func StaticLimit(n int) LimitFunc {
	return func() int { return n }
}

type RedisLimiter struct {
	client *redis.Client
	prefix string
	limit  LimitFunc
	window time.Duration
	now    func() time.Time
}

func NewRedisLimiter(client *redis.Client, prefix string, limit LimitFunc, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	limit := l.limit()
	if limit <= 0 {
		return true, 0, nil
	}

	now := l.now()
	windowStart := now.Truncate(l.window)
	redisKey := l.prefix + ":" + key + ":" + strconv.FormatInt(windowStart.Unix(), 10)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, 0, fmt.Errorf("pipe.Exec -> %w", err)
	}

	if incr.Val() > int64(limit) {
		return false, windowStart.Add(l.window).Sub(now), nil
	}

	return true, 0, nil
}

type memoryWindow struct {
	start time.Time
	count int
}

// MemoryLimiter is used when no Redis is configured. Stale windows are
// dropped on access, so it needs no cleanup goroutine.
type MemoryLimiter struct {
	mu      sync.Mutex
	limit   LimitFunc
	window  time.Duration
	windows map[string]memoryWindow
	now     func() time.Time
}

func NewMemoryLimiter(limit LimitFunc, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		windows: make(map[string]memoryWindow),
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	limit := l.limit()
	if limit <= 0 {
		return true, 0, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	start := now.Truncate(l.window)

	for k, w := range l.windows {
		if w.start.Before(start) {
			delete(l.windows, k)
		}
	}

	w := l.windows[key]
	if !w.start.Equal(start) {
		w = memoryWindow{start: start}
	}
	w.count++
	l.windows[key] = w

	if w.count > limit {
		return false, start.Add(l.window).Sub(now), nil
	}

	return true, 0, nil
}

// RateLimit rejects a client IP with 429 once it exceeds the limiter's window.
// Limiter errors let the request through.
func RateLimit(limiter Limiter) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		allowed, retryAfter, err := limiter.Allow(ctx.Request.Context(), ctx.ClientIP())
		if err != nil {
			zap.L().Warn("rate limiter unavailable, allowing request", zap.Error(err))
			ctx.Next()
			return
		}

		if !allowed {
			seconds := int(retryAfter.Round(time.Second).Seconds())
			if seconds < 1 {
				seconds = 1
			}
			ctx.Header("Retry-After", strconv.Itoa(seconds))
			response.RenderErr(ctx, response.ErrTooManyRequests())
			return
		}

		ctx.Next()
	}
}
