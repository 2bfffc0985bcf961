package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-candidate-feed/internal/delivery/http/response"
	"go-candidate-feed/internal/domain"
	"go-candidate-feed/pkg/logger"
	"go-candidate-feed/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// Counter counts hits on a key in fixed windows.
type Counter interface {
	Hit(ctx context.Context, key string, window time.Duration) (count int, resetAt time.Time, err error)
}

type RateLimitConfig struct {
	Limit     int
	Window    time.Duration
	KeyPrefix string
	KeyFunc   func(*gin.Context) string
	// Counter defaults to Redis when a client is configured. On Redis errors the middleware
	// falls back to an in-process counter unless FailClosed is set.
	Counter    Counter
	FailClosed bool
}

// DefaultRateLimitConfig limits every client IP across the whole API.
func DefaultRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:ip:",
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// FavoriteRateLimitConfig limits favorite mutations per signed-in user, falling back to the IP.
func FavoriteRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:fav:",
		KeyFunc: func(c *gin.Context) string {
			if userID := c.GetString(string(domain.KeyUserID)); userID != "" {
				return "user:" + userID
			}
			return "ip:" + c.ClientIP()
		},
	}
}

func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	primary := config.Counter
	if primary == nil {
		if client := redis.Client(); client != nil {
			primary = NewRedisCounter(client)
		}
	}
	fallback := NewMemoryCounter()
	if primary == nil {
		primary = fallback
	}

	return func(c *gin.Context) {
		key := config.KeyPrefix + config.KeyFunc(c)

		count, resetAt, err := primary.Hit(c.Request.Context(), key, config.Window)
		if err != nil {
			logger.Log.Warn("rate limit counter failed", "key", config.KeyPrefix, "error", err)
			if config.FailClosed {
				response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
				c.Abort()
				return
			}
			count, resetAt, _ = fallback.Hit(c.Request.Context(), key, config.Window)
		}

		remaining := config.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.Info("rate limit triggered",
				"client_ip", c.ClientIP(),
				"path", c.FullPath(),
				"request_id", c.GetString(RequestIDKey),
			)
			response.Error(c, http.StatusTooManyRequests, "Too many requests. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// KEYS[1] = counter key, ARGV[1] = window in seconds. Returns {count, ttl}.
var hitScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`)

// RedisCounter shares counts across API instances.
type RedisCounter struct {
	client *goredis.Client
}

func NewRedisCounter(client *goredis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

func (r *RedisCounter) Hit(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	seconds := int(window.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	result, err := hitScript.Run(ctx, r.client, []string{key}, seconds).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to count rate limit hit: %w", err)
	}
	if len(result) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected rate limit script result %v", result)
	}
	return int(result[0]), time.Now().Add(time.Duration(result[1]) * time.Second), nil
}

type memoryWindow struct {
	count   int
	resetAt time.Time
}

// MemoryCounter counts per process. Expired windows are swept on access.
type MemoryCounter struct {
	mu        sync.Mutex
	windows   map[string]*memoryWindow
	now       func() time.Time
	nextSweep time.Time
}

const memorySweepInterval = 5 * time.Minute

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{windows: make(map[string]*memoryWindow), now: time.Now}
}

func (m *MemoryCounter) Hit(_ context.Context, key string, window time.Duration) (int, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.After(m.nextSweep) {
		for k, w := range m.windows {
			if now.After(w.resetAt) {
				delete(m.windows, k)
			}
		}
		m.nextSweep = now.Add(memorySweepInterval)
	}

	w, ok := m.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &memoryWindow{resetAt: now.Add(window)}
		m.windows[key] = w
	}
	w.count++
	return w.count, w.resetAt, nil
}
