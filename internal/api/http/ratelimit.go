package http

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/spec-kit/nexa-sys/internal/config"
	"github.com/spec-kit/nexa-sys/internal/observability"
	apperrors "github.com/spec-kit/nexa-sys/pkg/util"
)

const (
	msgTooManyRequests = "Demasiadas solicitudes, por favor intente más tarde."
	msgTooManyLogins   = "Demasiados intentos de inicio de sesión, por favor intente más tarde."

	visitorIdle = 30 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewAPILimiter returns a per client address token bucket refilling APIMax
// tokens per window.
func NewAPILimiter(cfg config.RateLimitConfig) fiber.Handler {
	if cfg.APIMax <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	every := rate.Every(cfg.Window() / time.Duration(cfg.APIMax))

	var (
		mu       sync.Mutex
		visitors = make(map[string]*visitor)
		swept    = time.Now()
	)
	getVisitor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		now := time.Now()
		if now.Sub(swept) > visitorIdle {
			for key, v := range visitors {
				if now.Sub(v.lastSeen) > visitorIdle {
					delete(visitors, key)
				}
			}
			swept = now
		}
		v, ok := visitors[ip]
		if !ok {
			v = &visitor{limiter: rate.NewLimiter(every, cfg.APIMax)}
			visitors[ip] = v
		}
		v.lastSeen = now
		return v.limiter
	}

	return func(c *fiber.Ctx) error {
		if !getVisitor(c.IP()).Allow() {
			return apperrors.NewTooManyRequests(msgTooManyRequests)
		}
		return c.Next()
	}
}

// LoginLimiter blocks a client address after too many failed logins inside
// the window. Only failures count. Attempts are tracked in a Redis sorted set
// when a client is configured, otherwise in process memory. Redis errors let
// the request through.
type LoginLimiter struct {
	redis   *redis.Client
	max     int
	window  time.Duration
	metrics *observability.Metrics
	logger  *zap.Logger
	now     func() time.Time

	mu    sync.Mutex
	local map[string][]time.Time
}

// NewLoginLimiter constructs the limiter. A nil client keeps state in memory.
func NewLoginLimiter(client *redis.Client, cfg config.RateLimitConfig, metrics *observability.Metrics, logger *zap.Logger) *LoginLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoginLimiter{
		redis:   client,
		max:     cfg.LoginMax,
		window:  cfg.Window(),
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
		local:   make(map[string][]time.Time),
	}
}

// Handler wraps the login route.
func (l *LoginLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if l.max <= 0 {
			return c.Next()
		}
		key := c.IP()
		ctx := c.UserContext()

		failures, err := l.failures(ctx, key)
		if err != nil {
			l.logger.Warn("login limiter unavailable", zap.Error(err))
		} else if failures >= int64(l.max) {
			l.metrics.RecordLogin(observability.LoginLimited)
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(l.window.Seconds())))
			return apperrors.NewTooManyRequests(msgTooManyLogins)
		}

		err = c.Next()
		if failedLogin(c, err) {
			if recErr := l.recordFailure(ctx, key); recErr != nil {
				l.logger.Warn("login limiter record failed", zap.Error(recErr))
			}
		}
		return err
	}
}

func failedLogin(c *fiber.Ctx, err error) bool {
	if err != nil {
		return apperrors.ToDomainError(err).HTTPStatus == fiber.StatusUnauthorized
	}
	return c.Response().StatusCode() == fiber.StatusUnauthorized
}

func (l *LoginLimiter) redisKey(ip string) string {
	return fmt.Sprintf("nexa:login_failures:%s", ip)
}

func (l *LoginLimiter) failures(ctx context.Context, ip string) (int64, error) {
	windowStart := l.now().Add(-l.window)
	if l.redis == nil {
		l.mu.Lock()
		defer l.mu.Unlock()
		kept := l.local[ip][:0]
		for _, at := range l.local[ip] {
			if at.After(windowStart) {
				kept = append(kept, at)
			}
		}
		if len(kept) == 0 {
			delete(l.local, ip)
		} else {
			l.local[ip] = kept
		}
		return int64(len(kept)), nil
	}

	key := l.redisKey(ip)
	pipe := l.redis.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	count := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("count login failures: %w", err)
	}
	return count.Val(), nil
}

func (l *LoginLimiter) recordFailure(ctx context.Context, ip string) error {
	now := l.now()
	if l.redis == nil {
		l.mu.Lock()
		l.local[ip] = append(l.local[ip], now)
		l.mu.Unlock()
		return nil
	}

	key := l.redisKey(ip)
	pipe := l.redis.Pipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: now.UnixNano()})
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record login failure: %w", err)
	}
	return nil
}
