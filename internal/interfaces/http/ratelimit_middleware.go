package http

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/pkg/config"
)

// rateLimiter cuota de escrituras por usuario. El estado vive en memoria del
// proceso: con varias réplicas la cuota efectiva es por réplica.
type rateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	limit    rate.Limit
	burst    int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// staleAfter entradas sin uso por más de esto se purgan.
const staleAfter = 10 * time.Minute

// retryAfterSeconds segundos sugeridos de espera tras un 429, en el header
// Retry-After y en el campo retry_after del cuerpo.
const retryAfterSeconds = 60

func newRateLimiter(cfg config.RateLimitConfig) *rateLimiter {
	rl := &rateLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Limit(float64(cfg.WritesPerMinute) / 60.0),
		burst:    cfg.Burst,
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *rateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	e, ok := rl.limiters[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[key] = e
	}
	e.lastSeen = time.Now()
	return e.limiter.Allow()
}

func (rl *rateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		rl.mu.Lock()
		for key, e := range rl.limiters {
			if time.Since(e.lastSeen) > staleAfter {
				delete(rl.limiters, key)
			}
		}
		rl.mu.Unlock()
	}
}

// RateLimitMiddleware limita las peticiones de escritura por usuario
// autenticado (cae a la IP en rutas públicas). Las lecturas pasan sin cuota.
func RateLimitMiddleware(cfg config.RateLimitConfig) fiber.Handler {
	rl := newRateLimiter(cfg)
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}
		key := GetUserID(c)
		if key == "" {
			key = c.IP()
		}
		if !rl.allow(key) {
			c.Set("Retry-After", strconv.Itoa(retryAfterSeconds))
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.Envelope{
				Success: false,
				Error: &dto.ErrorBody{
					Code:       "RATE_LIMITED",
					Message:    "demasiadas peticiones, intenta de nuevo en un momento",
					RetryAfter: retryAfterSeconds,
				},
			})
		}
		return c.Next()
	}
}
