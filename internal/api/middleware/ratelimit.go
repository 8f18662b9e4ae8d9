package middleware

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/config"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per key in memory.
type RateLimiter struct {
	conf config.RateLimitConfig

	mu      sync.Mutex
	clients map[string]*clientLimiter
}

// NewRateLimiter starts a janitor that forgets idle keys until ctx is done.
func NewRateLimiter(ctx context.Context, conf config.RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		conf:    conf,
		clients: make(map[string]*clientLimiter),
	}

	interval := conf.IdleTTL / 2
	if interval <= 0 {
		interval = time.Minute
	}
	go rl.janitor(ctx, interval)

	return rl
}

func (rl *RateLimiter) janitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for key, c := range rl.clients {
				if now.Sub(c.lastSeen) > rl.conf.IdleTTL {
					delete(rl.clients, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if c, ok := rl.clients[key]; ok {
		c.lastSeen = time.Now()
		return c.limiter
	}

	l := rate.NewLimiter(rate.Limit(rl.conf.RPS), rl.conf.Burst)
	rl.clients[key] = &clientLimiter{limiter: l, lastSeen: time.Now()}

	return l
}

// PerClientIP limits every client address separately.
func (rl *RateLimiter) PerClientIP() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		l := rl.limiter(ctx.ClientIP())

		r := l.Reserve()
		if !r.OK() {
			ctx.Header("Retry-After", "1")
			response.RenderErr(ctx, response.ErrTooManyRequests())
			return
		}
		if delay := r.Delay(); delay > 0 {
			r.Cancel()
			ctx.Header("Retry-After", strconv.Itoa(int(delay.Seconds())+1))
			response.RenderErr(ctx, response.ErrTooManyRequests())
			return
		}

		ctx.Next()
	}
}
