package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/eventhub/backend/pkg/response"
)

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	mu     sync.RWMutex
	limits map[string]*rate.Limiter
	r      rate.Limit
	b      int
	logger *zap.Logger
}

// NewIPRateLimiter allows r requests per second with bursts of b per IP. Idle buckets are
// dropped every sweep until ctx is cancelled.
func NewIPRateLimiter(ctx context.Context, r rate.Limit, b int, sweep time.Duration, logger *zap.Logger) *IPRateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &IPRateLimiter{limits: make(map[string]*rate.Limiter), r: r, b: b, logger: logger}
	if sweep > 0 {
		go l.cleanup(ctx, sweep)
	}
	return l
}

// Limiter returns the bucket for ip, creating it on first use.
func (l *IPRateLimiter) Limiter(ip string) *rate.Limiter {
	l.mu.RLock()
	lim, ok := l.limits[ip]
	l.mu.RUnlock()
	if ok {
		return lim
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if lim, ok = l.limits[ip]; !ok {
		lim = rate.NewLimiter(l.r, l.b)
		l.limits[ip] = lim
	}
	return lim
}

// A bucket that has refilled completely has been idle long enough to forget.
func (l *IPRateLimiter) cleanup(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.mu.Lock()
			removed := 0
			for ip, lim := range l.limits {
				if lim.TokensAt(now) >= float64(lim.Burst()) {
					delete(l.limits, ip)
					removed++
				}
			}
			active := len(l.limits)
			l.mu.Unlock()
			l.logger.Debug("rate limiter cleanup", zap.Int("removed", removed), zap.Int("active", active))
		}
	}
}

// RateLimit rejects requests over the per-IP budget with 429.
func RateLimit(l *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown_ip"
		}
		if !l.Limiter(ip).Allow() {
			response.TooManyRequests(c, "too many requests, slow down")
			c.Abort()
			return
		}
		c.Next()
	}
}
