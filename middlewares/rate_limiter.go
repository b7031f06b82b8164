package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/resteasy/utils"
	"golang.org/x/time/rate"
)

// RateLimiter is a sliding-window limit of requests per client IP. Clients
// with no request inside the window are dropped once per window.
type RateLimiter struct {
	rate      int
	interval  time.Duration
	ips       map[string][]time.Time
	lastSweep time.Time
	mu        sync.Mutex
}

func NewRateLimiter(rate int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		rate:     rate,
		interval: interval,
		ips:      make(map[string][]time.Time),
	}
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP(), time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, utils.JSONResponse{
				Status:  false,
				Message: "too many requests",
			})
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-rl.interval)
	if now.Sub(rl.lastSweep) >= rl.interval {
		for key, times := range rl.ips {
			if len(times) == 0 || !times[len(times)-1].After(cutoff) {
				delete(rl.ips, key)
			}
		}
		rl.lastSweep = now
	}

	valid := rl.ips[ip][:0]
	for _, t := range rl.ips[ip] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	if len(valid) >= rl.rate {
		rl.ips[ip] = valid
		return false
	}
	rl.ips[ip] = append(valid, now)
	return true
}

// loginIdle is how long an untouched bucket takes to refill completely, after
// which it is indistinguishable from a new one.
const loginIdle = time.Minute

type loginBucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// LoginLimiter keeps one token bucket per client IP for the credential
// endpoints: perMinute attempts per minute, with bursts of the same size.
// Full buckets are dropped once a minute.
type LoginLimiter struct {
	perMinute int
	mu        sync.Mutex
	limiters  map[string]*loginBucket
	lastSweep time.Time
}

func NewLoginLimiter(perMinute int) *LoginLimiter {
	return &LoginLimiter{
		perMinute: perMinute,
		limiters:  make(map[string]*loginBucket),
	}
}

func (l *LoginLimiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= loginIdle {
		for key, b := range l.limiters {
			if now.Sub(b.seen) >= loginIdle {
				delete(l.limiters, key)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.limiters[ip]
	if !ok {
		b = &loginBucket{lim: rate.NewLimiter(rate.Every(loginIdle/time.Duration(l.perMinute)), l.perMinute)}
		l.limiters[ip] = b
	}
	b.seen = now
	return b.lim.AllowN(now, 1)
}

func (l *LoginLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP(), time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, utils.JSONResponse{
				Status:  false,
				Message: "too many login attempts, try again later",
			})
			return
		}
		c.Next()
	}
}
