package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// defaultMaxClients caps the number of per-IP buckets kept in memory.
const defaultMaxClients = 10_000

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter keeps one token bucket per client IP. When the table is full
// and nothing is idle, unknown clients share a single overflow bucket so that
// tracked clients never lose their state.
type ipRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	overflow *rate.Limiter
	rps      rate.Limit
	burst    int
	max      int
	// idle is how long a bucket takes to refill completely; past that,
	// dropping it is indistinguishable from keeping it.
	idle time.Duration
	now  func() time.Time
}

func newIPRateLimiter(rps float64, burst int) *ipRateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &ipRateLimiter{
		visitors: make(map[string]*visitor),
		overflow: rate.NewLimiter(rate.Limit(rps), burst),
		rps:      rate.Limit(rps),
		burst:    burst,
		max:      defaultMaxClients,
		idle:     time.Duration(float64(burst) / rps * float64(time.Second)),
		now:      time.Now,
	}
}

func (l *ipRateLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if v, ok := l.visitors[key]; ok {
		v.lastSeen = now
		return v.limiter
	}
	if len(l.visitors) >= l.max {
		l.evictIdle(now)
		if len(l.visitors) >= l.max {
			return l.overflow
		}
	}
	v := &visitor{limiter: rate.NewLimiter(l.rps, l.burst), lastSeen: now}
	l.visitors[key] = v
	return v.limiter
}

func (l *ipRateLimiter) evictIdle(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) >= l.idle {
			delete(l.visitors, key)
		}
	}
}

func (l *ipRateLimiter) Allow(key string) bool {
	return l.get(key).AllowN(l.now(), 1)
}

func (h *Handler) rateLimit(c *gin.Context) {
	ip := c.ClientIP()
	if !h.limiter.Allow(ip) {
		h.log.Infow("rate_limited", "client_ip", ip, "path", c.FullPath(), "request_id", requestID(c))
		c.Header("Retry-After", "1")
		abortWithDetail(c, http.StatusTooManyRequests, "too many requests")
		return
	}
	c.Next()
}
