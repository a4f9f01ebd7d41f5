package quota

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"carf-backend/logger"
	"carf-backend/metrics"
)

// Flows that consume a model call.
const (
	FlowCourseSuggestion = "course_suggestion"
	FlowChatMessage      = "chat_message"
)

const idleTTL = 10 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter is a token bucket per client IP and flow. A non-positive rate
// disables it.
type Limiter struct {
	rps   rate.Limit
	burst int
	log   *logger.Logger
	now   func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
	swept   time.Time
}

func NewLimiter(rps float64, burst int, log *logger.Logger) *Limiter {
	if burst <= 0 {
		burst = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Limiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		log:     log,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

func (l *Limiter) Enabled() bool { return l != nil && l.rps > 0 }

// Allow consumes one token for client in flow.
func (l *Limiter) Allow(flow, client string) bool {
	if !l.Enabled() {
		return true
	}
	now := l.now()
	key := flow + "|" + client

	l.mu.Lock()
	defer l.mu.Unlock()
	if now.Sub(l.swept) > idleTTL {
		for k, b := range l.buckets {
			if now.Sub(b.lastSeen) > idleTTL {
				delete(l.buckets, k)
			}
		}
		l.swept = now
	}
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// Middleware answers 429 once the caller exhausts its bucket for flow.
func (l *Limiter) Middleware(flow string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.Allow(flow, c.ClientIP()) {
			c.Next()
			return
		}
		metrics.ObserveRateLimited(flow)
		l.log.Warn("rate limited", "flow", flow, "client_ip", c.ClientIP())
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"detail": "Muitas requisições. Tente novamente em instantes.",
			"code":   "rate_limited",
		})
	}
}
