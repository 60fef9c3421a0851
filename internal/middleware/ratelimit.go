package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/nillow/booking-api/pkg/httputil"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps a token bucket per client IP. Idle buckets are dropped
// after staleAfter to bound memory.
type RateLimiter struct {
	sync.Mutex
	clients map[string]*clientLimiter
	rps     rate.Limit
	burst   int
}

const staleAfter = 10 * time.Minute

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientLimiter),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) cleanup() {
	for {
		time.Sleep(staleAfter)

		rl.Lock()
		now := time.Now()
		for ip, cl := range rl.clients {
			if now.Sub(cl.lastSeen) > staleAfter {
				delete(rl.clients, ip)
			}
		}
		rl.Unlock()
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.Lock()
	defer rl.Unlock()

	cl, ok := rl.clients[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.clients[ip] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter.Allow()
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			message := "rate limit exceeded"
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httputil.Response{
				Status:   "error",
				Message:  message,
				Response: &httputil.ErrorEnvelope{Message: message},
			})
			return
		}
		c.Next()
	}
}
