package partsite

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// SearchLimiter rate-limits search API requests per IP address with a
// sliding window.
type SearchLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	max    int
	window time.Duration
	stop   chan struct{}
	once   sync.Once
}

// NewSearchLimiter creates a SearchLimiter that allows max requests per
// window. Call Stop to end its cleanup goroutine.
func NewSearchLimiter(max int, window time.Duration) *SearchLimiter {
	l := &SearchLimiter{
		hits:   make(map[string][]time.Time),
		max:    max,
		window: window,
		stop:   make(chan struct{}),
	}
	go l.cleanup()
	return l
}

func (l *SearchLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-l.window)
			l.mu.Lock()
			for ip, hits := range l.hits {
				kept := prune(hits, cutoff)
				if len(kept) == 0 {
					delete(l.hits, ip)
				} else {
					l.hits[ip] = kept
				}
			}
			l.mu.Unlock()
		}
	}
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (l *SearchLimiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

// Allow records a request from ip and reports whether it is within the limit.
// Rejected requests are not recorded.
func (l *SearchLimiter) Allow(ip string) bool {
	cutoff := time.Now().Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	kept := prune(l.hits[ip], cutoff)
	if len(kept) >= l.max {
		l.hits[ip] = kept
		return false
	}
	l.hits[ip] = append(kept, time.Now())
	return true
}

// Middleware rejects requests over the limit with 429 and a Retry-After
// header.
func (l *SearchLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.Allow(c.RealIP()) {
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
				return c.JSON(http.StatusTooManyRequests, apiError{Error: "too many requests"})
			}
			return next(c)
		}
	}
}

func prune(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
