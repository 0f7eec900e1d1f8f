package rate

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LimiterMap provides per-IP rate limiting with TTL eviction of idle
// entries.
type LimiterMap struct {
	mu       sync.Mutex
	limiters map[string]*entry
	rpm      int
	burst    int
	ttl      time.Duration
	stopCh   chan struct{}
}

// NewLimiterMap creates a LimiterMap and starts its eviction goroutine.
func NewLimiterMap(rpm, burst int, ttl time.Duration) *LimiterMap {
	lm := &LimiterMap{
		limiters: make(map[string]*entry),
		rpm:      rpm,
		burst:    burst,
		ttl:      ttl,
		stopCh:   make(chan struct{}),
	}
	go lm.reap()
	return lm
}

func (l *LimiterMap) reap() {
	t := time.NewTicker(l.ttl)
	defer t.Stop()
	for {
		select {
		case <-l.stopCh:
			return
		case now := <-t.C:
			l.mu.Lock()
			for ip, e := range l.limiters {
				if now.Sub(e.lastSeen) > l.ttl {
					delete(l.limiters, ip)
				}
			}
			l.mu.Unlock()
		}
	}
}

// Stop stops the eviction goroutine.
func (l *LimiterMap) Stop() { close(l.stopCh) }

// Allow reports whether a request from the given IP should proceed.
func (l *LimiterMap) Allow(ip string) bool {
	l.mu.Lock()
	e, ok := l.limiters[ip]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.rpm)), l.burst)}
		l.limiters[ip] = e
	}
	e.lastSeen = time.Now()
	l.mu.Unlock()
	return e.limiter.Allow()
}

// IPFromRequest extracts the client IP, preferring the first
// X-Forwarded-For hop when present.
func IPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
