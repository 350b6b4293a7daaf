// pkg/middleware/ratelimit.go
package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimit caps requests per client IP per minute. With a Redis client the
// counter is shared across instances; without one a per-process window map
// is used. A Redis failure falls open rather than rejecting traffic.
func RateLimit(perMinute int, rdb *redis.Client, log *zap.SugaredLogger) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	local := &localWindows{counts: map[string]int{}}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			window := time.Now().UTC().Format("200601021504")
			var count int
			if rdb != nil {
				key := "ratelimit:" + ip + ":" + window
				n, err := rdb.Incr(r.Context(), key).Result()
				if err != nil {
					log.Warnw("rate limit counter", "err", err)
					next.ServeHTTP(w, r)
					return
				}
				if n == 1 {
					rdb.Expire(r.Context(), key, 2*time.Minute)
				}
				count = int(n)
			} else {
				count = local.incr(ip + ":" + window)
			}
			if count > perMinute {
				w.Header().Set("Retry-After", "60")
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type localWindows struct {
	mu     sync.Mutex
	window string
	counts map[string]int
}

func (l *localWindows) incr(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	// drop stale windows wholesale once a new minute starts
	w := key[len(key)-12:]
	if w != l.window {
		l.window = w
		l.counts = map[string]int{}
	}
	l.counts[key]++
	return l.counts[key]
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
