package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

// RateLimiter ограничивает частоту запросов с одного адреса.
// Неактивные адреса вычищаются фоновой горутиной; Stop её останавливает.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterState
	rate     rate.Limit
	burst    int
	ttl      time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

type limiterState struct {
	limiter  *rate.Limiter
	lastUsed time.Time
}

// NewRateLimiter: rps запросов в секунду, burst допустимый всплеск.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	rl := &RateLimiter{
		limiters: make(map[string]*limiterState),
		rate:     rate.Limit(rps),
		burst:    burst,
		ttl:      limiterIdleTTL,
		now:      time.Now,
		ticker:   time.NewTicker(limiterIdleTTL),
		done:     make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Allow сообщает, можно ли пропустить ещё один запрос от key.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	st, ok := rl.limiters[key]
	if !ok {
		st = &limiterState{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = st
	}
	st.lastUsed = now
	return st.limiter.AllowN(now, 1)
}

// cleanup удаляет лимитеры адресов, не обращавшихся дольше ttl.
func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for k, st := range rl.limiters {
		if now.Sub(st.lastUsed) > rl.ttl {
			delete(rl.limiters, k)
		}
	}
}

func (rl *RateLimiter) cleanupLoop() {
	for {
		select {
		case <-rl.ticker.C:
			rl.cleanup()
		case <-rl.done:
			return
		}
	}
}

// Stop останавливает фоновую очистку. Повторный вызов безопасен.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		rl.ticker.Stop()
		close(rl.done)
	})
}

// Handler отвечает 429, когда лимит для адреса клиента исчерпан.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(clientIP(r)) {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
