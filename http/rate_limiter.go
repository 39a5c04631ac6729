package http

import (
	"sync"
	"time"
)

// idleWindows is how many full windows a client may stay silent before the
// limiter forgets it.
const idleWindows = 2

type clientWindow struct {
	start time.Time
	used  int
}

// RateLimiter admits at most limit requests per client in each window. A
// client's window opens with its first request and reopens with the first
// request after it has elapsed.
type RateLimiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	now      func() time.Time
	clients  map[string]*clientWindow
	done     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	rl := &RateLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		clients: make(map[string]*clientWindow),
		done:    make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

func (r *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(r.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep()
		case <-r.done:
			return
		}
	}
}

// sweep forgets clients whose last window closed idleWindows ago.
func (r *RateLimiter) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idleWindows * r.window)
	for client, w := range r.clients {
		if w.start.Before(cutoff) {
			delete(r.clients, client)
		}
	}
}

func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.done) })
}

func (r *RateLimiter) Allow(client string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	w, ok := r.clients[client]
	if !ok || now.Sub(w.start) >= r.window {
		w = &clientWindow{start: now}
		r.clients[client] = w
	}

	if w.used >= r.limit {
		return false
	}
	w.used++
	return true
}
