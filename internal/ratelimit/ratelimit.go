// Package ratelimit provides per-client sliding-window rate limiting behind
// a pluggable storage port.
package ratelimit

import (
	"context"
	"log"
	"time"
)

// Defaults applied when a Config field is zero.
const (
	DefaultLimit  = 60
	DefaultWindow = time.Minute
)

// Store is the storage port for hit tracking. Implementations must count
// only hits inside the sliding window ending at the recorded instant.
type Store interface {
	// Record registers one hit for a client and returns how many hits,
	// including this one, fall inside the window ending at the hit.
	Record(ctx context.Context, clientID string, at time.Time, window time.Duration) (int, error)
	// Prune drops hits older than cutoff across all clients.
	Prune(ctx context.Context, cutoff time.Time) error
}

// Info describes one rate-limit decision.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Config holds limiter settings.
type Config struct {
	Enabled bool
	// Limit is the maximum hits per client per Window.
	Limit  int
	Window time.Duration
	// Whitelist clients bypass limiting entirely.
	Whitelist map[string]bool
}

// Limiter enforces a sliding-window limit per client id. The window slides
// continuously: a request is allowed when fewer than Limit requests landed in
// the Window preceding it.
type Limiter struct {
	store  Store
	config Config
	now    func() time.Time
}

// NewLimiter creates a limiter over the given store.
func NewLimiter(store Store, config Config) *Limiter {
	if config.Limit <= 0 {
		config.Limit = DefaultLimit
	}
	if config.Window <= 0 {
		config.Window = DefaultWindow
	}

	return &Limiter{
		store:  store,
		config: config,
		now:    time.Now,
	}
}

// Allow records one hit for the client and decides whether it is within the
// limit. A store failure allows the request: losing a few counts is better
// than refusing service while the store is down.
func (l *Limiter) Allow(ctx context.Context, clientID string) Info {
	if !l.config.Enabled {
		return Info{Allowed: true}
	}
	if l.config.Whitelist[clientID] {
		return Info{Allowed: true}
	}

	count, err := l.store.Record(ctx, clientID, l.now(), l.config.Window)
	if err != nil {
		log.Printf("ratelimit: store failure for client %s, allowing request: %v", clientID, err)
		return Info{Allowed: true, Limit: l.config.Limit}
	}

	remaining := l.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}

	info := Info{
		Allowed:   count <= l.config.Limit,
		Limit:     l.config.Limit,
		Remaining: remaining,
	}
	if !info.Allowed {
		info.RetryAfter = l.config.Window
	}
	return info
}

// StartPruning periodically asks the store to drop hits that fell out of the
// window, until ctx is cancelled.
func (l *Limiter) StartPruning(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = l.config.Window
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cutoff := l.now().Add(-l.config.Window)
				if err := l.store.Prune(ctx, cutoff); err != nil {
					log.Printf("ratelimit: prune failed: %v", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}
