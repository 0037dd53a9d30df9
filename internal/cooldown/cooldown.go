// Package cooldown spaces out repeat commands from a single requester,
// independent of whether the answer would come from cache or upstream.
package cooldown

import (
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

const (
	// DefaultWindow is the minimum spacing between allowed commands
	// from one requester.
	DefaultWindow = 30 * time.Second
	// DefaultMaxRequesters bounds the requester table.
	DefaultMaxRequesters = 10_000
)

// Config controls guard behavior. The zero value gets
// DefaultMaxRequesters, the wall clock and a nop logger.
type Config struct {
	// MaxRequesters caps how many requesters are tracked at once.
	MaxRequesters int
	// Now reports the current time. Defaults to time.Now.
	Now func() time.Time
	// Logger defaults to a nop logger.
	Logger *zap.Logger
}

// Guard remembers when each requester last ran a guarded command and
// rejects repeats that arrive before the window has elapsed. The table
// is a bounded LRU, so a requester idle long enough to be evicted
// simply starts fresh.
type Guard struct {
	now    func() time.Time
	logger *zap.Logger

	mu    sync.Mutex
	slots *lru.Cache[string, time.Time]
}

// New builds a Guard from cfg, filling unset fields with defaults.
func New(cfg Config) (*Guard, error) {
	if cfg.MaxRequesters <= 0 {
		cfg.MaxRequesters = DefaultMaxRequesters
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	slots, err := lru.New[string, time.Time](cfg.MaxRequesters)
	if err != nil {
		return nil, fmt.Errorf("creating requester table: %w", err)
	}

	return &Guard{
		now:    cfg.Now,
		logger: cfg.Logger,
		slots:  slots,
	}, nil
}

// Allow reports whether requester may run a guarded command now. While
// the window opened by the previous allowed call is still closing it
// returns false and the remaining wait; a call at or past the boundary
// is allowed and rearms the window. Rejected calls do not extend it.
func (g *Guard) Allow(requester string, window time.Duration) (bool, time.Duration) {
	now := g.now()

	// The LRU locks internally, but the lookup and the rearm have to
	// be atomic per requester or two near-simultaneous commands both
	// pass the check.
	g.mu.Lock()
	defer g.mu.Unlock()

	if last, ok := g.slots.Get(requester); ok && window > 0 {
		if wait := window - now.Sub(last); wait > 0 {
			decisionsTotal.WithLabelValues("rejected").Inc()
			g.logger.Debug("cooldown active",
				zap.String("requester", requester),
				zap.Duration("wait", wait))
			return false, wait
		}
	}

	g.slots.Add(requester, now)
	decisionsTotal.WithLabelValues("allowed").Inc()
	return true, 0
}
