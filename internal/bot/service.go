// Package bot implements the command boundary: per-chat cooldown,
// cached fetching and the user-facing replies.
package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/molinju/send-price-bot/internal/cooldown"
	"github.com/molinju/send-price-bot/internal/fetch"
	"github.com/molinju/send-price-bot/internal/market"
	"github.com/molinju/send-price-bot/internal/pricecache"
)

//go:generate mockgen -package=bot_test -destination=mock_quoters_test.go -source=service.go PairQuoter,CoinQuoter

// PairQuoter selects the best trading pair for an instrument.
type PairQuoter interface {
	BestPair(ctx context.Context, chain, contract string) (*market.PairInfo, error)
}

// CoinQuoter reports the latest flat coin price snapshot.
type CoinQuoter interface {
	Latest(ctx context.Context) (*market.CoinPrice, error)
}

// Config wires a Service.
type Config struct {
	// Chain and Contract identify the instrument behind the price
	// command. Either may be empty; the command then tells the user to
	// configure them.
	Chain    string
	Contract string

	// CacheTTL and CacheMaxEntries tune the quote cache.
	CacheTTL        time.Duration
	CacheMaxEntries int

	// Cooldown spaces commands per chat; MaxRequesters bounds the
	// tracked chats.
	Cooldown      time.Duration
	MaxRequesters int

	// Now reports the current time. Defaults to time.Now.
	Now func() time.Time
	// Logger defaults to a nop logger.
	Logger *zap.Logger
}

// Service runs bot commands through the cooldown guard and the quote
// cache, and renders replies.
type Service struct {
	chain    string
	contract string
	window   time.Duration

	pairs PairQuoter
	coins CoinQuoter

	pairCache *pricecache.Cache[*market.PairInfo]
	coinCache *pricecache.Cache[*market.CoinPrice]
	guard     *cooldown.Guard

	now    func() time.Time
	logger *zap.Logger
}

// New builds a Service from cfg and the two upstream quoters.
func New(cfg Config, pairs PairQuoter, coins CoinQuoter) (*Service, error) {
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = cooldown.DefaultWindow
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	guard, err := cooldown.New(cooldown.Config{
		MaxRequesters: cfg.MaxRequesters,
		Now:           cfg.Now,
		Logger:        cfg.Logger,
	})
	if err != nil {
		return nil, err
	}

	cacheCfg := pricecache.Config{
		TTL:        cfg.CacheTTL,
		MaxEntries: cfg.CacheMaxEntries,
		Now:        cfg.Now,
		Logger:     cfg.Logger,
	}

	return &Service{
		chain:     strings.TrimSpace(cfg.Chain),
		contract:  strings.TrimSpace(cfg.Contract),
		window:    cfg.Cooldown,
		pairs:     pairs,
		coins:     coins,
		pairCache: pricecache.New[*market.PairInfo](cacheCfg),
		coinCache: pricecache.New[*market.CoinPrice](cacheCfg),
		guard:     guard,
		now:       cfg.Now,
		logger:    cfg.Logger,
	}, nil
}

// Precio answers the price command for chatID: the deepest pair for the
// configured instrument, cached or freshly fetched.
func (s *Service) Precio(ctx context.Context, chatID string) (reply string, err error) {
	defer func() { s.observe("precio", err) }()

	if ok, wait := s.guard.Allow("precio:"+chatID, s.window); !ok {
		return "", &CooldownError{Wait: wait}
	}
	if s.chain == "" || s.contract == "" {
		return "", ErrNotConfigured
	}

	key := market.NewKey("dexscreener", s.chain, s.contract)
	info, err := s.pairCache.GetOrFetch(ctx, key, func(ctx context.Context) (*market.PairInfo, error) {
		return s.pairs.BestPair(ctx, s.chain, s.contract)
	})
	if err != nil {
		return "", err
	}
	if info == nil {
		return "", ErrNoPairs
	}

	return FormatPair(info, s.now()), nil
}

// Cotiza answers the market-overview command for chatID from the flat
// coin stats feed.
func (s *Service) Cotiza(ctx context.Context, chatID string) (reply string, err error) {
	defer func() { s.observe("cotiza", err) }()

	if ok, wait := s.guard.Allow("cotiza:"+chatID, s.window); !ok {
		return "", &CooldownError{Wait: wait}
	}

	key := market.NewKey("coinstats", "", "latest")
	price, err := s.coinCache.GetOrFetch(ctx, key, func(ctx context.Context) (*market.CoinPrice, error) {
		return s.coins.Latest(ctx)
	})
	if err != nil {
		return "", err
	}
	if price == nil {
		return "", ErrNoPairs
	}

	return FormatCoin(price), nil
}

const (
	outcomeOK            = "ok"
	outcomeCooldown      = "cooldown"
	outcomeNotConfigured = "not_configured"
	outcomeNoData        = "no_data"
	outcomeRateLimited   = "rate_limited"
	outcomeUpstreamError = "upstream_error"
)

func (s *Service) observe(command string, err error) {
	outcome := outcomeOf(err)
	commandsTotal.WithLabelValues(command, outcome).Inc()
	if outcome == outcomeUpstreamError {
		s.logger.Warn("command failed",
			zap.String("command", command),
			zap.Error(err))
	}
}

func outcomeOf(err error) string {
	var (
		cd *CooldownError
		rl *fetch.RateLimitError
	)
	switch {
	case err == nil:
		return outcomeOK
	case errors.As(err, &cd):
		return outcomeCooldown
	case errors.Is(err, ErrNotConfigured):
		return outcomeNotConfigured
	case errors.Is(err, ErrNoPairs):
		return outcomeNoData
	case errors.As(err, &rl):
		return outcomeRateLimited
	}
	return outcomeUpstreamError
}
