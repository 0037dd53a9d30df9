package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/molinju/send-price-bot/internal/httpx"
)

// DefaultMaxAttempts bounds how many times a GET is tried while the
// upstream keeps answering 429.
const DefaultMaxAttempts = 3

// Client wraps httpx.Client with 429-aware retries. Any response other
// than 2xx or 429 fails immediately, as do transport and decode errors.
type Client struct {
	http        *httpx.Client
	maxAttempts int
	jitter      func() float64
	sleep       func(ctx context.Context, d time.Duration) error
	logger      *zap.Logger
}

// Option is a configuration option for the retrying client.
type Option func(*Client)

// WithMaxAttempts overrides the attempt budget. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithJitter replaces the jitter source. Tests pass a fixed function.
func WithJitter(fn func() float64) Option {
	return func(c *Client) {
		c.jitter = fn
	}
}

// WithSleep replaces the pause between attempts. Tests pass a recorder.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) {
		c.sleep = fn
	}
}

// WithLogger sets the logger used for retry diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(hc *httpx.Client, options ...Option) *Client {
	c := &Client{
		http:        hc,
		maxAttempts: DefaultMaxAttempts,
		jitter:      rand.Float64,
		sleep:       sleepContext,
		logger:      zap.NewNop(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// GetJSON fetches rawURL and decodes the 2xx body into v. On 429 it
// waits per the numeric Retry-After header, or the exponential backoff
// when the header is absent, then tries again until the attempt budget
// runs out. The RateLimitError returned on exhaustion carries the delay
// hint from the final response.
func (c *Client) GetJSON(ctx context.Context, rawURL string, v any) error {
	host := hostOf(rawURL)
	for attempt := 0; ; attempt++ {
		start := time.Now()
		err := c.getOnce(ctx, rawURL, v)
		requestDuration.Observe(time.Since(start).Seconds())
		attemptsTotal.WithLabelValues(host).Inc()
		if err == nil {
			return nil
		}

		var rl *RateLimitError
		if !errors.As(err, &rl) {
			hardErrorsTotal.WithLabelValues(host).Inc()
			return err
		}
		rateLimitedTotal.WithLabelValues(host).Inc()

		delay := rl.RetryAfter
		if delay <= 0 {
			delay = Delay(attempt, c.jitter)
		}
		rl.RetryAfter = delay
		rl.Attempts = attempt + 1

		if attempt+1 >= c.maxAttempts {
			rl.Exhausted = true
			return rl
		}

		c.logger.Debug("rate limited, backing off",
			zap.String("url", rawURL),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
		)
		if err := c.sleep(ctx, delay); err != nil {
			return err
		}
	}
}

func (c *Client) getOnce(ctx context.Context, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	res, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusTooManyRequests:
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 2<<10))
		hint, _ := RetryAfterHint(res.Header)
		return &RateLimitError{RetryAfter: hint}

	case res.StatusCode < 200 || res.StatusCode >= 300:
		b, _ := io.ReadAll(io.LimitReader(res.Body, 2<<10))
		return &StatusError{Code: res.StatusCode, Body: string(b)}
	}

	dec := json.NewDecoder(res.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Host
}
