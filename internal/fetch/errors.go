package fetch

import (
	"fmt"
	"time"
)

// StatusError reports a non-2xx response that is not worth retrying.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string { return fmt.Sprintf("http %d: %s", e.Code, e.Body) }

// RateLimitError reports an upstream 429. RetryAfter holds the delay the
// upstream asked for, or the computed backoff when the header is absent.
// Exhausted is set once the whole attempt budget was rate limited.
type RateLimitError struct {
	RetryAfter time.Duration
	Attempts   int
	Exhausted  bool
}

func (e *RateLimitError) Error() string {
	if e.Exhausted {
		return fmt.Sprintf("rate limited after %d attempts (retry in %s)", e.Attempts, e.RetryAfter)
	}
	return fmt.Sprintf("rate limited (retry in %s)", e.RetryAfter)
}
