package fetch

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Delay computes the pause before retrying attempt (zero-based):
// 2^attempt seconds plus up to half a second of jitter.
// jitter must return a value in [0, 1).
func Delay(attempt int, jitter func() float64) time.Duration {
	secs := math.Pow(2, float64(attempt)) + jitter()*0.5
	return time.Duration(secs * float64(time.Second))
}

// RetryAfterHint parses a numeric Retry-After header. HTTP-date forms
// are ignored; the APIs we talk to only send whole seconds.
func RetryAfterHint(h http.Header) (time.Duration, bool) {
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		return 0, false
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}
