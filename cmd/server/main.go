package main

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/molinju/send-price-bot/internal/bot"
	"github.com/molinju/send-price-bot/internal/config"
	"github.com/molinju/send-price-bot/internal/fetch"
	"github.com/molinju/send-price-bot/internal/httpx"
	"github.com/molinju/send-price-bot/internal/market/coinstats"
	"github.com/molinju/send-price-bot/internal/market/dexscreener"
)

// Server-wide inbound budget, separate from the per-chat cooldown.
// Commands are cheap thanks to the cache, so the budget is generous.
const (
	inboundRPS   = 50
	inboundBurst = 100
)

// commander is the slice of bot.Service the handlers need.
type commander interface {
	Precio(ctx context.Context, chatID string) (string, error)
	Cotiza(ctx context.Context, chatID string) (string, error)
}

type replyResponse struct {
	Reply string `json:"reply"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func main() {
	_ = godotenv.Load()

	logger := zap.Must(zap.NewProduction())
	if os.Getenv("APP_ENV") == "development" {
		logger = zap.Must(zap.NewDevelopment())
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	httpClient := httpx.New(cfg.RequestTimeout())

	fetcher := fetch.New(httpClient,
		fetch.WithMaxAttempts(cfg.MaxAttempts),
		fetch.WithLogger(logger),
	)
	pairs := dexscreener.NewClient(fetcher, dexscreener.WithBaseURL(cfg.DexScreenerBaseURL))
	coins := coinstats.NewClient(fetcher, coinstats.WithBaseURL(cfg.CoinStatsBaseURL))

	svc, err := bot.New(bot.Config{
		Chain:         cfg.DefaultDexChain,
		Contract:      cfg.DefaultDexContract,
		CacheTTL:      cfg.CacheTTL(),
		Cooldown:      cfg.CommandCooldown(),
		MaxRequesters: cfg.CooldownMaxRequesters,
		Logger:        logger,
	}, pairs, coins)
	if err != nil {
		logger.Fatal("bot service", zap.Error(err))
	}
	if cfg.DefaultDexChain == "" || cfg.DefaultDexContract == "" {
		logger.Warn("DEFAULT_DEX_CHAIN or DEFAULT_DEX_CONTRACT not set; the price command will only tell users to configure them")
	}

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           buildHandler(svc, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	httpClient.CloseIdle()
}

// buildHandler assembles the routes. /metrics stays outside the JSON
// and gzip wrapping; promhttp negotiates its own encoding.
func buildHandler(svc commander, logger *zap.Logger) http.Handler {
	limiter := rate.NewLimiter(inboundRPS, inboundBurst)

	api := http.NewServeMux()
	api.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	api.Handle("/api/precio", withThrottle(limiter, handleCommand(svc.Precio)))
	api.Handle("/api/cotiza", withThrottle(limiter, handleCommand(svc.Cotiza)))

	root := http.NewServeMux()
	root.Handle("/metrics", promhttp.Handler())
	root.Handle("/", withJSONHeaders(withGzip(recoverPanic(logger, limitBody(api)))))
	return root
}

func handleCommand(run func(ctx context.Context, chatID string) (string, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		reply, err := run(r.Context(), requesterID(r))
		if err != nil {
			writeCommandError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		_ = enc.Encode(replyResponse{Reply: reply})
	}
}

// requesterID identifies the caller for the cooldown guard: the chat
// query parameter when present, the client address otherwise.
func requesterID(r *http.Request) string {
	if chat := strings.TrimSpace(r.URL.Query().Get("chat")); chat != "" {
		return chat
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// writeCommandError maps the error taxonomy onto HTTP statuses:
// cooldown and upstream rate limits are 429 with a Retry-After hint,
// an empty candidate set is 404, missing instrument config is 500 and
// everything else is a 502.
func writeCommandError(w http.ResponseWriter, err error) {
	var (
		cd *bot.CooldownError
		rl *fetch.RateLimitError
	)
	status := http.StatusBadGateway
	switch {
	case errors.As(err, &cd):
		status = http.StatusTooManyRequests
		w.Header().Set("Retry-After", strconv.Itoa(ceilSeconds(cd.Wait)))
	case errors.As(err, &rl):
		status = http.StatusTooManyRequests
		if rl.RetryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(ceilSeconds(rl.RetryAfter)))
		}
	case errors.Is(err, bot.ErrNoPairs):
		status = http.StatusNotFound
	case errors.Is(err, bot.ErrNotConfigured):
		status = http.StatusInternalServerError
	}
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(errorResponse{Error: err.Error(), Message: bot.UserMessage(err)})
}

func ceilSeconds(d time.Duration) int {
	s := int(d / time.Second)
	if d%time.Second != 0 {
		s++
	}
	if s < 1 {
		s = 1
	}
	return s
}

// withThrottle rejects requests beyond the server-wide budget.
func withThrottle(lim *rate.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !lim.Allow() {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func withJSONHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		// Basic CORS for browser usage; adjust as needed.
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withGzip compresses response when client supports gzip.
func withGzip(next http.Handler) http.Handler {
	var gzPool = sync.Pool{New: func() any {
		// Prefer best speed to reduce CPU usage since payloads are JSON
		w, _ := gzip.NewWriterLevel(io.Discard, gzip.BestSpeed)
		return w
	}}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}
		gz := gzPool.Get().(*gzip.Writer)
		gz.Reset(w)
		defer func() {
			_ = gz.Close()
			gz.Reset(io.Discard)
			gzPool.Put(gz)
		}()
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Add("Vary", "Accept-Encoding")
		gw := gzipResponseWriter{ResponseWriter: w, Writer: gz}
		next.ServeHTTP(gw, r)
	})
}

type gzipResponseWriter struct {
	http.ResponseWriter
	Writer io.Writer
}

func (g gzipResponseWriter) Write(b []byte) (int, error) {
	return g.Writer.Write(b)
}

// limitBody caps request body size to avoid memory abuse.
func limitBody(next http.Handler) http.Handler {
	const maxBody = 1 << 20 // 1MB
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBody)
		}
		next.ServeHTTP(w, r)
	})
}

// recoverPanic protects handlers from panics.
func recoverPanic(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("handler panic",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
