package app

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/lexlookup/internal/config"
	"github.com/heartmarshall/lexlookup/internal/transport/middleware"
	"github.com/heartmarshall/lexlookup/internal/transport/rest"
)

// newLimiter returns the per-IP limiter for /lookup, or nil when limiting is
// off. Callers own the limiter and must Stop it.
func newLimiter(cfg config.RateLimitConfig) *middleware.RateLimiter {
	if cfg.PerMinute <= 0 {
		return nil
	}
	return middleware.NewRateLimiter(cfg.CleanupInterval)
}

// newRouter mounts the lookup and probe endpoints behind the middleware chain.
// limiter may be nil, which disables rate limiting.
func newRouter(
	cfg *config.Config,
	logger *slog.Logger,
	lookupH *rest.LookupHandler,
	healthH *rest.HealthHandler,
	limiter *middleware.RateLimiter,
) http.Handler {
	var limit middleware.Middleware
	if limiter != nil {
		limit = limiter.Limit(cfg.RateLimit.PerMinute)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /lookup", middleware.Chain(limit)(http.HandlerFunc(lookupH.Lookup)))
	mux.HandleFunc("GET /live", healthH.Live)
	mux.HandleFunc("GET /ready", healthH.Ready)
	mux.HandleFunc("GET /health", healthH.Health)

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	)(mux)
}
