// Package app wires configuration, adapters and transport into the runnable
// lookup server and the one-shot lookup command.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/lexlookup/internal/adapter/postgres/lookupcache"
	"github.com/heartmarshall/lexlookup/internal/config"
	"github.com/heartmarshall/lexlookup/internal/transport/rest"
)

// Run is the server entry point. It loads configuration, wires the lookup
// pipeline and serves HTTP until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("language", cfg.Lookup.Language),
		slog.String("api_url", cfg.Lookup.APIURL),
		slog.Bool("cache_enabled", cfg.Database.Enabled()),
	)

	d, err := buildDeps(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer d.Close()

	health := rest.NewHealthHandler(BuildVersion())
	if d.pool != nil {
		health.WithComponent("database", d.pool)
	}

	limiter := newLimiter(cfg.RateLimit)
	if limiter != nil {
		defer limiter.Stop()
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      newRouter(cfg, logger, rest.NewLookupHandler(d.lookup, logger), health, limiter),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if d.cache != nil && cfg.Lookup.CacheTTL > 0 {
		g.Go(func() error {
			purgeExpired(gctx, d.cache, cfg.Lookup.CacheTTL, logger)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("application stopped")
	return nil
}

// RunLookup performs a single lookup and writes the text layout to w.
func RunLookup(ctx context.Context, word string, w io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	d, err := buildDeps(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer d.Close()

	entry := d.lookup.Lookup(ctx, word)

	if _, err := fmt.Fprintln(w, entry.Text()); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// purgeExpired deletes stale cache rows once per ttl until ctx is done.
func purgeExpired(ctx context.Context, repo *lookupcache.Repo, ttl time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.DeleteOlderThan(ctx, ttl)
			if err != nil {
				if ctx.Err() == nil {
					logger.WarnContext(ctx, "lookup cache purge failed", slog.String("error", err.Error()))
				}
				continue
			}
			if n > 0 {
				logger.InfoContext(ctx, "lookup cache purged", slog.Int64("deleted", n))
			}
		}
	}
}
