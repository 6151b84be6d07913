package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/lexlookup/internal/adapter/postgres"
	"github.com/heartmarshall/lexlookup/internal/adapter/postgres/lookupcache"
	"github.com/heartmarshall/lexlookup/internal/adapter/provider/wiktionary"
	"github.com/heartmarshall/lexlookup/internal/config"
	"github.com/heartmarshall/lexlookup/internal/lexicon"
	"github.com/heartmarshall/lexlookup/internal/service/lookup"
	"github.com/heartmarshall/lexlookup/migrations"
)

// deps holds the wired lookup pipeline and the resources it owns.
type deps struct {
	lookup *lookup.Service
	pool   *pgxpool.Pool     // nil when the cache is disabled
	cache  *lookupcache.Repo // nil when the cache is disabled
}

func (d *deps) Close() {
	if d.pool != nil {
		d.pool.Close()
	}
}

// buildDeps connects the optional cache database and assembles the lookup service.
func buildDeps(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*deps, error) {
	lang, err := lexicon.LanguageByName(cfg.Lookup.Language)
	if err != nil {
		return nil, err
	}

	d := &deps{}

	var cache lookup.Cache
	if cfg.Database.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
		d.pool = pool

		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, pool, migrations.FS, logger); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}

		d.cache = lookupcache.New(pool)
		cache = d.cache
	}

	source := wiktionary.NewProvider(logger,
		wiktionary.WithBaseURL(cfg.Lookup.APIURL),
		wiktionary.WithTimeout(cfg.Lookup.Timeout),
		wiktionary.WithUserAgent(cfg.Lookup.UserAgent),
	)

	d.lookup = lookup.NewService(logger, source, cache, lang, cfg.Lookup.CacheTTL)

	return d, nil
}
