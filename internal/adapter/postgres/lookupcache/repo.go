// Package lookupcache implements the lookup cache repository using PostgreSQL.
// Entries are keyed by the normalized headword and expire by fetched_at age.
package lookupcache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/lexlookup/internal/adapter/postgres"
	"github.com/heartmarshall/lexlookup/internal/domain"
)

const tableName = "lookup_entries"

var columns = []string{
	"headword_key",
	"headword",
	"part_of_speech",
	"definition",
	"synonyms",
	"example1",
	"example2",
	"fetched_at",
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides lookup cache persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// New creates a new lookup cache repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool, now: time.Now}
}

// Get returns the cached entry for key if it was fetched within maxAge.
// Returns domain.ErrNotFound if the key is absent or the entry is older.
func (r *Repo) Get(ctx context.Context, key string, maxAge time.Duration) (*domain.CachedEntry, error) {
	query, args, err := psql.
		Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"headword_key": key}).
		Where(squirrel.GtOrEq{"fetched_at": r.now().Add(-maxAge)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var c domain.CachedEntry
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&c.Key,
		&c.Entry.Headword,
		&c.Entry.PartOfSpeech,
		&c.Entry.Definition,
		&c.Entry.Synonyms,
		&c.Entry.Example1,
		&c.Entry.Example2,
		&c.FetchedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "lookup entry", key)
	}

	return &c, nil
}

// Put inserts or replaces the entry stored under entry.Key.
// A zero FetchedAt is stamped with the current time.
func (r *Repo) Put(ctx context.Context, entry domain.CachedEntry) error {
	if strings.TrimSpace(entry.Key) == "" {
		return fmt.Errorf("lookup entry: key: %w", domain.ErrValidation)
	}

	fetchedAt := entry.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = r.now()
	}
	fetchedAt = fetchedAt.UTC().Truncate(time.Microsecond)

	e := entry.Entry
	query, args, err := psql.
		Insert(tableName).
		Columns(columns...).
		Values(entry.Key, e.Headword, e.PartOfSpeech, e.Definition, e.Synonyms, e.Example1, e.Example2, fetchedAt).
		Suffix(`ON CONFLICT (headword_key) DO UPDATE SET
			headword       = EXCLUDED.headword,
			part_of_speech = EXCLUDED.part_of_speech,
			definition     = EXCLUDED.definition,
			synonyms       = EXCLUDED.synonyms,
			example1       = EXCLUDED.example1,
			example2       = EXCLUDED.example2,
			fetched_at     = EXCLUDED.fetched_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "lookup entry", entry.Key)
	}

	return nil
}

// DeleteOlderThan removes entries fetched more than maxAge ago and returns
// the number of rows deleted.
func (r *Repo) DeleteOlderThan(ctx context.Context, maxAge time.Duration) (int64, error) {
	query, args, err := psql.
		Delete(tableName).
		Where(squirrel.Lt{"fetched_at": r.now().Add(-maxAge)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "lookup entries", "expired")
	}

	return tag.RowsAffected(), nil
}
