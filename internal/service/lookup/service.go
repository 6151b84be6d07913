package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/lexlookup/internal/domain"
	"github.com/heartmarshall/lexlookup/internal/lexicon"
)

type documentSource interface {
	FetchDocument(ctx context.Context, word string) string
}

// Cache stores formatted entries between lookups. Implementations return
// domain.ErrNotFound for missing or expired keys.
type Cache interface {
	Get(ctx context.Context, key string, maxAge time.Duration) (*domain.CachedEntry, error)
	Put(ctx context.Context, entry domain.CachedEntry) error
}

// Service resolves free-text headwords into lexical entries.
type Service struct {
	log      *slog.Logger
	source   documentSource
	cache    Cache
	lang     lexicon.Language
	cacheTTL time.Duration
	now      func() time.Time
}

// NewService creates a lookup service. cache may be nil, which disables caching.
func NewService(
	logger *slog.Logger,
	source documentSource,
	cache Cache,
	lang lexicon.Language,
	cacheTTL time.Duration,
) *Service {
	return &Service{
		log:      logger.With("service", "lookup"),
		source:   source,
		cache:    cache,
		lang:     lang,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// Lookup returns the entry for a raw, possibly percent-encoded headword.
// It never fails: every miss along the way degrades to placeholder fields.
func (s *Service) Lookup(ctx context.Context, raw string) (entry domain.LexicalEntry) {
	headword := lexicon.NormalizeHeadword(raw, s.lang)
	if headword == "" {
		return domain.NewPlaceholderEntry("")
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorContext(ctx, "lookup panic recovered",
				slog.String("headword", headword),
				slog.String("panic", fmt.Sprint(r)),
			)
			entry = domain.NewPlaceholderEntry(headword)
		}
	}()

	key := domain.EntryKey(headword)

	if cached, ok := s.fromCache(ctx, key); ok {
		cached.Headword = headword
		return cached
	}

	doc := s.source.FetchDocument(ctx, headword)
	entry = lexicon.BuildEntry(headword, doc, s.lang)

	s.log.DebugContext(ctx, "lookup resolved",
		slog.String("headword", headword),
		slog.Bool("found", !entry.IsPlaceholder()),
	)

	if !entry.IsPlaceholder() {
		s.toCache(ctx, key, entry)
	}

	return entry
}

func (s *Service) fromCache(ctx context.Context, key string) (domain.LexicalEntry, bool) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return domain.LexicalEntry{}, false
	}

	cached, err := s.cache.Get(ctx, key, s.cacheTTL)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "lookup cache read failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
		return domain.LexicalEntry{}, false
	}

	return cached.Entry, true
}

func (s *Service) toCache(ctx context.Context, key string, entry domain.LexicalEntry) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}

	err := s.cache.Put(ctx, domain.CachedEntry{
		Key:       key,
		Entry:     entry,
		FetchedAt: s.now().UTC(),
	})
	if err != nil {
		s.log.WarnContext(ctx, "lookup cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}
