package lookup

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/heartmarshall/lexlookup/internal/domain"
	"github.com/heartmarshall/lexlookup/internal/lexicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockSource struct {
	FetchDocumentFunc func(ctx context.Context, word string) string
	calls             []string
}

func (m *mockSource) FetchDocument(ctx context.Context, word string) string {
	m.calls = append(m.calls, word)
	return m.FetchDocumentFunc(ctx, word)
}

type mockCache struct {
	GetFunc func(ctx context.Context, key string, maxAge time.Duration) (*domain.CachedEntry, error)
	PutFunc func(ctx context.Context, entry domain.CachedEntry) error
	puts    []domain.CachedEntry
}

func (m *mockCache) Get(ctx context.Context, key string, maxAge time.Duration) (*domain.CachedEntry, error) {
	if m.GetFunc == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetFunc(ctx, key, maxAge)
}

func (m *mockCache) Put(ctx context.Context, entry domain.CachedEntry) error {
	m.puts = append(m.puts, entry)
	if m.PutFunc == nil {
		return nil
	}
	return m.PutFunc(ctx, entry)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const homeDoc = `== English ==
=== Noun ===
# a building

== Russian ==
=== Существительное ===
==== Значение ====
# [[жилой|жилое]] [[здание]]
==== Синонимы ====
# [[строение]], [[жилище]]
==== Примеры употребления ====
# Дом стоял на горе.
`

func staticSource(doc string) *mockSource {
	return &mockSource{FetchDocumentFunc: func(context.Context, string) string { return doc }}
}

func newTestService(src documentSource, cache Cache) *Service {
	s := NewService(newTestLogger(), src, cache, lexicon.Russian, time.Hour)
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return s
}

func placeholder(headword string) domain.LexicalEntry {
	return domain.LexicalEntry{
		Headword:     headword,
		PartOfSpeech: "-",
		Definition:   "-",
		Synonyms:     "-",
		Example1:     "-",
		Example2:     "-",
	}
}

// ---------------------------------------------------------------------------
// Lookup
// ---------------------------------------------------------------------------

func TestService_Lookup_PercentEncodedHeadword(t *testing.T) {
	t.Parallel()

	src := staticSource(homeDoc)
	svc := newTestService(src, nil)

	got := svc.Lookup(context.Background(), "%D0%B4%D0%BE%D0%BC")

	require.Equal(t, []string{"дом"}, src.calls)
	assert.Equal(t, domain.LexicalEntry{
		Headword:     "дом",
		PartOfSpeech: "Существительное",
		Definition:   "жилое здание",
		Synonyms:     "строение, жилище",
		Example1:     "Дом стоял на горе.",
		Example2:     "-",
	}, got)
	assert.Equal(t, "Word: дом\n"+
		"Part of speech: Существительное\n"+
		"Definition: жилое здание\n"+
		"Synonyms: строение, жилище\n"+
		"Example 1: Дом стоял на горе.\n"+
		"Example 2: -", got.Text())
}

func TestService_Lookup_UnknownWord(t *testing.T) {
	t.Parallel()

	svc := newTestService(staticSource(""), nil)

	got := svc.Lookup(context.Background(), "xyznonexistent")

	assert.Equal(t, placeholder("xyznonexistent"), got)
}

func TestService_Lookup_NoLanguageSection(t *testing.T) {
	t.Parallel()

	svc := newTestService(staticSource("== English ==\n=== Noun ===\n# a building\n"), nil)

	got := svc.Lookup(context.Background(), "house")

	assert.Equal(t, placeholder("house"), got)
}

func TestService_Lookup_EmptyHeadword(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "   ", "+", "%20"} {
		src := staticSource(homeDoc)
		svc := newTestService(src, nil)

		got := svc.Lookup(context.Background(), raw)

		assert.Equal(t, placeholder("-"), got, "raw %q", raw)
		assert.Empty(t, src.calls, "source must not be called for %q", raw)
	}
}

func TestService_Lookup_RecoversPanic(t *testing.T) {
	t.Parallel()

	src := &mockSource{FetchDocumentFunc: func(context.Context, string) string {
		panic("boom")
	}}
	svc := newTestService(src, nil)

	got := svc.Lookup(context.Background(), "дом")

	assert.Equal(t, placeholder("дом"), got)
}

// ---------------------------------------------------------------------------
// Cache
// ---------------------------------------------------------------------------

func TestService_Lookup_CacheHit(t *testing.T) {
	t.Parallel()

	cachedEntry := domain.LexicalEntry{
		Headword:     "дом",
		PartOfSpeech: "Существительное",
		Definition:   "из кэша",
		Synonyms:     "-",
		Example1:     "-",
		Example2:     "-",
	}
	cache := &mockCache{
		GetFunc: func(_ context.Context, key string, maxAge time.Duration) (*domain.CachedEntry, error) {
			assert.Equal(t, "Дом", key)
			assert.Equal(t, time.Hour, maxAge)
			return &domain.CachedEntry{Key: key, Entry: cachedEntry}, nil
		},
	}
	src := staticSource(homeDoc)
	svc := newTestService(src, cache)

	got := svc.Lookup(context.Background(), "Дом")

	assert.Empty(t, src.calls)
	assert.Empty(t, cache.puts)
	assert.Equal(t, "из кэша", got.Definition)
	assert.Equal(t, "Дом", got.Headword)
}

func TestService_Lookup_CacheMissStoresEntry(t *testing.T) {
	t.Parallel()

	cache := &mockCache{}
	svc := newTestService(staticSource(homeDoc), cache)

	got := svc.Lookup(context.Background(), "Дом")

	require.Len(t, cache.puts, 1)
	put := cache.puts[0]
	assert.Equal(t, "Дом", put.Key)
	assert.Equal(t, got, put.Entry)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), put.FetchedAt)
}

// memCache is a map-backed Cache for tests that need real hit/miss behaviour.
type memCache struct {
	entries map[string]domain.CachedEntry
}

func (m *memCache) Get(_ context.Context, key string, _ time.Duration) (*domain.CachedEntry, error) {
	e, ok := m.entries[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (m *memCache) Put(_ context.Context, entry domain.CachedEntry) error {
	m.entries[entry.Key] = entry
	return nil
}

func TestService_Lookup_CaseVariantsFetchOwnPage(t *testing.T) {
	t.Parallel()

	pages := map[string]string{
		"рим": "== Russian ==\n=== Числительное ===\n==== Значение ====\n# римское число\n",
		"Рим": "== Russian ==\n=== Существительное ===\n==== Значение ====\n# столица Италии\n",
	}
	src := &mockSource{FetchDocumentFunc: func(_ context.Context, word string) string { return pages[word] }}
	cache := &memCache{entries: map[string]domain.CachedEntry{}}
	svc := newTestService(src, cache)

	lower := svc.Lookup(context.Background(), "рим")
	upper := svc.Lookup(context.Background(), "Рим")

	assert.Equal(t, []string{"рим", "Рим"}, src.calls)
	assert.Equal(t, "Числительное", lower.PartOfSpeech)
	assert.Equal(t, "Существительное", upper.PartOfSpeech)
	assert.Equal(t, "столица Италии", upper.Definition)
	assert.Len(t, cache.entries, 2)

	// Repeats are served from the cache under the exact key.
	again := svc.Lookup(context.Background(), "Рим")
	assert.Equal(t, upper, again)
	assert.Len(t, src.calls, 2)
}

func TestService_Lookup_PlaceholderNotCached(t *testing.T) {
	t.Parallel()

	cache := &mockCache{}
	svc := newTestService(staticSource(""), cache)

	svc.Lookup(context.Background(), "xyznonexistent")

	assert.Empty(t, cache.puts)
}

func TestService_Lookup_CacheErrorsIgnored(t *testing.T) {
	t.Parallel()

	cache := &mockCache{
		GetFunc: func(context.Context, string, time.Duration) (*domain.CachedEntry, error) {
			return nil, errors.New("connection refused")
		},
		PutFunc: func(context.Context, domain.CachedEntry) error {
			return errors.New("connection refused")
		},
	}
	src := staticSource(homeDoc)
	svc := newTestService(src, cache)

	got := svc.Lookup(context.Background(), "дом")

	assert.Len(t, src.calls, 1)
	assert.Equal(t, "жилое здание", got.Definition)
	assert.Len(t, cache.puts, 1)
}

func TestService_Lookup_ZeroTTLDisablesCache(t *testing.T) {
	t.Parallel()

	cache := &mockCache{
		GetFunc: func(context.Context, string, time.Duration) (*domain.CachedEntry, error) {
			t.Error("Get must not be called with zero TTL")
			return nil, domain.ErrNotFound
		},
	}
	svc := NewService(newTestLogger(), staticSource(homeDoc), cache, lexicon.Russian, 0)

	got := svc.Lookup(context.Background(), "дом")

	assert.Equal(t, "жилое здание", got.Definition)
	assert.Empty(t, cache.puts)
}
