package lookupcache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lexlookup/internal/adapter/postgres/lookupcache"
	"github.com/heartmarshall/lexlookup/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/lexlookup/internal/domain"
)

func newRepo(t *testing.T) *lookupcache.Repo {
	t.Helper()
	return lookupcache.New(testhelper.SetupTestDB(t))
}

// uniqueKey returns a cache key that does not collide with parallel tests.
func uniqueKey(word string) string {
	return word + "-" + uuid.New().String()[:8]
}

func sampleEntry(key string, fetchedAt time.Time) domain.CachedEntry {
	return domain.CachedEntry{
		Key: key,
		Entry: domain.LexicalEntry{
			Headword:     "Дом",
			PartOfSpeech: "Существительное",
			Definition:   "жилое здание",
			Synonyms:     "строение, жилище",
			Example1:     "Дом стоял на горе.",
			Example2:     "-",
		},
		FetchedAt: fetchedAt,
	}
}

func TestRepo_PutAndGet(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	key := uniqueKey("дом")
	fetchedAt := time.Now().UTC().Truncate(time.Microsecond)
	want := sampleEntry(key, fetchedAt)

	if err := repo.Put(ctx, want); err != nil {
		t.Fatalf("Put: unexpected error: %v", err)
	}

	got, err := repo.Get(ctx, key, time.Hour)
	if err != nil {
		t.Fatalf("Get: unexpected error: %v", err)
	}

	if got.Key != key {
		t.Errorf("Key = %q, want %q", got.Key, key)
	}
	if got.Entry != want.Entry {
		t.Errorf("Entry = %+v, want %+v", got.Entry, want.Entry)
	}
	if !got.FetchedAt.Equal(fetchedAt) {
		t.Errorf("FetchedAt = %v, want %v", got.FetchedAt, fetchedAt)
	}
}

func TestRepo_Get_NotFound(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)

	_, err := repo.Get(context.Background(), uniqueKey("missing"), time.Hour)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get: expected ErrNotFound, got %v", err)
	}
}

func TestRepo_Get_Expired(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	key := uniqueKey("старый")
	if err := repo.Put(ctx, sampleEntry(key, time.Now().Add(-2*time.Hour))); err != nil {
		t.Fatalf("Put: unexpected error: %v", err)
	}

	_, err := repo.Get(ctx, key, time.Hour)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get: expected ErrNotFound for expired entry, got %v", err)
	}

	// A wider window still sees it.
	if _, err := repo.Get(ctx, key, 3*time.Hour); err != nil {
		t.Fatalf("Get with wider window: unexpected error: %v", err)
	}
}

func TestRepo_Put_Upserts(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	key := uniqueKey("дом")
	first := sampleEntry(key, time.Now().Add(-time.Minute))
	if err := repo.Put(ctx, first); err != nil {
		t.Fatalf("Put first: unexpected error: %v", err)
	}

	second := sampleEntry(key, time.Now())
	second.Entry.Definition = "здание для жилья"
	if err := repo.Put(ctx, second); err != nil {
		t.Fatalf("Put second: unexpected error: %v", err)
	}

	got, err := repo.Get(ctx, key, time.Hour)
	if err != nil {
		t.Fatalf("Get: unexpected error: %v", err)
	}
	if got.Entry.Definition != "здание для жилья" {
		t.Errorf("Definition = %q, want updated value", got.Entry.Definition)
	}
}

func TestRepo_Put_ZeroFetchedAtStamped(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	key := uniqueKey("кот")
	before := time.Now().Add(-time.Second)
	if err := repo.Put(ctx, sampleEntry(key, time.Time{})); err != nil {
		t.Fatalf("Put: unexpected error: %v", err)
	}

	got, err := repo.Get(ctx, key, time.Hour)
	if err != nil {
		t.Fatalf("Get: unexpected error: %v", err)
	}
	if got.FetchedAt.Before(before) {
		t.Errorf("FetchedAt = %v, want >= %v", got.FetchedAt, before)
	}
}

func TestRepo_Put_EmptyKey(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)

	err := repo.Put(context.Background(), sampleEntry("  ", time.Now()))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("Put: expected ErrValidation, got %v", err)
	}
}

func TestRepo_DeleteOlderThan(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	stale := uniqueKey("старый")
	fresh := uniqueKey("новый")
	if err := repo.Put(ctx, sampleEntry(stale, time.Now().Add(-48*time.Hour))); err != nil {
		t.Fatalf("Put stale: unexpected error: %v", err)
	}
	if err := repo.Put(ctx, sampleEntry(fresh, time.Now())); err != nil {
		t.Fatalf("Put fresh: unexpected error: %v", err)
	}

	n, err := repo.DeleteOlderThan(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("DeleteOlderThan: unexpected error: %v", err)
	}
	if n < 1 {
		t.Errorf("DeleteOlderThan removed %d rows, want >= 1", n)
	}

	if _, err := repo.Get(ctx, stale, 72*time.Hour); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("stale entry should be gone, got err = %v", err)
	}
	if _, err := repo.Get(ctx, fresh, time.Hour); err != nil {
		t.Errorf("fresh entry should survive, got err = %v", err)
	}
}
