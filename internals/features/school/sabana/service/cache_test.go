package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sabana_backend/internals/features/school/sabana/dto"
)

// In-memory Store fake (also records Del calls for invalidation tests)
type memStore struct {
	data map[string]string
	dels []string
}

func newMemStore() *memStore { return &memStore{data: map[string]string{}} }

func (s *memStore) Get(ctx context.Context, key string) (string, error) {
	v, ok := s.data[key]
	if !ok {
		return "", ErrCacheMiss
	}
	return v, nil
}

func (s *memStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.data[key] = value
	return nil
}

func (s *memStore) Del(ctx context.Context, key string) error {
	delete(s.data, key)
	s.dels = append(s.dels, key)
	return nil
}

// Store fake where everything fails (unreachable cache)
type brokenStore struct{}

func (brokenStore) Get(ctx context.Context, key string) (string, error) {
	return "", errors.New("connection refused")
}
func (brokenStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return errors.New("connection refused")
}
func (brokenStore) Del(ctx context.Context, key string) error {
	return errors.New("connection refused")
}

func TestSheetCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := NewSheetCache(newMemStore())
	schoolID, levelID, cycleID := uuid.New(), uuid.New(), uuid.New()

	_, ok := cache.Get(ctx, schoolID, levelID, cycleID)
	assert.False(t, ok)

	sheet := &dto.SabanaResponse{GradeLevelID: levelID, AcademicCycleID: cycleID, Periods: 4}
	cache.Put(ctx, schoolID, levelID, cycleID, sheet)

	got, ok := cache.Get(ctx, schoolID, levelID, cycleID)
	require.True(t, ok)
	assert.Equal(t, levelID, got.GradeLevelID)
	assert.Equal(t, 4, got.Periods)

	cache.Invalidate(ctx, schoolID, levelID, cycleID)
	_, ok = cache.Get(ctx, schoolID, levelID, cycleID)
	assert.False(t, ok)
}

func TestSheetCacheKeyedByTenant(t *testing.T) {
	// The same level/cycle pair under another school id must miss
	ctx := context.Background()
	cache := NewSheetCache(newMemStore())
	schoolID, levelID, cycleID := uuid.New(), uuid.New(), uuid.New()

	cache.Put(ctx, schoolID, levelID, cycleID, &dto.SabanaResponse{GradeLevelID: levelID})

	_, ok := cache.Get(ctx, uuid.New(), levelID, cycleID)
	assert.False(t, ok)

	_, ok = cache.Get(ctx, schoolID, levelID, cycleID)
	assert.True(t, ok)
}

func TestSheetCacheFailOpen(t *testing.T) {
	// An unreachable store degrades to misses and logged no-ops,
	// never to user-visible errors
	ctx := context.Background()
	cache := NewSheetCache(brokenStore{})
	schoolID, levelID, cycleID := uuid.New(), uuid.New(), uuid.New()

	_, ok := cache.Get(ctx, schoolID, levelID, cycleID)
	assert.False(t, ok)

	cache.Put(ctx, schoolID, levelID, cycleID, &dto.SabanaResponse{})
	cache.Invalidate(ctx, schoolID, levelID, cycleID)
}

func TestSheetCacheDisabled(t *testing.T) {
	ctx := context.Background()
	cache := NewSheetCache(nil)
	schoolID, levelID, cycleID := uuid.New(), uuid.New(), uuid.New()

	_, ok := cache.Get(ctx, schoolID, levelID, cycleID)
	assert.False(t, ok)
	cache.Put(ctx, schoolID, levelID, cycleID, &dto.SabanaResponse{})
	cache.Invalidate(ctx, schoolID, levelID, cycleID)
}

func TestSheetCacheCorruptEntryIsAMiss(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	cache := NewSheetCache(store)
	schoolID, levelID, cycleID := uuid.New(), uuid.New(), uuid.New()

	store.data[sheetKey(schoolID, levelID, cycleID)] = "{not json"
	_, ok := cache.Get(ctx, schoolID, levelID, cycleID)
	assert.False(t, ok)
}
