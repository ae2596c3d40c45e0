package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"sabana_backend/internals/features/school/sabana/dto"
)

// The sábana is read-heavy and write-rare; the cache is a disposable derived
// view over the durable store. Every failure here is absorbed: a read error
// is a miss, a write/del error is logged. Losing the whole cache costs
// latency, never correctness.

const SheetTTL = time.Hour

var ErrCacheMiss = errors.New("sabana cache: miss")

// Store is the minimal key-value surface the cache needs. Kept small so
// tests can swap in fakes (including failing ones).
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type redisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) Store {
	if rdb == nil {
		return nil
	}
	return &redisStore{rdb: rdb}
}

func (s *redisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return v, err
}

func (s *redisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s *redisStore) Del(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

type SheetCache struct {
	store Store
	ttl   time.Duration
}

// NewSheetCache accepts a nil store (cache disabled: every Get is a miss,
// Put/Invalidate are no-ops).
func NewSheetCache(store Store) *SheetCache {
	return &SheetCache{store: store, ttl: SheetTTL}
}

// The tenant id is part of the key: a level/cycle pair requested under the
// wrong school must miss, never serve another tenant's sheet.
func sheetKey(schoolID, levelID, cycleID uuid.UUID) string {
	return fmt.Sprintf("sabana:%s:%s:%s", schoolID, levelID, cycleID)
}

func (c *SheetCache) Get(ctx context.Context, schoolID, levelID, cycleID uuid.UUID) (*dto.SabanaResponse, bool) {
	if c == nil || c.store == nil {
		return nil, false
	}
	raw, err := c.store.Get(ctx, sheetKey(schoolID, levelID, cycleID))
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("[WARN] sabana cache get: %v", err)
		}
		return nil, false
	}
	var sheet dto.SabanaResponse
	if err := sonic.UnmarshalString(raw, &sheet); err != nil {
		log.Printf("[WARN] sabana cache decode: %v", err)
		return nil, false
	}
	return &sheet, true
}

func (c *SheetCache) Put(ctx context.Context, schoolID, levelID, cycleID uuid.UUID, sheet *dto.SabanaResponse) {
	if c == nil || c.store == nil || sheet == nil {
		return
	}
	raw, err := sonic.MarshalString(sheet)
	if err != nil {
		log.Printf("[WARN] sabana cache encode: %v", err)
		return
	}
	if err := c.store.Set(ctx, sheetKey(schoolID, levelID, cycleID), raw, c.ttl); err != nil {
		log.Printf("[WARN] sabana cache set: %v", err)
	}
}

// Invalidate runs synchronously on the write path: it must complete (or be
// confirmed failed-and-logged) before a grade write reports success, so a
// reader arriving after the response never sees the stale sheet.
func (c *SheetCache) Invalidate(ctx context.Context, schoolID, levelID, cycleID uuid.UUID) {
	if c == nil || c.store == nil {
		return
	}
	if err := c.store.Del(ctx, sheetKey(schoolID, levelID, cycleID)); err != nil {
		log.Printf("[WARN] sabana cache invalidate: %v", err)
	}
}
