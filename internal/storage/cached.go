package storage

import (
	"context"
	"errors"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const megabyte = 1024 * 1024

var (
	_ Store       = (*CachedStore)(nil)
	_ FreshGetter = (*CachedStore)(nil)
)

// CachedStore keeps recently read documents in a freecache in front of another Store.
// Writes go to the backing store first, then to the cache.
type CachedStore struct {
	store Store
	cache *freecache.Cache
	ttl   time.Duration
}

func NewCachedStore(store Store, cacheSizeMB int, ttl time.Duration) *CachedStore {
	return &CachedStore{
		store: store,
		cache: freecache.NewCache(cacheSizeMB * megabyte),
		ttl:   ttl,
	}
}

func (s *CachedStore) expireSeconds() int {
	return int(s.ttl.Seconds())
}

func (s *CachedStore) Get(ctx context.Context, key string) ([]byte, error) {
	if value, err := s.cache.Get([]byte(key)); err == nil {
		log.Tracef("cached store: [%s] found in cache", key)
		return value, nil
	} else if !errors.Is(err, freecache.ErrNotFound) {
		log.Warnf("cached store: get [%s] from cache: %s", key, err)
	}

	value, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set([]byte(key), value, s.expireSeconds()); err != nil {
		log.Warnf("cached store: cache [%s]: %s", key, err)
	}
	return value, nil
}

// GetFresh reads the backing store and refreshes the cached entry, so a write
// made by another process (the backup CLI) is seen before it is built upon.
func (s *CachedStore) GetFresh(ctx context.Context, key string) ([]byte, error) {
	value, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			s.cache.Del([]byte(key))
		}
		return nil, err
	}
	if err := s.cache.Set([]byte(key), value, s.expireSeconds()); err != nil {
		s.cache.Del([]byte(key))
		log.Warnf("cached store: cache [%s]: %s", key, err)
	}
	return value, nil
}

func (s *CachedStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.store.Set(ctx, key, value); err != nil {
		s.cache.Del([]byte(key))
		return err
	}
	if err := s.cache.Set([]byte(key), value, s.expireSeconds()); err != nil {
		// stale entry must not outlive a write
		s.cache.Del([]byte(key))
		log.Warnf("cached store: cache [%s]: %s", key, err)
	}
	return nil
}

func (s *CachedStore) Delete(ctx context.Context, key string) error {
	s.cache.Del([]byte(key))
	return s.store.Delete(ctx, key)
}

func (s *CachedStore) HitRate() float64 {
	return s.cache.HitRate()
}
