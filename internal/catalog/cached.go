package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ppiankov/lapidary/internal/model"
)

// CachedStore wraps a Store with an in-memory TTL cache so repeated
// identifications within a process do not reload the catalog. The cached
// catalog is stored as JSON bytes and decoded per call, so callers always
// own their slice.
type CachedStore struct {
	inner Store
	cache *gocache.Cache
	ttl   time.Duration
}

// NewCachedStore wraps inner with a memory cache using the given TTL.
func NewCachedStore(inner Store, ttl time.Duration) *CachedStore {
	return &CachedStore{
		inner: inner,
		cache: gocache.New(ttl, 10*time.Minute),
		ttl:   ttl,
	}
}

// Source returns the inner store's source.
func (s *CachedStore) Source() string {
	return s.inner.Source()
}

// Load returns the cached catalog, loading through the inner store on miss.
func (s *CachedStore) Load(ctx context.Context) ([]model.Mineral, error) {
	key := cacheKey(s.inner.Source())

	if raw, found := s.cache.Get(key); found {
		var minerals []model.Mineral
		if err := json.Unmarshal(raw.([]byte), &minerals); err == nil {
			return minerals, nil
		}
		// Undecodable entry: drop it and reload.
		s.cache.Delete(key)
	}

	minerals, err := s.inner.Load(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(minerals)
	if err != nil {
		return nil, fmt.Errorf("encode catalog for cache: %w", err)
	}
	s.cache.Set(key, data, s.ttl)

	return minerals, nil
}

// cacheKey generates a cache key from the catalog source.
func cacheKey(source string) string {
	hash := sha256.Sum256([]byte(source))
	return "lapidary:catalog:v1:" + hex.EncodeToString(hash[:])
}
