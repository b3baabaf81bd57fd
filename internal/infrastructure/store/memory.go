package store

import (
	"context"
	"slices"
	"time"

	"github.com/patrickmn/go-cache"

	"deal_dashboard/internal/domain/entity"
	"deal_dashboard/pkg/contextx"
)

// MemoryStore keeps deal sets in process memory. Sessions expire after the
// TTL and are lost on restart.
type MemoryStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &MemoryStore{
		cache: cache.New(ttl, ttl/2), //nolint:mnd // cleanup twice per TTL
		ttl:   ttl,
	}
}

// Load returns a copy of the stored deals; ok is false when the session has
// none.
func (s *MemoryStore) Load(_ context.Context, id contextx.SessionID) ([]entity.Deal, bool, error) {
	v, ok := s.cache.Get(key(id))
	if !ok {
		return nil, false, nil
	}

	deals, _ := v.([]entity.Deal)

	// Touch on read, like the Redis store.
	s.cache.Set(key(id), deals, s.ttl)

	return slices.Clone(deals), true, nil
}

func (s *MemoryStore) Save(_ context.Context, id contextx.SessionID, deals []entity.Deal) error {
	s.cache.Set(key(id), slices.Clone(deals), s.ttl)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, id contextx.SessionID) error {
	s.cache.Delete(key(id))
	return nil
}
