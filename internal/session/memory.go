package session

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps sessions in process memory with a TTL. Suitable for a
// single instance; use the Redis store when running more than one.
type MemoryStore struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewMemory creates an in-memory store whose sessions expire after ttl of
// inactivity.
func NewMemory(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &MemoryStore{
		cache: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (Session, bool, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return Session{}, false, nil
	}
	sess, ok := v.(Session)
	if !ok {
		return Session{}, false, nil
	}
	// Reading a session counts as activity.
	s.cache.Set(id, sess, s.ttl)
	return sess, true, nil
}

func (s *MemoryStore) Put(_ context.Context, id string, sess Session) error {
	s.cache.Set(id, sess, s.ttl)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.cache.Delete(id)
	return nil
}

func (s *MemoryStore) Close() error {
	s.cache.Flush()
	return nil
}
