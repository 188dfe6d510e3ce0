package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Hopetizzy/Abisam-properties/internal/cache"
	"github.com/Hopetizzy/Abisam-properties/internal/dialogue"
)

var ErrSessionNotFound = errors.New("session not found")

const sessionKeyPrefix = "chat:session:"

// Store keeps sessions in the cache as JSON blobs. Each write refreshes
// the TTL, so an idle conversation eventually expires on its own.
type Store struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewStore(c cache.Cache, ttl time.Duration) *Store {
	return &Store{cache: c, ttl: ttl}
}

func (s *Store) Load(ctx context.Context, id string) (*dialogue.Session, error) {
	raw, ok, err := s.cache.Get(ctx, sessionKeyPrefix+id)
	if err != nil {
		return nil, fmt.Errorf("chat store get: %w", err)
	}
	if !ok {
		return nil, ErrSessionNotFound
	}

	var session dialogue.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("chat store decode: %w", err)
	}
	return &session, nil
}

func (s *Store) Save(ctx context.Context, session *dialogue.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("chat store encode: %w", err)
	}
	if err := s.cache.Set(ctx, sessionKeyPrefix+session.ID, raw, s.ttl); err != nil {
		return fmt.Errorf("chat store set: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+id)
}
