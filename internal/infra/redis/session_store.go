package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"skill-evolve-service/internal/app"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Live games stay in process memory; Redis only carries a liveness marker per player
// so operators can see who is mid-session.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Game
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Game),
	}
}

// Put registers a live game. A nil game is ignored.
func (s *SessionStore) Put(playerID string, game *app.Game) {
	if game == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[playerID] = game
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(playerID), game.ID(), s.ttl).Err()
}

func (s *SessionStore) Get(playerID string) (*app.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.sessions[playerID]
	return game, ok
}

func (s *SessionStore) Delete(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, playerID)
	_ = s.client.Del(context.Background(), s.key(playerID)).Err()
}

func (s *SessionStore) key(playerID string) string {
	return "skillevolve:session:" + playerID
}
