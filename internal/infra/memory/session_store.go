package memory

import (
	"sync"

	"skill-evolve-service/internal/app"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*app.Game
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
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
}
