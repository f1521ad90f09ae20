package storage

import (
	"sync"
	"time"

	"github.com/JonathanAHerrera/Fitprint/internal/models"
	"github.com/JonathanAHerrera/Fitprint/internal/normalize"
)

// AnalysisSession is one capture-to-report cycle exposed by the facade.
type AnalysisSession struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"user_id"`
	ImageRef  string                 `json:"image_ref"`
	Phase     string                 `json:"phase"`
	Result    *models.AnalysisResult `json:"result,omitempty"`
	Display   *normalize.Display     `json:"display,omitempty"`
	Error     string                 `json:"error,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type SessionStore struct {
	sessions map[string]*AnalysisSession
	mu       sync.RWMutex
}

func New() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*AnalysisSession),
	}
}

func (s *SessionStore) Get(sessionID string) (*AnalysisSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[sessionID]
	return session, exists
}

func (s *SessionStore) Set(sessionID string, session *AnalysisSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = session
}

func (s *SessionStore) GetAll() map[string]*AnalysisSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*AnalysisSession, len(s.sessions))
	for k, v := range s.sessions {
		result[k] = v
	}
	return result
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
