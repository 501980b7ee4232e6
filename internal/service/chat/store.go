package chat

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/omprakash8639/Buddy/internal/model/chat"
	"github.com/omprakash8639/Buddy/internal/model/profile"
)

// ErrSessionNotFound reports an unknown session id.
var ErrSessionNotFound = errors.New("session not found")

// historyLimit bounds the sliding conversation window. Oldest entries are
// dropped first; MessageCount is not affected by trimming.
const historyLimit = 20

// Store keeps live sessions in memory for the lifetime of the process.
// Every operation on a single session id is atomic: a reader never observes
// a half-appended turn.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*chat.Session
}

// NewStore bootstraps an empty in-memory session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*chat.Session),
	}
}

// Create inserts a new session with an empty history and returns a copy.
func (s *Store) Create(p profile.Profile, systemPrompt string) chat.Session {
	session := &chat.Session{
		ID:           uuid.NewString(),
		Profile:      p,
		SystemPrompt: systemPrompt,
		History:      make([]chat.Message, 0, historyLimit),
		CreatedAt:    time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return snapshot(session)
}

// Get returns a copy of the session, including a copied history slice.
func (s *Store) Get(sessionID string) (chat.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}
	return snapshot(session), nil
}

// AppendTurn records one completed exchange: the user message followed by
// the assistant reply, then trims the window and bumps MessageCount.
func (s *Store) AppendTurn(sessionID, userMessage, assistantMessage string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}

	session.History = append(session.History,
		chat.Message{Role: chat.RoleUser, Content: userMessage},
		chat.Message{Role: chat.RoleAssistant, Content: assistantMessage},
	)
	if len(session.History) > historyLimit {
		trimmed := make([]chat.Message, historyLimit)
		copy(trimmed, session.History[len(session.History)-historyLimit:])
		session.History = trimmed
	}
	session.MessageCount++
	return nil
}

// Delete removes the session irrevocably.
func (s *Store) Delete(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}

// ActiveSessions reports the number of live sessions, for health checks.
func (s *Store) ActiveSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func snapshot(session *chat.Session) chat.Session {
	copied := *session
	copied.History = make([]chat.Message, len(session.History))
	copy(copied.History, session.History)
	return copied
}
