package chat

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/omprakash8639/Buddy/internal/model/chat"
	"github.com/omprakash8639/Buddy/internal/model/profile"
	"github.com/omprakash8639/Buddy/internal/service/ai"
)

// ReplyGenerator produces the assistant half of a chat turn. Satisfied by
// the AI service; tests substitute stubs.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, systemPrompt string, history []chat.Message, userMessage string) (string, error)
}

// TranscriptEntry is a history line in the shape the frontend renders.
type TranscriptEntry struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Service owns the session lifecycle: create, chat turns, info, transcript,
// delete. Chat turns on one session are serialized across the whole
// read-complete-append sequence; turns on different sessions run in
// parallel.
type Service struct {
	store *Store
	gen   ReplyGenerator

	mu    sync.Mutex
	turns map[string]*sync.Mutex
}

// NewService wires the store to a reply generator.
func NewService(store *Store, gen ReplyGenerator) *Service {
	return &Service{
		store: store,
		gen:   gen,
		turns: make(map[string]*sync.Mutex),
	}
}

// CreateSession validates the profile, derives the system prompt once and
// provisions the session. The greeting references the user's name.
func (s *Service) CreateSession(_ context.Context, p profile.Profile) (chat.Session, string, error) {
	if err := p.Validate(); err != nil {
		return chat.Session{}, "", err
	}

	session := s.store.Create(p, ai.BuildSystemPrompt(p))
	greeting := fmt.Sprintf("Hey %s! Your buddy is ready to chat! 🎉", p.Name)

	log.Printf("[chat] created session=%s for user=%s", session.ID, p.Name)
	return session, greeting, nil
}

// Chat runs one turn: snapshot the session, call the generator, record the
// exchange. The turn is recorded only after a successful completion, so a
// failed upstream call leaves history and MessageCount untouched.
func (s *Service) Chat(ctx context.Context, sessionID, userMessage string) (string, error) {
	lock := s.turnLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.store.Get(sessionID)
	if err != nil {
		return "", err
	}

	reply, err := s.gen.GenerateReply(ctx, session.SystemPrompt, session.History, userMessage)
	if err != nil {
		return "", err
	}

	if err := s.store.AppendTurn(sessionID, userMessage, reply); err != nil {
		// Session deleted mid-turn; the exchange is discarded.
		return "", err
	}
	return reply, nil
}

// Info returns a snapshot of the session for the info endpoint.
func (s *Service) Info(_ context.Context, sessionID string) (chat.Session, error) {
	return s.store.Get(sessionID)
}

// Transcript maps stored roles to the user/buddy labels the frontend shows.
func (s *Service) Transcript(_ context.Context, sessionID string) ([]TranscriptEntry, error) {
	session, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	entries := make([]TranscriptEntry, 0, len(session.History))
	for _, msg := range session.History {
		switch msg.Role {
		case chat.RoleUser:
			entries = append(entries, TranscriptEntry{Type: "user", Content: msg.Content})
		case chat.RoleAssistant:
			entries = append(entries, TranscriptEntry{Type: "buddy", Content: msg.Content})
		}
	}
	return entries, nil
}

// DeleteSession removes the session and its turn lock.
func (s *Service) DeleteSession(_ context.Context, sessionID string) error {
	if err := s.store.Delete(sessionID); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.turns, sessionID)
	s.mu.Unlock()

	log.Printf("[chat] deleted session=%s", sessionID)
	return nil
}

// ActiveSessions reports the live session count for health checks.
func (s *Service) ActiveSessions() int {
	return s.store.ActiveSessions()
}

func (s *Service) turnLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.turns[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.turns[sessionID] = lock
	}
	return lock
}
