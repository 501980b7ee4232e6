package chat_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/omprakash8639/Buddy/internal/model/chat"
	"github.com/omprakash8639/Buddy/internal/model/profile"
	"github.com/omprakash8639/Buddy/internal/service/ai"
	chatservice "github.com/omprakash8639/Buddy/internal/service/chat"
)

// stubGenerator returns a canned reply or error and remembers the prompt it
// was handed.
type stubGenerator struct {
	reply      string
	err        error
	mu         sync.Mutex
	lastSystem string
	lastSeen   []chat.Message
}

func (s *stubGenerator) GenerateReply(_ context.Context, systemPrompt string, history []chat.Message, _ string) (string, error) {
	s.mu.Lock()
	s.lastSystem = systemPrompt
	s.lastSeen = history
	s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newTestService(gen *stubGenerator) *chatservice.Service {
	return chatservice.NewService(chatservice.NewStore(), gen)
}

func TestCreateSession(t *testing.T) {
	svc := newTestService(&stubGenerator{})
	ctx := context.Background()

	session, greeting, err := svc.CreateSession(ctx, profile.Profile{Name: "Alex", FavoriteThing: "skateboarding"})
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}
	if !strings.Contains(greeting, "Alex") {
		t.Fatalf("greeting does not reference the user: %q", greeting)
	}
	if session.SystemPrompt == "" {
		t.Fatal("expected derived system prompt")
	}

	info, err := svc.Info(ctx, session.ID)
	if err != nil {
		t.Fatalf("Info err: %v", err)
	}
	if info.MessageCount != 0 {
		t.Fatalf("expected message count 0, got %d", info.MessageCount)
	}
	if len(info.History) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(info.History))
	}
}

func TestCreateSessionInvalidProfile(t *testing.T) {
	svc := newTestService(&stubGenerator{})

	if _, _, err := svc.CreateSession(context.Background(), profile.Profile{Name: "Alex"}); !errors.Is(err, profile.ErrFavoriteThingRequired) {
		t.Fatalf("expected ErrFavoriteThingRequired, got %v", err)
	}
	if _, _, err := svc.CreateSession(context.Background(), profile.Profile{FavoriteThing: "pizza"}); !errors.Is(err, profile.ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestChatRecordsTurn(t *testing.T) {
	gen := &stubGenerator{reply: "Yo, math makes my brain hurt! Is it... 5?"}
	svc := newTestService(gen)
	ctx := context.Background()

	session, _, err := svc.CreateSession(ctx, profile.Profile{Name: "Alex", FavoriteThing: "skateboarding"})
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	reply, err := svc.Chat(ctx, session.ID, "what's 2+2?")
	if err != nil {
		t.Fatalf("Chat err: %v", err)
	}
	if reply != gen.reply {
		t.Fatalf("unexpected reply %q", reply)
	}
	if gen.lastSystem != session.SystemPrompt {
		t.Fatal("generator did not receive the session's system prompt")
	}

	info, err := svc.Info(ctx, session.ID)
	if err != nil {
		t.Fatalf("Info err: %v", err)
	}
	if info.MessageCount != 1 {
		t.Fatalf("expected message count 1, got %d", info.MessageCount)
	}
	if len(info.History) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(info.History))
	}
}

func TestChatUpstreamFailureLeavesStateUntouched(t *testing.T) {
	gen := &stubGenerator{err: ai.ErrUpstreamUnavailable}
	svc := newTestService(gen)
	ctx := context.Background()

	session, _, err := svc.CreateSession(ctx, profile.Profile{Name: "Alex", FavoriteThing: "skateboarding"})
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	if _, err := svc.Chat(ctx, session.ID, "hello"); !errors.Is(err, ai.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}

	info, err := svc.Info(ctx, session.ID)
	if err != nil {
		t.Fatalf("Info err: %v", err)
	}
	if info.MessageCount != 0 || len(info.History) != 0 {
		t.Fatalf("failed turn mutated state: count=%d history=%d", info.MessageCount, len(info.History))
	}
}

func TestChatUnknownSession(t *testing.T) {
	svc := newTestService(&stubGenerator{reply: "yo"})

	if _, err := svc.Chat(context.Background(), "missing", "hello"); !errors.Is(err, chatservice.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestTranscriptLabels(t *testing.T) {
	gen := &stubGenerator{reply: "dude, no clue"}
	svc := newTestService(gen)
	ctx := context.Background()

	session, _, _ := svc.CreateSession(ctx, profile.Profile{Name: "Alex", FavoriteThing: "skateboarding"})
	if _, err := svc.Chat(ctx, session.ID, "who's the PM of India?"); err != nil {
		t.Fatalf("Chat err: %v", err)
	}

	entries, err := svc.Transcript(ctx, session.ID)
	if err != nil {
		t.Fatalf("Transcript err: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 transcript entries, got %d", len(entries))
	}
	if entries[0].Type != "user" || entries[0].Content != "who's the PM of India?" {
		t.Fatalf("unexpected first entry %+v", entries[0])
	}
	if entries[1].Type != "buddy" || entries[1].Content != "dude, no clue" {
		t.Fatalf("unexpected second entry %+v", entries[1])
	}
}

func TestDeleteSessionIsTerminal(t *testing.T) {
	svc := newTestService(&stubGenerator{reply: "yo"})
	ctx := context.Background()

	session, _, _ := svc.CreateSession(ctx, profile.Profile{Name: "Alex", FavoriteThing: "skateboarding"})
	if err := svc.DeleteSession(ctx, session.ID); err != nil {
		t.Fatalf("DeleteSession err: %v", err)
	}

	if _, err := svc.Info(ctx, session.ID); !errors.Is(err, chatservice.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound from Info, got %v", err)
	}
	if _, err := svc.Transcript(ctx, session.ID); !errors.Is(err, chatservice.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound from Transcript, got %v", err)
	}
	if _, err := svc.Chat(ctx, session.ID, "hello"); !errors.Is(err, chatservice.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound from Chat, got %v", err)
	}
	if err := svc.DeleteSession(ctx, session.ID); !errors.Is(err, chatservice.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound from DeleteSession, got %v", err)
	}
}

func TestConcurrentChatsOnOneSession(t *testing.T) {
	gen := &stubGenerator{reply: "yo"}
	svc := newTestService(gen)
	ctx := context.Background()

	session, _, _ := svc.CreateSession(ctx, profile.Profile{Name: "Alex", FavoriteThing: "skateboarding"})

	const turns = 10
	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Chat(ctx, session.ID, "hello"); err != nil {
				t.Errorf("Chat err: %v", err)
			}
		}()
	}
	wg.Wait()

	info, err := svc.Info(ctx, session.ID)
	if err != nil {
		t.Fatalf("Info err: %v", err)
	}
	if info.MessageCount != turns {
		t.Fatalf("expected message count %d, got %d", turns, info.MessageCount)
	}
	if len(info.History)%2 != 0 {
		t.Fatalf("history length must stay even, got %d", len(info.History))
	}
	if len(info.History) != 20 {
		t.Fatalf("expected history length 20, got %d", len(info.History))
	}
}
