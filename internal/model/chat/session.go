package chat

import (
	"time"

	"github.com/omprakash8639/Buddy/internal/model/profile"
)

// Session holds one user's onboarding profile, the system prompt derived
// from it, and the bounded conversation history. Only the conversation
// service mutates sessions.
type Session struct {
	ID           string
	Profile      profile.Profile
	SystemPrompt string
	History      []Message
	MessageCount int
	CreatedAt    time.Time
}
