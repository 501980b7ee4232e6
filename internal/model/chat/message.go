package chat

// Message roles stored in session history. The system prompt lives on the
// session itself and is never part of the history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single utterance in a session's history, chronological order.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
