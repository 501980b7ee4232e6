package ai

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/omprakash8639/Buddy/internal/config"
	"github.com/omprakash8639/Buddy/internal/model/chat"
)

// Service turns a session snapshot into a completion request: system prompt
// first, stored history in order, the new user message last.
type Service struct {
	chatModel model.ChatModel
	template  prompt.ChatTemplate
}

// NewService wires the prompt template to a chat model.
func NewService(chatModel model.ChatModel) *Service {
	template := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	return &Service{
		chatModel: chatModel,
		template:  template,
	}
}

// NewServiceFromConfig builds the service with the Groq-backed model.
func NewServiceFromConfig(cfg config.AIConfig) *Service {
	return NewService(NewGroqChatModel(cfg))
}

// GenerateReply produces the buddy's answer for one chat turn. Errors from
// the chat model propagate untouched so callers can tell a missing
// credential from an unavailable upstream.
func (s *Service) GenerateReply(ctx context.Context, systemPrompt string, history []chat.Message, userMessage string) (string, error) {
	messages, err := s.template.Format(ctx, map[string]any{
		"system":  systemPrompt,
		"history": historyMessages(history),
		"query":   userMessage,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render prompt template: %w", err)
	}

	response, err := s.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", err
	}

	log.Printf("[ai] generated reply, length=%d", len(response.Content))
	return response.Content, nil
}

func historyMessages(history []chat.Message) []*schema.Message {
	if len(history) == 0 {
		return nil
	}

	messages := make([]*schema.Message, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case chat.RoleUser:
			messages = append(messages, schema.UserMessage(msg.Content))
		case chat.RoleAssistant:
			messages = append(messages, schema.AssistantMessage(msg.Content, nil))
		}
	}
	return messages
}
