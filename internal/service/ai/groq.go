package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/omprakash8639/Buddy/internal/config"
)

var (
	// ErrMissingAPIKey reports an absent GROQ_API_KEY. It is a configuration
	// error and is surfaced at call time, not at startup.
	ErrMissingAPIKey = errors.New("groq api key is not configured")
	// ErrUpstreamUnavailable covers transport failures, non-success statuses
	// and malformed response bodies from the completion endpoint.
	ErrUpstreamUnavailable = errors.New("completion endpoint unavailable")
)

// GroqChatModel implements the eino chat model contract over Groq's
// OpenAI-compatible chat completions API. One request, one reply; no retry.
type GroqChatModel struct {
	cfg        config.AIConfig
	httpClient *http.Client
}

var _ model.ChatModel = (*GroqChatModel)(nil)

// NewGroqChatModel builds the HTTP-backed chat model from configuration.
func NewGroqChatModel(cfg config.AIConfig) *GroqChatModel {
	return &GroqChatModel{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string              `json:"model"`
	Messages    []completionMessage `json:"messages"`
	Temperature float32             `json:"temperature"`
	MaxTokens   int                 `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate performs a single completion call with the supplied messages.
func (m *GroqChatModel) Generate(ctx context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	if m.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	payload := completionRequest{
		Model:       m.cfg.Model,
		Messages:    make([]completionMessage, 0, len(input)),
		Temperature: m.cfg.Temperature,
		MaxTokens:   m.cfg.MaxTokens,
	}
	for _, msg := range input {
		payload.Messages = append(payload.Messages, completionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %s", ErrUpstreamUnavailable, resp.Status)
	}

	var decoded completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: malformed response body: %v", ErrUpstreamUnavailable, err)
	}
	if len(decoded.Choices) == 0 {
		return nil, fmt.Errorf("%w: response contained no choices", ErrUpstreamUnavailable)
	}

	return schema.AssistantMessage(decoded.Choices[0].Message.Content, nil), nil
}

// Stream satisfies the model contract by emitting the whole reply as a
// single chunk. Token-level streaming is not offered by this service.
func (m *GroqChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}

	sr, sw := schema.Pipe[*schema.Message](1)
	go func() {
		defer sw.Close()
		sw.Send(msg, nil)
	}()
	return sr, nil
}

// BindTools is required by the interface; the buddy never calls tools.
func (m *GroqChatModel) BindTools([]*schema.ToolInfo) error {
	return errors.New("tool calling is not supported")
}
