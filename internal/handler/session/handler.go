package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/omprakash8639/Buddy/internal/model/profile"
	"github.com/omprakash8639/Buddy/internal/service/ai"
	chatservice "github.com/omprakash8639/Buddy/internal/service/chat"
	"github.com/omprakash8639/Buddy/pkg/utils"
)

// Handler exposes the session lifecycle over HTTP.
type Handler struct {
	chatSvc *chatservice.Service
}

// New creates the session handler.
func New(chatSvc *chatservice.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes wires the buddy API routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/create-session", h.handleCreateSession)
	r.Post("/chat", h.handleChat)
	r.Get("/session/{sessionID}", h.handleSessionInfo)
	r.Get("/session/{sessionID}/history", h.handleHistory)
	r.Delete("/session/{sessionID}", h.handleDeleteSession)
	r.Get("/health", h.handleHealth)
}

type createSessionRequest struct {
	OnboardingData profile.Profile `json:"onboarding_data"`
}

type createSessionResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var payload createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := payload.OnboardingData.Validate(); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, greeting, err := h.chatSvc.CreateSession(r.Context(), payload.OnboardingData)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, createSessionResponse{
		SessionID: session.ID,
		Message:   greeting,
	})
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.SessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "session_id is required")
		return
	}
	if payload.Message == "" {
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := h.chatSvc.Chat(r.Context(), payload.SessionID, payload.Message)
	if err != nil {
		utils.RespondError(w, statusForError(err), err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, chatResponse{
		Response:  reply,
		SessionID: payload.SessionID,
	})
}

type sessionInfoResponse struct {
	SessionID      string          `json:"session_id"`
	OnboardingData profile.Profile `json:"onboarding_data"`
	CreatedAt      time.Time       `json:"created_at"`
	MessageCount   int             `json:"message_count"`
}

func (h *Handler) handleSessionInfo(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.chatSvc.Info(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, statusForError(err), err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, sessionInfoResponse{
		SessionID:      session.ID,
		OnboardingData: session.Profile,
		CreatedAt:      session.CreatedAt,
		MessageCount:   session.MessageCount,
	})
}

type historyResponse struct {
	SessionID string                        `json:"session_id"`
	Messages  []chatservice.TranscriptEntry `json:"messages"`
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	entries, err := h.chatSvc.Transcript(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, statusForError(err), err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, historyResponse{
		SessionID: sessionID,
		Messages:  entries,
	})
}

func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.chatSvc.DeleteSession(r.Context(), sessionID); err != nil {
		utils.RespondError(w, statusForError(err), err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Session deleted successfully"})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"status":          "healthy",
		"active_sessions": h.chatSvc.ActiveSessions(),
	})
}

// statusForError maps service sentinels to HTTP statuses. Unknown session
// is the caller's fault; upstream and credential failures are ours.
func statusForError(err error) int {
	switch {
	case errors.Is(err, chatservice.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ai.ErrUpstreamUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, ai.ErrMissingAPIKey):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
