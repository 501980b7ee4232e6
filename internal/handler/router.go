package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/omprakash8639/Buddy/internal/handler/session"
	"github.com/omprakash8639/Buddy/internal/handler/ws"
	middlewarePkg "github.com/omprakash8639/Buddy/internal/middleware"
	chatservice "github.com/omprakash8639/Buddy/internal/service/chat"
	"github.com/omprakash8639/Buddy/pkg/utils"
)

// NewRouter wires HTTP routes to the conversation service.
func NewRouter(chatSvc *chatservice.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Buddy Chatbot API is running!"})
	})

	sessionHandler := session.New(chatSvc)
	sessionHandler.RegisterRoutes(r)

	wsHandler := ws.New(chatSvc)
	wsHandler.RegisterRoutes(r)

	return r
}
