package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/quizpoker/quizpoker/internal/api/handler"
	"github.com/quizpoker/quizpoker/internal/api/middleware"
	"github.com/quizpoker/quizpoker/internal/notify"
	"github.com/quizpoker/quizpoker/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	SessionController *session.Controller
	Registry          *session.Registry
	HubManager        *notify.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	sessionHandler := handler.NewSessionHandler(cfg.SessionController, cfg.Registry, cfg.HubManager, cfg.Logger)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)
	api.Use(middleware.Identity)

	// Session lifecycle (no identity needed yet)
	api.HandleFunc("/sessions", sessionHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", sessionHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/join", sessionHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/host", sessionHandler.JoinHost).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/watch", sessionHandler.Watch).Methods(http.MethodGet)

	// Player and host commands (identity required)
	cmds := api.PathPrefix("/sessions/{id}").Subrouter()
	cmds.Use(middleware.RequireIdentity)
	cmds.HandleFunc("/leave", sessionHandler.Leave).Methods(http.MethodPost)
	cmds.HandleFunc("/answer", sessionHandler.Answer).Methods(http.MethodPost)
	cmds.HandleFunc("/act", sessionHandler.Act).Methods(http.MethodPost)
	cmds.HandleFunc("/reveal-own", sessionHandler.RevealOwn).Methods(http.MethodPost)
	cmds.HandleFunc("/start", sessionHandler.Start).Methods(http.MethodPost)
	cmds.HandleFunc("/hint", sessionHandler.Hint).Methods(http.MethodPost)
	cmds.HandleFunc("/reveal-answer", sessionHandler.RevealAnswer).Methods(http.MethodPost)
	cmds.HandleFunc("/showdown", sessionHandler.Showdown).Methods(http.MethodPost)
	cmds.HandleFunc("/reset", sessionHandler.Reset).Methods(http.MethodPost)
	cmds.HandleFunc("/reset-game", sessionHandler.ResetGame).Methods(http.MethodPost)
	cmds.HandleFunc("/kick", sessionHandler.Kick).Methods(http.MethodPost)
	cmds.HandleFunc("/balance", sessionHandler.AdjustBalance).Methods(http.MethodPost)
	cmds.HandleFunc("/blinds", sessionHandler.Blinds).Methods(http.MethodPost)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
