package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/quizpoker/quizpoker/internal/api/middleware"
	"github.com/quizpoker/quizpoker/internal/api/request"
	"github.com/quizpoker/quizpoker/internal/api/response"
	"github.com/quizpoker/quizpoker/internal/model"
	"github.com/quizpoker/quizpoker/internal/notify"
	"github.com/quizpoker/quizpoker/internal/services/session"
)

// MessageTypeEvent and MessageTypeSnapshot are the websocket message types
const (
	MessageTypeSnapshot = "snapshot"
)

// SessionHandler handles session endpoints. Mutating commands run
// through the registry so per-session execution stays serial, then
// publish their events and fresh per-viewer snapshots.
type SessionHandler struct {
	controller *session.Controller
	registry   *session.Registry
	hubs       *notify.HubManager
	logger     *slog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(controller *session.Controller, registry *session.Registry, hubs *notify.HubManager, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		controller: controller,
		registry:   registry,
		hubs:       hubs,
		logger:     logger,
	}
}

// run executes one command under the session's runner and publishes
// the outcome on success
func (h *SessionHandler) run(ctx context.Context, id model.SessionID, fn func(ctx context.Context) (*model.Session, []model.Event, error)) (*model.Session, error) {
	var result *model.Session
	err := h.registry.Do(ctx, id, func(ctx context.Context) error {
		s, events, err := fn(ctx)
		if err != nil {
			return err
		}
		result = s
		h.publish(s, events)
		return nil
	})
	return result, err
}

// publish pushes events and per-viewer snapshots to watchers
func (h *SessionHandler) publish(s *model.Session, events []model.Event) {
	for _, ev := range events {
		msg := notify.Message{Type: string(ev.Type), Payload: ev.Payload}
		if ev.Target != "" {
			h.hubs.Send(s.ID, ev.Target, msg)
		} else {
			h.hubs.Broadcast(s.ID, msg)
		}
	}

	if len(events) == 0 {
		return
	}

	// Spectators get the public view; seated players each get their own
	h.hubs.Broadcast(s.ID, notify.Message{Type: MessageTypeSnapshot, Payload: model.SnapshotFor(s, "")})
	for id := range s.Players {
		h.hubs.Send(s.ID, id, notify.Message{Type: MessageTypeSnapshot, Payload: model.SnapshotFor(s, id)})
	}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	s, err := h.controller.CreateSession(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionResponse{Session: model.SnapshotFor(s, "")})
}

// Get handles GET /api/v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	s, err := h.controller.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	viewer := middleware.GetPlayerID(r.Context())
	response.JSON(w, http.StatusOK, response.SessionResponse{Session: model.SnapshotFor(s, viewer)})
}

// Join handles POST /api/v1/sessions/{id}/join
func (h *SessionHandler) Join(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	var req request.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	playerID := model.PlayerID(uuid.NewString())
	s, err := h.run(r.Context(), id, func(ctx context.Context) (*model.Session, []model.Event, error) {
		return h.controller.Join(ctx, id, playerID, req.Name, req.AvatarSeed)
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.JoinResponse{
		PlayerID: string(playerID),
		Session:  model.SnapshotFor(s, playerID),
	})
}

// JoinHost handles POST /api/v1/sessions/{id}/host
func (h *SessionHandler) JoinHost(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	var req request.JoinHostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	playerID := model.PlayerID(uuid.NewString())
	s, err := h.run(r.Context(), id, func(ctx context.Context) (*model.Session, []model.Event, error) {
		return h.controller.JoinHost(ctx, id, playerID, req.Name)
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.JoinResponse{
		PlayerID: string(playerID),
		Session:  model.SnapshotFor(s, playerID),
	})
}

// Leave handles POST /api/v1/sessions/{id}/leave
func (h *SessionHandler) Leave(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])
	playerID := middleware.GetPlayerID(r.Context())

	_, err := h.run(r.Context(), id, func(ctx context.Context) (*model.Session, []model.Event, error) {
		return h.controller.Leave(ctx, id, playerID)
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Kick handles POST /api/v1/sessions/{id}/kick
func (h *SessionHandler) Kick(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])
	hostID := middleware.GetPlayerID(r.Context())

	var req request.KickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	_, err := h.run(r.Context(), id, func(ctx context.Context) (*model.Session, []model.Event, error) {
		return h.controller.Kick(ctx, id, hostID, model.PlayerID(req.PlayerID))
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Start handles POST /api/v1/sessions/{id}/start
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])
	hostID := middleware.GetPlayerID(r.Context())

	s, err := h.run(r.Context(), id, func(ctx context.Context) (*model.Session, []model.Event, error) {
		return h.controller.StartHand(ctx, id, hostID)
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionResponse{Session: model.SnapshotFor(s, hostID)})
}

// Answer handles POST /api/v1/sessions/{id}/answer
func (h *SessionHandler) Answer(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])
	playerID := middleware.GetPlayerID(r.Context())

	var req request.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	s, err := h.run(r.Context(), id, func(ctx context.Context) (*model.Session, []model.Event, error) {
		return h.controller.SubmitAnswer(ctx, id, playerID, req.Answer)
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionResponse{Session: model.SnapshotFor(s, playerID)})
}

// Act handles POST /api/v1/sessions/{id}/act
func (h *SessionHandler) Act(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])
	playerID := middleware.GetPlayerID(r.Context())

	var req request.ActRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	s, err := h.run(r.Context(), id, func(ctx context.Context) (*model.Session, []model.Event, error) {
		return h.controller.Act(ctx, id, playerID, req.Action, req.Amount)
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionResponse{Session: model.SnapshotFor(s, playerID)})
}

// Hint handles POST /api/v1/sessions/{id}/hint
func (h *SessionHandler) Hint(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])
	hostID := middleware.GetPlayerID(r.Context())

	s, err := h.run(r.Context(), id, func(ctx context.Context) (*model.Session, []model.Event, error) {
		return h.controller.RevealHint(ctx, id, hostID)
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionResponse{Session: model.SnapshotFor(s, hostID)})
}

// RevealAnswer handles POST /api/v1/sessions/{id}/reveal-answer
func (h *SessionHandler) RevealAnswer(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])
	hostID := middleware.GetPlayerID(r.Context())

	s, err := h.run(r.Context(), id, func(ctx context.Context) (*model.Session, []model.Event, error) {
		return h.controller.RevealAnswer(ctx, id, hostID)
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionResponse{Session: model.SnapshotFor(s, hostID)})
}

// Showdown handles POST /api/v1/sessions/{id}/showdown
func (h *SessionHandler) Showdown(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])
	hostID := middleware.GetPlayerID(r.Context())

	s, err := h.run(r.Context(), id, func(ctx context.Context) (*model.Session, []model.Event, error) {
		return h.controller.ResolveShowdown(ctx, id, hostID)
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionResponse{Session: model.SnapshotFor(s, hostID)})
}

// Reset handles POST /api/v1/sessions/{id}/reset
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])
	hostID := middleware.GetPlayerID(r.Context())

	s, err := h.run(r.Context(), id, func(ctx context.Context) (*model.Session, []model.Event, error) {
		return h.controller.ResetHand(ctx, id, hostID)
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionResponse{Session: model.SnapshotFor(s, hostID)})
}

// ResetGame handles POST /api/v1/sessions/{id}/reset-game
func (h *SessionHandler) ResetGame(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])
	hostID := middleware.GetPlayerID(r.Context())

	s, err := h.run(r.Context(), id, func(ctx context.Context) (*model.Session, []model.Event, error) {
		return h.controller.ResetGame(ctx, id, hostID)
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionResponse{Session: model.SnapshotFor(s, hostID)})
}

// RevealOwn handles POST /api/v1/sessions/{id}/reveal-own
func (h *SessionHandler) RevealOwn(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])
	playerID := middleware.GetPlayerID(r.Context())

	s, err := h.run(r.Context(), id, func(ctx context.Context) (*model.Session, []model.Event, error) {
		return h.controller.RevealOwnAnswer(ctx, id, playerID)
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionResponse{Session: model.SnapshotFor(s, playerID)})
}

// AdjustBalance handles POST /api/v1/sessions/{id}/balance
func (h *SessionHandler) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])
	hostID := middleware.GetPlayerID(r.Context())

	var req request.AdjustBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	s, err := h.run(r.Context(), id, func(ctx context.Context) (*model.Session, []model.Event, error) {
		return h.controller.AdjustBalance(ctx, id, hostID, model.PlayerID(req.PlayerID), req.Delta)
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionResponse{Session: model.SnapshotFor(s, hostID)})
}

// Blinds handles POST /api/v1/sessions/{id}/blinds
func (h *SessionHandler) Blinds(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])
	hostID := middleware.GetPlayerID(r.Context())

	var req request.BlindsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	s, err := h.run(r.Context(), id, func(ctx context.Context) (*model.Session, []model.Event, error) {
		return h.controller.SetBlindsEnabled(ctx, id, hostID, req.Enabled)
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionResponse{Session: model.SnapshotFor(s, hostID)})
}

// Watch handles GET /api/v1/sessions/{id}/watch, upgrading to a
// websocket that streams events and snapshots. Identity comes from the
// header or the player_id query parameter (browsers cannot set headers
// on websocket dials).
func (h *SessionHandler) Watch(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	if _, err := h.controller.GetSession(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	playerID := middleware.GetPlayerID(r.Context())
	if playerID == "" {
		playerID = model.PlayerID(r.URL.Query().Get("player_id"))
	}

	hub := h.hubs.GetOrCreateHub(id)
	notify.ServeWS(w, r, hub, playerID, h.logger)
}
