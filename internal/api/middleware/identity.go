package middleware

import (
	"context"
	"net/http"

	"github.com/quizpoker/quizpoker/internal/api/apierr"
	"github.com/quizpoker/quizpoker/internal/model"
)

// PlayerIDHeader carries the caller's connection identity. The server
// issues it on join; there are no accounts.
const PlayerIDHeader = "X-Player-ID"

type contextKey string

const playerIDKey contextKey = "player_id"

// Identity extracts the player ID header into the request context.
// The header is optional here; handlers that need it use RequireIdentity.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get(PlayerIDHeader); id != "" {
			r = r.WithContext(context.WithValue(r.Context(), playerIDKey, model.PlayerID(id)))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireIdentity rejects requests without a player ID header
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetPlayerID(r.Context()) == "" {
			apierr.WriteError(w, apierr.NewUnauthorizedError())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetPlayerID returns the caller's player ID, or empty
func GetPlayerID(ctx context.Context) model.PlayerID {
	if id, ok := ctx.Value(playerIDKey).(model.PlayerID); ok {
		return id
	}
	return ""
}
