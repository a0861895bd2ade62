package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quizpoker/quizpoker/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidName         = "INVALID_NAME"
	CodeInvalidAnswer       = "INVALID_ANSWER"
	CodeInvalidAmount       = "INVALID_AMOUNT"
	CodeInvalidAction       = "INVALID_ACTION"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeNotHost             = "NOT_HOST"
	CodeHostExists          = "HOST_EXISTS"
	CodeNotYourTurn         = "NOT_YOUR_TURN"
	CodeAlreadyFolded       = "ALREADY_FOLDED"
	CodeWrongPhase          = "WRONG_PHASE"
	CodeNoActiveQuestion    = "NO_ACTIVE_QUESTION"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeSessionNotFound     = "SESSION_NOT_FOUND"
	CodeNameTaken           = "NAME_TAKEN"
	CodeInsufficientFunds   = "INSUFFICIENT_FUNDS"
	CodeRaiseTooSmall       = "RAISE_TOO_SMALL"
	CodeInsufficientPlayers = "INSUFFICIENT_PLAYERS"
	CodeNoQuestions         = "NO_QUESTIONS"
	CodeNoHints             = "NO_HINTS"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Session not found"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrNameTaken):
		return &httpError{http.StatusConflict, APIError{CodeNameTaken, "Display name is already connected"}}
	case errors.Is(err, model.ErrHostExists):
		return &httpError{http.StatusConflict, APIError{CodeHostExists, "Session already has a host"}}
	case errors.Is(err, model.ErrNotHost):
		return &httpError{http.StatusForbidden, APIError{CodeNotHost, "Only the host can perform this action"}}
	case errors.Is(err, model.ErrWrongPhase):
		return &httpError{http.StatusConflict, APIError{CodeWrongPhase, "Command not valid in the current phase"}}
	case errors.Is(err, model.ErrNoActiveQuestion):
		return &httpError{http.StatusConflict, APIError{CodeNoActiveQuestion, "No question is in play"}}
	case errors.Is(err, model.ErrNotYourTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrAlreadyFolded):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyFolded, "Already folded"}}
	case errors.Is(err, model.ErrPlayerAllIn):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyFolded, "Player is all-in"}}
	case errors.Is(err, model.ErrInsufficientBalance):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientFunds, "Insufficient balance"}}
	case errors.Is(err, model.ErrRaiseTooSmall):
		return &httpError{http.StatusBadRequest, APIError{CodeRaiseTooSmall, "Raise is below the table minimum"}}
	case errors.Is(err, model.ErrInvalidName):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidName, "Display name must be 1-32 characters"}}
	case errors.Is(err, model.ErrInvalidAnswer):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidAnswer, "Invalid answer"}}
	case errors.Is(err, model.ErrInvalidAmount):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidAmount, "Invalid amount"}}
	case errors.Is(err, model.ErrInvalidAction):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidAction, "Unknown action"}}
	case errors.Is(err, model.ErrInsufficientPlayers):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientPlayers, "Not enough participants to start"}}
	case errors.Is(err, model.ErrNoQuestions):
		return &httpError{http.StatusConflict, APIError{CodeNoQuestions, "No questions available"}}
	case errors.Is(err, model.ErrNoHintsRemaining):
		return &httpError{http.StatusConflict, APIError{CodeNoHints, "No more hints available"}}
	case errors.Is(err, model.ErrNoContenders):
		return &httpError{http.StatusConflict, APIError{CodeWrongPhase, "No players left in the hand"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Player identity required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
