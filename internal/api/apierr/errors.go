package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/whist-team/whist-server-go/internal/model"
	"github.com/whist-team/whist-server-go/internal/services/auth"
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
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeUsernameTaken      = "USERNAME_TAKEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeRoomNotFound       = "ROOM_NOT_FOUND"
	CodeRoomConflict       = "ROOM_CONFLICT"
	CodeRoomFull           = "ROOM_FULL"
	CodeNotJoined          = "NOT_JOINED"
	CodeNotReady           = "NOT_READY"
	CodeNotCreator         = "NOT_CREATOR"
	CodeAlreadyStarted     = "ALREADY_STARTED"
	CodeNotEnoughReady     = "NOT_ENOUGH_READY"
	CodeNotStarted         = "NOT_STARTED"
	CodeHandNotDone        = "HAND_NOT_DONE"
	CodeInvalidRoomConfig  = "INVALID_ROOM_CONFIG"
	CodeWrongPassword      = "WRONG_PASSWORD"
	CodeInternalError      = "INTERNAL_ERROR"
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
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrUsernameTaken):
		return &httpError{http.StatusConflict, APIError{CodeUsernameTaken, "Username already taken"}}
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoomNotFound, "Room not found"}}
	case errors.Is(err, model.ErrRoomNotUpdated):
		return &httpError{http.StatusConflict, APIError{CodeRoomConflict, "Room was updated concurrently, retry"}}
	case errors.Is(err, model.ErrRoomFull):
		return &httpError{http.StatusConflict, APIError{CodeRoomFull, "Room is full"}}
	case errors.Is(err, model.ErrPlayerNotJoined):
		return &httpError{http.StatusNotFound, APIError{CodeNotJoined, "Player has not joined this room"}}
	case errors.Is(err, model.ErrPlayerNotReady):
		return &httpError{http.StatusConflict, APIError{CodeNotReady, "Player is not ready"}}
	case errors.Is(err, model.ErrNotCreator):
		return &httpError{http.StatusForbidden, APIError{CodeNotCreator, "Only the room creator can perform this action"}}
	case errors.Is(err, model.ErrAlreadyStarted):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyStarted, "Room has already started"}}
	case errors.Is(err, model.ErrTableNotReady):
		return &httpError{http.StatusConflict, APIError{CodeNotEnoughReady, "Not enough ready players to start"}}
	case errors.Is(err, model.ErrTableNotStarted):
		return &httpError{http.StatusConflict, APIError{CodeNotStarted, "Room has not started"}}
	case errors.Is(err, model.ErrHandNotDone):
		return &httpError{http.StatusConflict, APIError{CodeHandNotDone, "Current hand is not done"}}
	case errors.Is(err, model.ErrInvalidRoomConfig):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRoomConfig, "Invalid room configuration"}}
	case errors.Is(err, model.ErrWrongPassword):
		return &httpError{http.StatusForbidden, APIError{CodeWrongPassword, "Wrong room password"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}

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
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
