package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrUsernameTaken  = errors.New("username already taken")

	// Room errors
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomNotUpdated    = errors.New("room not updated")
	ErrRoomFull          = errors.New("room is full")
	ErrAlreadyJoined     = errors.New("player has already joined")
	ErrPlayerNotJoined   = errors.New("player has not joined")
	ErrPlayerNotReady    = errors.New("player is not ready")
	ErrNotCreator        = errors.New("player is not the room creator")
	ErrAlreadyStarted    = errors.New("room has already started")
	ErrTableNotReady     = errors.New("not enough ready players to start")
	ErrTableNotStarted   = errors.New("room has not started")
	ErrHandNotDone       = errors.New("current hand is not done")
	ErrInvalidRoomConfig = errors.New("invalid room configuration")
	ErrWrongPassword     = errors.New("wrong room password")
)
