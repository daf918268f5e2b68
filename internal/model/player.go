package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player represents a card-game participant.
// Identity is owned by the auth service; rooms only reference the ID.
type Player struct {
	ID          PlayerID
	Username    string // login username, unique and immutable
	DisplayName string
	CreatedAt   time.Time
}

// Credentials holds a player's authentication data.
// Stored separately so password hashes never travel with room state.
type Credentials struct {
	PlayerID     PlayerID
	Username     string
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
