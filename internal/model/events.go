package model

import "time"

// EventType identifies the type of room event pushed to clients
type EventType string

const (
	EventRoomStarted  EventType = "room_started"
	EventPlayerJoined EventType = "player_joined"
	EventPlayerLeft   EventType = "player_left"
	EventNextHand     EventType = "next_hand"
)

// Event describes a committed room state change. Events are best-effort
// notifications; they are never part of the transactional outcome.
type Event struct {
	Type      EventType `json:"type"`
	RoomID    RoomID    `json:"room_id"`
	Player    PlayerID  `json:"player,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
