package response

import (
	"github.com/whist-team/whist-server-go/internal/model"
	"github.com/whist-team/whist-server-go/internal/services/auth"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		Username:    p.Username,
		DisplayName: p.DisplayName,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// Table represents table state in API responses
type Table struct {
	MinPlayers int      `json:"min_players"`
	MaxPlayers int      `json:"max_players"`
	Players    []string `json:"players"`
	Ready      []string `json:"ready"`
	Started    bool     `json:"started"`
	Seating    []string `json:"seating,omitempty"`
	Hand       int      `json:"hand"`
	HandDone   bool     `json:"hand_done"`
}

// TableFromModel converts a model.Table
func TableFromModel(t *model.Table) Table {
	players := make([]string, len(t.Players))
	for i, p := range t.Players {
		players[i] = string(p)
	}

	// Ready set in join order so the listing is stable
	ready := make([]string, 0, len(t.Ready))
	for _, p := range t.Players {
		if t.Ready[p] {
			ready = append(ready, string(p))
		}
	}

	seating := make([]string, len(t.Seating))
	for i, p := range t.Seating {
		seating[i] = string(p)
	}

	return Table{
		MinPlayers: t.MinPlayers,
		MaxPlayers: t.MaxPlayers,
		Players:    players,
		Ready:      ready,
		Started:    t.Started,
		Seating:    seating,
		Hand:       t.Hand,
		HandDone:   t.HandDone,
	}
}

// Room represents a room in API responses. The password hash never leaves
// the server; only the protected flag does.
type Room struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Creator   string `json:"creator"`
	Protected bool   `json:"protected"`
	Table     Table  `json:"table"`
	Version   int64  `json:"version"`
}

// RoomFromModel converts a model.Room
func RoomFromModel(r *model.Room) Room {
	return Room{
		ID:        string(r.ID),
		Name:      r.Name,
		Creator:   string(r.Creator),
		Protected: r.HashedPassword != "",
		Table:     TableFromModel(&r.Table),
		Version:   r.Version,
	}
}

// RoomList is the response for listing rooms
type RoomList struct {
	Rooms []Room `json:"rooms"`
}

// RoomListFromModel converts a slice of rooms
func RoomListFromModel(rooms []*model.Room) RoomList {
	out := RoomList{Rooms: make([]Room, len(rooms))}
	for i, r := range rooms {
		out.Rooms[i] = RoomFromModel(r)
	}
	return out
}
