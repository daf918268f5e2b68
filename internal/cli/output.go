package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Room:
		o.printRoom(v)
	case RoomList:
		o.printRoomList(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// Table response type
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

// Room response type
type Room struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Creator   string `json:"creator"`
	Protected bool   `json:"protected"`
	Table     Table  `json:"table"`
	Version   int64  `json:"version"`
}

// RoomList response type
type RoomList struct {
	Rooms []Room `json:"rooms"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Username: %s\n", p.Username)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printRoom(r Room) {
	fmt.Printf("Room: %s (%s)\n", r.Name, r.ID)
	fmt.Printf("Creator: %s\n", r.Creator)
	if r.Protected {
		fmt.Println("Password protected: yes")
	}
	fmt.Printf("Seats: %d-%d\n", r.Table.MinPlayers, r.Table.MaxPlayers)

	ready := make(map[string]bool, len(r.Table.Ready))
	for _, p := range r.Table.Ready {
		ready[p] = true
	}
	fmt.Printf("Players (%d):\n", len(r.Table.Players))
	for _, p := range r.Table.Players {
		marks := ""
		if p == r.Creator {
			marks += " [creator]"
		}
		if ready[p] {
			marks += " [ready]"
		}
		fmt.Printf("  - %s%s\n", p, marks)
	}

	if r.Table.Started {
		fmt.Printf("Started: yes\n")
		fmt.Printf("Seating: %s\n", strings.Join(r.Table.Seating, ", "))
		state := "in play"
		if r.Table.HandDone {
			state = "done"
		}
		fmt.Printf("Hand: %d (%s)\n", r.Table.Hand, state)
	}
}

func (o *Output) printRoomList(l RoomList) {
	if len(l.Rooms) == 0 {
		fmt.Println("No rooms")
		return
	}
	for _, r := range l.Rooms {
		state := "waiting"
		if r.Table.Started {
			state = fmt.Sprintf("hand %d", r.Table.Hand)
		}
		fmt.Printf("%s  %s  %d/%d players  %s\n",
			r.ID, r.Name, len(r.Table.Players), r.Table.MaxPlayers, state)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
