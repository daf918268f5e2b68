package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "events <id>",
		Short: "Stream room events over websocket",
		Long: `Connect to the room's event endpoint and stream events in real-time.

Events include:
  - player_joined: A player joined the room
  - player_left: A player left the room
  - room_started: Play has started
  - next_hand: The next hand was dealt

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return streamEvents(args[0], jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// roomEvent mirrors the wire shape of a room event
type roomEvent struct {
	Type      string    `json:"type"`
	RoomID    string    `json:"room_id"`
	Player    string    `json:"player,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func streamEvents(roomID string, jsonOutput bool) error {
	wsURL, err := eventsURL(cfg.ServerURL, roomID, cfg.Token)
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
		_ = conn.Close()
	}()

	fmt.Fprintf(os.Stderr, "Connected to room %s, streaming events...\n", roomID)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("connection lost: %w", err)
		}

		if jsonOutput {
			fmt.Println(string(message))
			continue
		}

		var event roomEvent
		if err := json.Unmarshal(message, &event); err != nil {
			fmt.Println(string(message))
			continue
		}

		line := fmt.Sprintf("[%s] %s", event.Timestamp.Format(time.TimeOnly), event.Type)
		if event.Player != "" {
			line += " " + event.Player
		}
		fmt.Println(line)
	}
}

// eventsURL turns the configured HTTP base URL into the websocket endpoint,
// carrying the session token as a query parameter
func eventsURL(serverURL, roomID, token string) (string, error) {
	u, err := url.Parse(strings.TrimSuffix(serverURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}

	u.Path += "/api/v1/rooms/" + roomID + "/events"
	if token != "" {
		q := u.Query()
		q.Set("token", token)
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}
