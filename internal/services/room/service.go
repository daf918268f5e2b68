package room

import (
	"context"
	"errors"
	"log/slog"

	"github.com/whist-team/whist-server-go/internal/dependencies/clock"
	"github.com/whist-team/whist-server-go/internal/dependencies/random"
	"github.com/whist-team/whist-server-go/internal/model"
	"github.com/whist-team/whist-server-go/internal/storage"
)

// Notifier delivers room events to subscribed clients. Delivery is
// best-effort; the service never waits on it or fails an operation over it.
type Notifier interface {
	Publish(event model.Event)
}

// NopNotifier discards all events
type NopNotifier struct{}

func (NopNotifier) Publish(model.Event) {}

// PasswordGate hashes and verifies room passwords
type PasswordGate interface {
	model.PasswordVerifier
	HashPassword(password string) (string, error)
}

// Service orchestrates room lifecycle operations. Every mutating operation
// follows the same shape: load the aggregate, run the transition in memory,
// then save conditionally. A lost save surfaces as model.ErrRoomNotUpdated
// and the caller decides whether to retry; the service never loops itself.
type Service struct {
	storage  storage.Storage
	gate     PasswordGate
	notifier Notifier
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger
}

// CreateParams carries the client-supplied room settings
type CreateParams struct {
	Name       string
	Password   string
	MinPlayers int
	MaxPlayers int
	Matcher    string
}

// New creates a new room service
func New(
	storage storage.Storage,
	gate PasswordGate,
	notifier Notifier,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Service{
		storage:  storage,
		gate:     gate,
		notifier: notifier,
		clock:    clock,
		random:   random,
		logger:   logger,
	}
}

// Create builds a room with the creator seated and stores it. Creation is
// idempotent on the room name: a second create with an existing name returns
// the already stored room and the new settings are discarded.
func (s *Service) Create(ctx context.Context, creator model.PlayerID, params CreateParams) (*model.Room, error) {
	hash, err := s.gate.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	room, err := model.NewRoom(params.Name, creator, hash, params.MinPlayers, params.MaxPlayers)
	if err != nil {
		return nil, err
	}

	id, err := s.storage.AddRoom(ctx, room)
	if err != nil {
		return nil, err
	}
	if id != room.ID {
		// Name already taken; hand back the existing room instead
		return s.storage.GetRoom(ctx, id)
	}

	s.logger.InfoContext(ctx, "room created",
		"room_id", room.ID,
		"room_name", room.Name,
		"creator", creator,
	)
	return room, nil
}

// Get retrieves a room by id
func (s *Service) Get(ctx context.Context, id model.RoomID) (*model.Room, error) {
	return s.storage.GetRoom(ctx, id)
}

// GetByName retrieves a room by its unique name
func (s *Service) GetByName(ctx context.Context, name string) (*model.Room, error) {
	return s.storage.GetRoomByName(ctx, name)
}

// List returns all rooms
func (s *Service) List(ctx context.Context) ([]*model.Room, error) {
	return s.storage.ListRooms(ctx)
}

// Join adds a player to a room, checking its password first. Joining a room
// the player is already in succeeds without touching storage.
func (s *Service) Join(ctx context.Context, id model.RoomID, player model.PlayerID, password string) (*model.Room, error) {
	room, err := s.storage.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	if !room.VerifyPassword(password, s.gate) {
		return nil, model.ErrWrongPassword
	}

	if err := room.Join(player); err != nil {
		if errors.Is(err, model.ErrAlreadyJoined) {
			return room, nil
		}
		return nil, err
	}

	if err := s.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	s.publish(ctx, model.Event{
		Type:      model.EventPlayerJoined,
		RoomID:    room.ID,
		Player:    player,
		Timestamp: s.clock.Now(),
	})
	return room, nil
}

// Leave removes a player from a room
func (s *Service) Leave(ctx context.Context, id model.RoomID, player model.PlayerID) (*model.Room, error) {
	room, err := s.storage.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := room.Leave(player); err != nil {
		return nil, err
	}

	if err := s.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	s.publish(ctx, model.Event{
		Type:      model.EventPlayerLeft,
		RoomID:    room.ID,
		Player:    player,
		Timestamp: s.clock.Now(),
	})
	return room, nil
}

// ReadyUp marks a player as ready to start
func (s *Service) ReadyUp(ctx context.Context, id model.RoomID, player model.PlayerID) (*model.Room, error) {
	return s.transition(ctx, id, func(room *model.Room) error {
		return room.ReadyUp(player)
	})
}

// Unready clears a player's readiness
func (s *Service) Unready(ctx context.Context, id model.RoomID, player model.PlayerID) (*model.Room, error) {
	return s.transition(ctx, id, func(room *model.Room) error {
		return room.Unready(player)
	})
}

// Start begins play. Only the creator may start, and only once every joined
// player is ready and the minimum seat count is met.
func (s *Service) Start(ctx context.Context, id model.RoomID, initiator model.PlayerID, matcherType string) (*model.Room, error) {
	room, err := s.storage.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	matcher := model.MatcherForType(matcherType, s.random)
	if err := room.Start(initiator, matcher); err != nil {
		return nil, err
	}

	if err := s.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "room started",
		"room_id", room.ID,
		"matcher", matcher.Type(),
		"players", len(room.Players()),
	)
	s.publish(ctx, model.Event{
		Type:      model.EventRoomStarted,
		RoomID:    room.ID,
		Timestamp: s.clock.Now(),
	})
	return room, nil
}

// NextHand advances a started room to its next hand
func (s *Service) NextHand(ctx context.Context, id model.RoomID, player model.PlayerID) (*model.Room, error) {
	room, err := s.storage.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	if !room.HasPlayer(player) {
		return nil, model.ErrPlayerNotJoined
	}
	if err := room.NextHand(); err != nil {
		return nil, err
	}

	if err := s.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	s.publish(ctx, model.Event{
		Type:      model.EventNextHand,
		RoomID:    room.ID,
		Player:    player,
		Timestamp: s.clock.Now(),
	})
	return room, nil
}

// transition is the load, mutate, save shape shared by the simple operations
func (s *Service) transition(ctx context.Context, id model.RoomID, fn func(*model.Room) error) (*model.Room, error) {
	room, err := s.storage.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(room); err != nil {
		return nil, err
	}
	if err := s.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// publish hands the event to the notifier on its own goroutine so a slow
// subscriber cannot stall the request path
func (s *Service) publish(ctx context.Context, event model.Event) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.ErrorContext(ctx, "notifier panicked", "panic", r, "event", event.Type)
			}
		}()
		s.notifier.Publish(event)
	}()
}
