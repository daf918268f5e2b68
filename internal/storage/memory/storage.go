package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/whist-team/whist-server-go/internal/model"
	"github.com/whist-team/whist-server-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	rooms         map[model.RoomID]*model.Room
	roomNameIndex map[string]model.RoomID
	players       map[model.PlayerID]*model.Player
	usernameIndex map[string]model.PlayerID
	credentials   map[string]*model.Credentials
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		rooms:         make(map[model.RoomID]*model.Room),
		roomNameIndex: make(map[string]model.RoomID),
		players:       make(map[model.PlayerID]*model.Player),
		usernameIndex: make(map[string]model.PlayerID),
		credentials:   make(map[string]*model.Credentials),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// cloneRoom deep-copies a room so that loaded aggregates never alias the
// stored record. Two callers loading the same room must race at save time,
// not through shared memory.
func cloneRoom(r *model.Room) *model.Room {
	c := *r
	c.Table.Players = append([]model.PlayerID(nil), r.Table.Players...)
	c.Table.Seating = append([]model.PlayerID(nil), r.Table.Seating...)
	c.Table.Ready = make(map[model.PlayerID]bool, len(r.Table.Ready))
	for p, ready := range r.Table.Ready {
		c.Table.Ready[p] = ready
	}
	return &c
}

// Room operations

func (s *Storage) AddRoom(ctx context.Context, room *model.Room) (model.RoomID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Idempotent create: a second room with the same name is not inserted,
	// the existing id is handed back instead
	if existing, ok := s.roomNameIndex[room.Name]; ok {
		return existing, nil
	}

	id := model.RoomID(uuid.NewString())
	room.ID = id
	room.Version = 1

	s.rooms[id] = cloneRoom(room)
	s.roomNameIndex[room.Name] = id
	return id, nil
}

func (s *Storage) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, fmt.Errorf("room %q: %w", id, model.ErrRoomNotFound)
	}
	return cloneRoom(room), nil
}

func (s *Storage) GetRoomByName(ctx context.Context, name string) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.roomNameIndex[name]
	if !ok {
		return nil, fmt.Errorf("room %q: %w", name, model.ErrRoomNotFound)
	}
	room, ok := s.rooms[id]
	if !ok {
		return nil, fmt.Errorf("room %q: %w", name, model.ErrRoomNotFound)
	}
	return cloneRoom(room), nil
}

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.rooms[room.ID]
	if !ok {
		return fmt.Errorf("room %q: %w", room.ID, model.ErrRoomNotFound)
	}
	if stored.Version != room.Version {
		return fmt.Errorf("room %q: %w", room.ID, model.ErrRoomNotUpdated)
	}

	room.Version++
	s.rooms[room.ID] = cloneRoom(room)
	return nil
}

func (s *Storage) ListRooms(ctx context.Context) ([]*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rooms := make([]*model.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		rooms = append(rooms, cloneRoom(room))
	}
	return rooms, nil
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := *player
	s.players[player.ID] = &p
	s.usernameIndex[player.Username] = player.ID
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := *player
	return &p, nil
}

func (s *Storage) GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := *player
	return &p, nil
}

// Credentials operations

func (s *Storage) SaveCredentials(ctx context.Context, creds *model.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *creds
	s.credentials[creds.Username] = &c
	return nil
}

func (s *Storage) GetCredentialsByUsername(ctx context.Context, username string) (*model.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	creds, ok := s.credentials[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	c := *creds
	return &c, nil
}
