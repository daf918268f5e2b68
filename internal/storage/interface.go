package storage

import (
	"context"

	"github.com/whist-team/whist-server-go/internal/model"
)

// Storage defines the interface for data persistence.
//
// Room writes follow an optimistic-concurrency contract: SaveRoom is a
// conditional update keyed on the record version captured when the room was
// loaded. Of N concurrent saves based on the same snapshot at most one
// succeeds; the rest receive model.ErrRoomNotUpdated and must reload. The
// check-and-set must use the backing store's own conditional-write primitive,
// never an application-level read-then-write.
type Storage interface {
	// Room operations
	//
	// AddRoom stores a new room and returns its assigned id. Creation is
	// idempotent on the room name: if a room with the same name already
	// exists, the existing room's id is returned and nothing is inserted.
	AddRoom(ctx context.Context, room *model.Room) (model.RoomID, error)
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	GetRoomByName(ctx context.Context, name string) (*model.Room, error)
	// SaveRoom conditionally updates an existing room. It fails with
	// model.ErrRoomNotFound when no record has the room's id and with
	// model.ErrRoomNotUpdated when the stored version has moved past the
	// caller's snapshot.
	SaveRoom(ctx context.Context, room *model.Room) error
	// ListRooms returns every stored room; listings only, the transition
	// flow never uses it.
	ListRooms(ctx context.Context) ([]*model.Room, error)

	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error)

	// Credentials operations
	SaveCredentials(ctx context.Context, creds *model.Credentials) error
	GetCredentialsByUsername(ctx context.Context, username string) (*model.Credentials, error)
}
