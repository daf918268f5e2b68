package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/whist-team/whist-server-go/internal/model"
	"github.com/whist-team/whist-server-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
//
// Conditional room saves are done with WATCH/MULTI/EXEC so the version check
// and the write are atomic inside Redis; name uniqueness is done with SETNX
// on the name index. Neither relies on application-tier locking.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Room operations

func (s *Storage) AddRoom(ctx context.Context, room *model.Room) (model.RoomID, error) {
	id := model.RoomID(uuid.NewString())

	// SETNX on the name index reserves the name; the loser of a concurrent
	// create reads the winner's id back out of the index
	reserved, err := s.client.SetNX(ctx, roomNameIndexKey(room.Name), string(id), 0).Result()
	if err != nil {
		return "", err
	}
	if !reserved {
		existing, err := s.client.Get(ctx, roomNameIndexKey(room.Name)).Result()
		if err != nil {
			return "", err
		}
		return model.RoomID(existing), nil
	}

	room.ID = id
	room.Version = 1

	data, err := json.Marshal(room)
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, roomKey(id), data, 0).Err(); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Storage) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	data, err := s.client.Get(ctx, roomKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("room %q: %w", id, model.ErrRoomNotFound)
		}
		return nil, err
	}

	var room model.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Storage) GetRoomByName(ctx context.Context, name string) (*model.Room, error) {
	id, err := s.client.Get(ctx, roomNameIndexKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("room %q: %w", name, model.ErrRoomNotFound)
		}
		return nil, err
	}
	return s.GetRoom(ctx, model.RoomID(id))
}

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	key := roomKey(room.ID)
	newVersion := room.Version + 1

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return fmt.Errorf("room %q: %w", room.ID, model.ErrRoomNotFound)
			}
			return err
		}

		var stored model.Room
		if err := json.Unmarshal(data, &stored); err != nil {
			return err
		}
		if stored.Version != room.Version {
			return fmt.Errorf("room %q: %w", room.ID, model.ErrRoomNotUpdated)
		}

		updated := *room
		updated.Version = newVersion
		payload, err := json.Marshal(&updated)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			return nil
		})
		return err
	}, key)

	// EXEC aborts when the watched key changed between load and write;
	// that is exactly a lost optimistic race
	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("room %q: %w", room.ID, model.ErrRoomNotUpdated)
	}
	if err != nil {
		return err
	}

	room.Version = newVersion
	return nil
}

func (s *Storage) ListRooms(ctx context.Context) ([]*model.Room, error) {
	var rooms []*model.Room
	iter := s.client.Scan(ctx, 0, roomKey("*"), 100).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, err
		}
		var room model.Room
		if err := json.Unmarshal(data, &room); err != nil {
			continue
		}
		rooms = append(rooms, &room)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return rooms, nil
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// Pipeline keeps the record and its username index in step
	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerKey(player.ID), data, 0)
	pipe.Set(ctx, usernameIndexKey(player.Username), string(player.ID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error) {
	id, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return s.GetPlayer(ctx, model.PlayerID(id))
}

// Credentials operations

func (s *Storage) SaveCredentials(ctx context.Context, creds *model.Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, credentialsKey(creds.Username), data, 0).Err()
}

func (s *Storage) GetCredentialsByUsername(ctx context.Context, username string) (*model.Credentials, error) {
	data, err := s.client.Get(ctx, credentialsKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var creds model.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}
