package redis

import (
	"fmt"

	"github.com/whist-team/whist-server-go/internal/model"
)

// Key prefix for all whist server data
const keyPrefix = "whist"

// roomKey returns the Redis key for a Room record
func roomKey(id model.RoomID) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, id)
}

// roomNameIndexKey returns the Redis key for the name -> room_id index.
// The index entry doubles as the creation lock: SETNX on it is what makes
// room names unique without an application-level read-then-write.
func roomNameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:room_name:%s", keyPrefix, name)
}

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// credentialsKey returns the Redis key for a player's credentials
func credentialsKey(username string) string {
	return fmt.Sprintf("%s:credentials:%s", keyPrefix, username)
}
