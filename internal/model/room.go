package model

// RoomID uniquely identifies a stored room
type RoomID string

// PasswordVerifier compares a plaintext secret against a stored hash.
// Implemented by the auth service; the aggregate never hashes anything
// itself.
type PasswordVerifier interface {
	Verify(plain, hash string) bool
}

// Room is the aggregate root combining room metadata with the table state it
// owns. All mutations happen in memory; persistence is an explicit, separate
// step through the room store, which is where concurrent writers are caught.
type Room struct {
	// ID is empty until the room has been stored, then immutable
	ID RoomID
	// Name is unique across rooms and doubles as the creation de-dup key
	Name    string
	Creator PlayerID
	// HashedPassword is empty for rooms that are open to join
	HashedPassword string
	Table          Table
	// Version is managed exclusively by the room store for conditional saves
	Version int64
}

// NewRoom builds a room with the creator already seated. Player bounds
// default to DefaultPlayerCount when zero.
func NewRoom(name string, creator PlayerID, hashedPassword string, minPlayers, maxPlayers int) (*Room, error) {
	if minPlayers == 0 {
		minPlayers = DefaultPlayerCount
	}
	if maxPlayers == 0 {
		maxPlayers = DefaultPlayerCount
	}
	if minPlayers < 1 || maxPlayers < 1 || minPlayers > maxPlayers {
		return nil, ErrInvalidRoomConfig
	}

	room := &Room{
		Name:           name,
		Creator:        creator,
		HashedPassword: hashedPassword,
		Table:          NewTable(name, minPlayers, maxPlayers),
	}
	if err := room.Table.Join(creator); err != nil {
		return nil, err
	}
	return room, nil
}

// Players returns the room's membership in join order
func (r *Room) Players() []PlayerID {
	return r.Table.Players
}

// HasPlayer reports whether the player is a member of this room
func (r *Room) HasPlayer(id PlayerID) bool {
	return r.Table.HasPlayer(id)
}

// Join adds a player to the room. A second join by the same player is
// reported as ErrAlreadyJoined, which callers treat as a successful no-op.
func (r *Room) Join(player PlayerID) error {
	if r.Table.HasPlayer(player) {
		return ErrAlreadyJoined
	}
	return r.Table.Join(player)
}

// Leave removes a player from the room
func (r *Room) Leave(player PlayerID) error {
	if !r.Table.HasPlayer(player) {
		return ErrPlayerNotJoined
	}
	r.Table.Leave(player)
	return nil
}

// ReadyUp marks a member as ready to play
func (r *Room) ReadyUp(player PlayerID) error {
	if !r.Table.HasPlayer(player) {
		return ErrPlayerNotJoined
	}
	r.Table.SetReady(player, true)
	return nil
}

// Unready clears a member's readiness
func (r *Room) Unready(player PlayerID) error {
	if !r.Table.HasPlayer(player) {
		return ErrPlayerNotJoined
	}
	if !r.Table.Ready[player] {
		return ErrPlayerNotReady
	}
	r.Table.SetReady(player, false)
	return nil
}

// Start begins play. Only the creator may start, the room starts at most
// once, and at least MinPlayers members must be ready. The matcher assigns
// the seating order.
func (r *Room) Start(initiator PlayerID, matcher Matcher) error {
	if initiator != r.Creator {
		return ErrNotCreator
	}
	if r.Table.Started {
		return ErrAlreadyStarted
	}
	if r.Table.ReadyCount() < r.Table.MinPlayers {
		return ErrTableNotReady
	}
	r.Table.Start(matcher.Seat(r.Table.Players))
	return nil
}

// NextHand deals the next hand once the current one is resolved
func (r *Room) NextHand() error {
	return r.Table.NextHand()
}

// VerifyPassword reports whether the supplied plaintext grants access to the
// room. An open room with no secret supplied verifies trivially; otherwise
// the password gate decides. Pure; no side effects.
func (r *Room) VerifyPassword(plain string, gate PasswordVerifier) bool {
	if r.HashedPassword == "" && plain == "" {
		return true
	}
	return gate.Verify(plain, r.HashedPassword)
}
