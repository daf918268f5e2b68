package model

// DefaultPlayerCount is used for both player bounds when a room is created
// without explicit limits.
const DefaultPlayerCount = 4

// Table is the card-game state owned by a Room. It tracks membership,
// readiness, seating and hand progression; the rules of play themselves live
// behind the engine that consumes this state.
type Table struct {
	Name       string
	MinPlayers int
	MaxPlayers int

	// Players in join order
	Players []PlayerID
	Ready   map[PlayerID]bool

	Started bool
	// Seating order assigned by the matcher at start time; empty until started
	Seating []PlayerID

	// Hand progression. Hand counts dealt hands; HandDone marks the current
	// hand as resolved so the next one may be dealt.
	Hand     int
	HandDone bool
}

// NewTable creates a table with no players seated
func NewTable(name string, minPlayers, maxPlayers int) Table {
	return Table{
		Name:       name,
		MinPlayers: minPlayers,
		MaxPlayers: maxPlayers,
		Players:    []PlayerID{},
		Ready:      map[PlayerID]bool{},
	}
}

// HasPlayer reports whether the player is a member of this table
func (t *Table) HasPlayer(id PlayerID) bool {
	for _, p := range t.Players {
		if p == id {
			return true
		}
	}
	return false
}

// ReadyCount returns the number of players currently marked ready
func (t *Table) ReadyCount() int {
	count := 0
	for _, ready := range t.Ready {
		if ready {
			count++
		}
	}
	return count
}

// Join seats a player at the table. Membership uniqueness is enforced by the
// Room; the table only enforces capacity.
func (t *Table) Join(id PlayerID) error {
	if len(t.Players) >= t.MaxPlayers {
		return ErrRoomFull
	}
	t.Players = append(t.Players, id)
	return nil
}

// Leave removes a player and clears their readiness
func (t *Table) Leave(id PlayerID) {
	for i, p := range t.Players {
		if p == id {
			t.Players = append(t.Players[:i], t.Players[i+1:]...)
			break
		}
	}
	delete(t.Ready, id)
}

// SetReady marks a seated player ready or not ready
func (t *Table) SetReady(id PlayerID, ready bool) {
	if t.Ready == nil {
		t.Ready = map[PlayerID]bool{}
	}
	if ready {
		t.Ready[id] = true
	} else {
		delete(t.Ready, id)
	}
}

// Start flips the started flag and records the seating order. Validation of
// who may start, and with how many ready players, is the Room's job.
func (t *Table) Start(seating []PlayerID) {
	t.Started = true
	t.Seating = seating
}

// NextHand deals the next hand. The first hand may be dealt as soon as the
// table has started; after that a hand must be resolved before the next one.
func (t *Table) NextHand() error {
	if !t.Started {
		return ErrTableNotStarted
	}
	if t.Hand > 0 && !t.HandDone {
		return ErrHandNotDone
	}
	t.Hand++
	t.HandDone = false
	return nil
}

// FinishHand marks the current hand as resolved. Invoked by the play engine
// once tricks and scoring for the hand are complete.
func (t *Table) FinishHand() error {
	if !t.Started || t.Hand == 0 {
		return ErrTableNotStarted
	}
	t.HandDone = true
	return nil
}
