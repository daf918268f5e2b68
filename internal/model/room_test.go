package model

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type passGate struct {
	accept map[string]string // plain -> hash pairs that verify
}

func (g *passGate) Verify(plain, hash string) bool {
	return g.accept[plain] == hash && hash != ""
}

type RoomSuite struct {
	suite.Suite
}

func TestRoomSuite(t *testing.T) {
	suite.Run(t, new(RoomSuite))
}

func (s *RoomSuite) newRoom(min, max int) *Room {
	room, err := NewRoom("table-9", "alice", "", min, max)
	s.Require().NoError(err)
	return room
}

// NewRoom tests

func (s *RoomSuite) TestNewRoomAutoJoinsCreator() {
	room := s.newRoom(2, 4)

	s.Equal("table-9", room.Name)
	s.Equal(PlayerID("alice"), room.Creator)
	s.Equal([]PlayerID{"alice"}, room.Players())
	s.Empty(room.ID)
	s.False(room.Table.Started)
}

func (s *RoomSuite) TestNewRoomDefaultsPlayerBounds() {
	room, err := NewRoom("table-9", "alice", "", 0, 0)
	s.Require().NoError(err)

	s.Equal(DefaultPlayerCount, room.Table.MinPlayers)
	s.Equal(DefaultPlayerCount, room.Table.MaxPlayers)
}

func (s *RoomSuite) TestNewRoomRejectsMinAboveMax() {
	_, err := NewRoom("table-9", "alice", "", 5, 2)
	s.ErrorIs(err, ErrInvalidRoomConfig)
}

func (s *RoomSuite) TestNewRoomRejectsNonPositiveBounds() {
	_, err := NewRoom("table-9", "alice", "", -1, 4)
	s.ErrorIs(err, ErrInvalidRoomConfig)

	_, err = NewRoom("table-9", "alice", "", 2, -1)
	s.ErrorIs(err, ErrInvalidRoomConfig)
}

// Join tests

func (s *RoomSuite) TestJoinAddsPlayer() {
	room := s.newRoom(2, 4)

	err := room.Join("bob")
	s.Require().NoError(err)
	s.Equal([]PlayerID{"alice", "bob"}, room.Players())
}

func (s *RoomSuite) TestJoinTwiceIsBenignAndKeepsMembership() {
	room := s.newRoom(2, 4)
	s.Require().NoError(room.Join("bob"))

	err := room.Join("bob")
	s.ErrorIs(err, ErrAlreadyJoined)
	s.Len(room.Players(), 2)
}

func (s *RoomSuite) TestJoinFailsWhenFull() {
	room := s.newRoom(1, 2)
	s.Require().NoError(room.Join("bob"))

	err := room.Join("carol")
	s.ErrorIs(err, ErrRoomFull)
	s.Len(room.Players(), 2)
}

// Leave tests

func (s *RoomSuite) TestLeaveRemovesPlayerAndReadiness() {
	room := s.newRoom(2, 4)
	s.Require().NoError(room.Join("bob"))
	s.Require().NoError(room.ReadyUp("bob"))

	err := room.Leave("bob")
	s.Require().NoError(err)
	s.Equal([]PlayerID{"alice"}, room.Players())
	s.Equal(0, room.Table.ReadyCount())
}

func (s *RoomSuite) TestLeaveFailsForNonMember() {
	room := s.newRoom(2, 4)
	s.ErrorIs(room.Leave("bob"), ErrPlayerNotJoined)
}

// Readiness tests

func (s *RoomSuite) TestReadyUpFailsForNonMember() {
	room := s.newRoom(2, 4)
	s.ErrorIs(room.ReadyUp("bob"), ErrPlayerNotJoined)
}

func (s *RoomSuite) TestUnreadyFailsForNonMember() {
	room := s.newRoom(2, 4)
	s.ErrorIs(room.Unready("bob"), ErrPlayerNotJoined)
}

func (s *RoomSuite) TestUnreadyFailsWhenNotReady() {
	room := s.newRoom(2, 4)
	s.Require().NoError(room.Join("bob"))

	s.ErrorIs(room.Unready("bob"), ErrPlayerNotReady)
}

func (s *RoomSuite) TestReadyUnreadyRoundTrip() {
	room := s.newRoom(2, 4)
	s.Require().NoError(room.ReadyUp("alice"))
	s.Equal(1, room.Table.ReadyCount())

	s.Require().NoError(room.Unready("alice"))
	s.Equal(0, room.Table.ReadyCount())
}

// Start tests

func (s *RoomSuite) TestStartFailsForNonCreator() {
	room := s.newRoom(2, 4)
	s.Require().NoError(room.Join("bob"))
	s.Require().NoError(room.ReadyUp("alice"))
	s.Require().NoError(room.ReadyUp("bob"))

	err := room.Start("bob", NewRoundRobinMatcher())
	s.ErrorIs(err, ErrNotCreator)
	s.False(room.Table.Started)
}

func (s *RoomSuite) TestStartFailsBelowMinReady() {
	room := s.newRoom(2, 4)
	s.Require().NoError(room.Join("bob"))
	s.Require().NoError(room.ReadyUp("alice"))

	err := room.Start("alice", NewRoundRobinMatcher())
	s.ErrorIs(err, ErrTableNotReady)

	// Raising the ready count to the minimum makes start succeed
	s.Require().NoError(room.ReadyUp("bob"))
	s.Require().NoError(room.Start("alice", NewRoundRobinMatcher()))
	s.True(room.Table.Started)
}

func (s *RoomSuite) TestStartIsIrreversible() {
	room := s.newRoom(1, 4)
	s.Require().NoError(room.ReadyUp("alice"))
	s.Require().NoError(room.Start("alice", NewRoundRobinMatcher()))

	err := room.Start("alice", NewRoundRobinMatcher())
	s.ErrorIs(err, ErrAlreadyStarted)
}

func (s *RoomSuite) TestStartAssignsSeating() {
	room := s.newRoom(2, 4)
	s.Require().NoError(room.Join("bob"))
	s.Require().NoError(room.ReadyUp("alice"))
	s.Require().NoError(room.ReadyUp("bob"))

	s.Require().NoError(room.Start("alice", NewRoundRobinMatcher()))
	s.Equal([]PlayerID{"alice", "bob"}, room.Table.Seating)
}

// NextHand tests

func (s *RoomSuite) TestNextHandBeforeStart() {
	room := s.newRoom(2, 4)
	s.ErrorIs(room.NextHand(), ErrTableNotStarted)
}

func (s *RoomSuite) TestNextHandBlocksWhileHandUnresolved() {
	room := s.newRoom(1, 4)
	s.Require().NoError(room.ReadyUp("alice"))
	s.Require().NoError(room.Start("alice", NewRoundRobinMatcher()))

	s.Require().NoError(room.NextHand())
	s.Equal(1, room.Table.Hand)

	s.ErrorIs(room.NextHand(), ErrHandNotDone)

	s.Require().NoError(room.Table.FinishHand())
	s.Require().NoError(room.NextHand())
	s.Equal(2, room.Table.Hand)
}

// VerifyPassword tests

func (s *RoomSuite) TestVerifyPasswordOpenRoom() {
	gate := &passGate{accept: map[string]string{}}
	room := s.newRoom(2, 4)

	s.True(room.VerifyPassword("", gate))
	s.False(room.VerifyPassword("secret", gate))
}

func (s *RoomSuite) TestVerifyPasswordProtectedRoom() {
	gate := &passGate{accept: map[string]string{"secret": "hash-of-secret"}}
	room, err := NewRoom("table-9", "alice", "hash-of-secret", 2, 4)
	s.Require().NoError(err)

	s.True(room.VerifyPassword("secret", gate))
	s.False(room.VerifyPassword("wrong", gate))
	s.False(room.VerifyPassword("", gate))
}
