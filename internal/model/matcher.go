package model

import "github.com/whist-team/whist-server-go/internal/dependencies/random"

// Matcher type identifiers accepted on the wire
const (
	MatcherTypeRandom     = "random"
	MatcherTypeRoundRobin = "robin"
)

// Matcher assigns the seating (and thereby turn) order among the joined
// players when a room starts.
type Matcher interface {
	// Type returns the wire identifier of this strategy
	Type() string
	// Seat returns the seating order for the given players in join order
	Seat(players []PlayerID) []PlayerID
}

// RandomMatcher seats players in a shuffled order
type RandomMatcher struct {
	random random.Random
}

// NewRandomMatcher creates a RandomMatcher using the given randomness source
func NewRandomMatcher(rnd random.Random) *RandomMatcher {
	return &RandomMatcher{random: rnd}
}

// Type returns the wire identifier for random matching
func (m *RandomMatcher) Type() string {
	return MatcherTypeRandom
}

// Seat shuffles the players with a Fisher-Yates pass
func (m *RandomMatcher) Seat(players []PlayerID) []PlayerID {
	seating := make([]PlayerID, len(players))
	copy(seating, players)
	for i := len(seating) - 1; i > 0; i-- {
		j := m.random.Intn(i + 1)
		seating[i], seating[j] = seating[j], seating[i]
	}
	return seating
}

// RoundRobinMatcher seats players in join order
type RoundRobinMatcher struct{}

// NewRoundRobinMatcher creates a RoundRobinMatcher
func NewRoundRobinMatcher() *RoundRobinMatcher {
	return &RoundRobinMatcher{}
}

// Type returns the wire identifier for round-robin matching
func (m *RoundRobinMatcher) Type() string {
	return MatcherTypeRoundRobin
}

// Seat returns the players unchanged
func (m *RoundRobinMatcher) Seat(players []PlayerID) []PlayerID {
	seating := make([]PlayerID, len(players))
	copy(seating, players)
	return seating
}

// MatcherForType resolves a wire identifier to a strategy. Anything other
// than "robin" selects random matching, mirroring the historical wire
// behavior.
func MatcherForType(matcherType string, rnd random.Random) Matcher {
	if matcherType == MatcherTypeRoundRobin {
		return NewRoundRobinMatcher()
	}
	return NewRandomMatcher(rnd)
}
