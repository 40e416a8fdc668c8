// internal/game/snapshot.go
//
// The persisted form of a game. The snapshot is an explicit, versioned
// schema: whatever the store writes must decode back with identical
// semantic content, and an unknown version is rejected outright rather
// than coerced. Transient state (the listener hub, the mutex held by
// the registry) never appears here.

package game

import (
	"encoding/json"
	"fmt"

	"github.com/mixtape-audio/html-scrabble/internal/letters"
	"github.com/mixtape-audio/html-scrabble/internal/scrabble"
)

// SnapshotVersion is the schema version this build reads and writes.
const SnapshotVersion = 1

// Snapshot is the durable representation of one game.
type Snapshot struct {
	Version  int              `json:"v"`
	Key      string           `json:"key"`
	Language string           `json:"language"`
	Players  []*Player        `json:"players"`
	Board    *scrabble.Board  `json:"board"`
	BagTiles []*scrabble.Tile `json:"bagTiles"`
	Turns    []*Turn          `json:"turns"`
	// WhosTurn is nil once the game has ended.
	WhosTurn    *int        `json:"whosTurn,omitempty"`
	Passes      int         `json:"passes"`
	EndMessage  *EndMessage `json:"endMessage,omitempty"`
	NextGameKey string      `json:"nextGameKey,omitempty"`
}

// Snapshot captures the game's durable state.
func (g *Game) Snapshot() *Snapshot {
	s := &Snapshot{
		Version:     SnapshotVersion,
		Key:         g.Key,
		Language:    g.Language,
		Players:     g.Players,
		Board:       g.Board,
		BagTiles:    g.Bag.Tiles(),
		Turns:       g.Turns,
		Passes:      g.Passes,
		EndMessage:  g.EndMessage,
		NextGameKey: g.NextGameKey,
	}
	if !g.Ended() {
		turn := g.WhosTurn
		s.WhosTurn = &turn
	}
	return s
}

// restore rebuilds a live game from its snapshot. The listener set
// starts empty; the bag is reattached to its language's distribution.
func restore(s *Snapshot) (*Game, error) {
	bag, err := letters.RestoreBag(s.Language, s.BagTiles)
	if err != nil {
		return nil, err
	}
	g := &Game{
		Key:         s.Key,
		Language:    s.Language,
		Players:     s.Players,
		Board:       s.Board,
		Bag:         bag,
		Turns:       s.Turns,
		WhosTurn:    -1,
		Passes:      s.Passes,
		EndMessage:  s.EndMessage,
		NextGameKey: s.NextGameKey,
		hub:         newHub(),
	}
	if s.WhosTurn != nil {
		g.WhosTurn = *s.WhosTurn
	}
	return g, nil
}

// EncodeSnapshot serializes a snapshot for the store.
func EncodeSnapshot(s *Snapshot) ([]byte, error) {
	return json.Marshal(s)
}

// DecodeSnapshot deserializes a stored snapshot, rejecting schema
// versions this build does not understand.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode game snapshot: %w", err)
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported game snapshot version %d", s.Version)
	}
	return &s, nil
}
