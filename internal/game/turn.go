// internal/game/turn.go
//
// Turn records and the end-of-game message. The ordered turn slice of
// a game is its authoritative audit log; records are appended once per
// committed action and never mutated afterwards.

package game

import "github.com/mixtape-audio/html-scrabble/internal/scrabble"

// TurnType is the kind of a committed action.
type TurnType string

const (
	TurnMove TurnType = "move"
	TurnPass TurnType = "pass"
	TurnSwap TurnType = "swap"
)

// Placement is one requested tile placement of a move: board
// coordinates, the letter to play and whether a blank supplies it.
type Placement struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Letter string `json:"letter"`
	Blank  bool   `json:"blank,omitempty"`
}

// Turn is one committed action in a game's history.
type Turn struct {
	Type   TurnType `json:"type"`
	Player int      `json:"player"`
	Score  int      `json:"score"`

	// Move turns carry the scored words and the requested placements.
	Move       *scrabble.Move `json:"move,omitempty"`
	Placements []Placement    `json:"placements,omitempty"`

	// Swap turns carry the number of tiles exchanged.
	SwapCount int `json:"count,omitempty"`

	// WhosTurn is stamped with the next player's index when the game
	// continues; absent on the turn that ended the game.
	WhosTurn *int `json:"whosTurn,omitempty"`

	// RemainingTileCount is stamped with the bag's remaining count
	// before the turn is broadcast.
	RemainingTileCount int `json:"remainingTileCount"`
}

// PlayerResult is one player's line in the end message.
type PlayerResult struct {
	Name       string         `json:"name"`
	Score      int            `json:"score"`
	TallyScore int            `json:"tallyScore"`
	Rack       *scrabble.Rack `json:"rack"`
}

// EndMessage is produced exactly once, when a game ends.
type EndMessage struct {
	Reason      string         `json:"reason"`
	Players     []PlayerResult `json:"players"`
	NextGameKey string         `json:"nextGameKey,omitempty"`
}
