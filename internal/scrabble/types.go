// internal/scrabble/types.go
//
// Core type definitions for the Scrabble board model.
// Defines:
//   - Tile: a single letter tile with its point value.
//   - SquareType: premium classification of a board square.
//   - Square: one board (or rack) cell holding at most one tile.

package scrabble

// Tile is a single letter tile. A blank tile has Score 0 and an empty
// Letter until a move assigns one; assignment never changes the score.
type Tile struct {
	Letter string `json:"letter"`
	Score  int    `json:"score"`
}

// IsBlank reports whether the tile is a blank. Blanks are the only
// zero-score tiles in every supported distribution, so the score is the
// authoritative marker even after a letter has been assigned.
func (t *Tile) IsBlank() bool { return t.Score == 0 }

// SquareType classifies the premium value of a board square.
// Possible values:
//   - "Normal":       no premium.
//   - "DoubleLetter": doubles the score of the tile placed on it.
//   - "TripleLetter": triples the score of the tile placed on it.
//   - "DoubleWord":   doubles the score of every word using it.
//   - "TripleWord":   triples the score of every word using it.
type SquareType string

const (
	Normal       SquareType = "Normal"
	DoubleLetter SquareType = "DoubleLetter"
	TripleLetter SquareType = "TripleLetter"
	DoubleWord   SquareType = "DoubleWord"
	TripleWord   SquareType = "TripleWord"
)

// Square holds the state of a single cell of the board or of a rack.
type Square struct {
	Type       SquareType `json:"type"`
	Tile       *Tile      `json:"tile,omitempty"`
	TileLocked bool       `json:"tileLocked,omitempty"`
}

// PlaceTile sets or clears the square's tile. Locking a committed tile
// is the session's job, not the square's.
func (s *Square) PlaceTile(t *Tile) { s.Tile = t }

// Empty reports whether no tile occupies the square.
func (s *Square) Empty() bool { return s.Tile == nil }
