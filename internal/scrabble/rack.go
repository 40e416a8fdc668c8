// internal/scrabble/rack.go
//
// A player's private rack: a fixed array of plain squares holding the
// tiles drawn from the bag.

package scrabble

// RackSize is the number of slots on a rack. The original client lays
// out eight slots and keeps at most seven tiles on them, leaving one
// free for shuffling.
const RackSize = 8

// Rack is a player's private tile holder.
type Rack struct {
	Squares []*Square `json:"squares"`
}

// NewRack constructs an empty rack.
func NewRack() *Rack {
	r := &Rack{Squares: make([]*Square, RackSize)}
	for i := range r.Squares {
		r.Squares[i] = &Square{Type: Normal}
	}
	return r
}

// TileCount counts the tiles currently on the rack.
func (r *Rack) TileCount() int {
	n := 0
	for _, sq := range r.Squares {
		if sq.Tile != nil {
			n++
		}
	}
	return n
}

// Empty reports whether the rack holds no tiles.
func (r *Rack) Empty() bool { return r.TileCount() == 0 }

// Letters returns the letters of every tile on the rack, in slot order.
// Unassigned blanks contribute their empty letter.
func (r *Rack) Letters() []string {
	var out []string
	for _, sq := range r.Squares {
		if sq.Tile != nil {
			out = append(out, sq.Tile.Letter)
		}
	}
	return out
}

// Score sums the point values of the tiles left on the rack; used for
// the end-of-game tally.
func (r *Rack) Score() int {
	total := 0
	for _, sq := range r.Squares {
		if sq.Tile != nil {
			total += sq.Tile.Score
		}
	}
	return total
}

// FillEmpty places the given tiles onto the rack's empty slots, in slot
// order, and reports how many were placed.
func (r *Rack) FillEmpty(tiles []*Tile) int {
	placed := 0
	for _, sq := range r.Squares {
		if placed == len(tiles) {
			break
		}
		if sq.Tile == nil {
			sq.PlaceTile(tiles[placed])
			placed++
		}
	}
	return placed
}
