// internal/scrabble/move.go
//
// The move evaluator. Given a board whose unlocked tiles are the
// tentatively placed ones, it either rejects the placement geometry or
// returns the scored words. Dictionary legality is deliberately not
// checked here; players police each other's words.
//
// Rules enforced:
//   - At least one new tile, all in a single row or column.
//   - The occupied run covering the new tiles has no gaps.
//   - The first move of a game covers the center square and uses at
//     least two tiles.
//   - Every later move connects to a previously locked tile, either in
//     its main word or through a cross word.
//
// Scoring:
//   - Letter premiums count only under newly placed tiles; likewise
//     word premiums, which apply to every word using the square.
//   - Placing seven tiles earns the 50-point bonus.

package scrabble

import (
	"errors"
	"sort"
)

// Word is one scored word of a move.
type Word struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// Move is the accepted result of evaluating a placement.
type Move struct {
	Words []Word `json:"words"`
	Score int    `json:"score"`
}

// Placement geometry rejections. The session wraps these into its
// invalid-move error so callers can render them directly.
var (
	ErrNoTilesPlaced    = errors.New("move does not place any new tiles")
	ErrTilesNotInLine   = errors.New("placed tiles are not in a single row or column")
	ErrTilesNotAdjacent = errors.New("placed tiles do not form a contiguous word")
	ErrFirstWordCenter  = errors.New("the first word must cover the center square")
	ErrFirstWordShort   = errors.New("the first word must use at least two tiles")
	ErrWordDetached     = errors.New("word is not connected to the tiles already on the board")
)

// bingoBonus is awarded for emptying a full rack in one move.
const bingoBonus = 50

// CalculateMove evaluates the unlocked tiles on the board.
func CalculateMove(b *Board) (Move, error) {
	placed := placedCoords(b)
	if len(placed) == 0 {
		return Move{}, ErrNoTilesPlaced
	}

	horizontal, err := orientation(placed)
	if err != nil {
		return Move{}, err
	}
	sortLine(placed, horizontal)

	firstMove := !b.HasLockedTiles()
	if firstMove {
		if !coversCenter(placed) {
			return Move{}, ErrFirstWordCenter
		}
		if len(placed) < 2 {
			return Move{}, ErrFirstWordShort
		}
	}

	var move Move
	connected := false

	// Main word: the maximal occupied run through the placed tiles.
	mainWord, gap := runThrough(b, placed, horizontal)
	if gap {
		return Move{}, ErrTilesNotAdjacent
	}
	if len(mainWord) >= 2 {
		w, usesLocked := scoreRun(b, mainWord)
		move.Words = append(move.Words, w)
		move.Score += w.Score
		connected = connected || usesLocked
	}

	// Cross words: one perpendicular run per placed tile.
	for _, c := range placed {
		cross, _ := runThrough(b, [][2]int{c}, !horizontal)
		if len(cross) < 2 {
			continue
		}
		w, usesLocked := scoreRun(b, cross)
		move.Words = append(move.Words, w)
		move.Score += w.Score
		connected = connected || usesLocked
	}

	if !firstMove && !connected {
		return Move{}, ErrWordDetached
	}
	if len(move.Words) == 0 {
		// A lone tile forming no word of two letters or more.
		return Move{}, ErrTilesNotAdjacent
	}

	if len(placed) == 7 {
		move.Score += bingoBonus
	}
	return move, nil
}

// placedCoords collects the coordinates of unlocked tiles.
func placedCoords(b *Board) [][2]int {
	var out [][2]int
	for x := 0; x < BoardDim; x++ {
		for y := 0; y < BoardDim; y++ {
			sq := b.Squares[x][y]
			if sq.Tile != nil && !sq.TileLocked {
				out = append(out, [2]int{x, y})
			}
		}
	}
	return out
}

// orientation reports whether the placed coordinates share a row
// (horizontal) or a column. A single tile counts as horizontal; its
// vertical run is still collected as a cross word.
func orientation(placed [][2]int) (horizontal bool, err error) {
	sameRow, sameCol := true, true
	for _, c := range placed[1:] {
		if c[0] != placed[0][0] {
			sameCol = false
		}
		if c[1] != placed[0][1] {
			sameRow = false
		}
	}
	switch {
	case sameRow:
		return true, nil
	case sameCol:
		return false, nil
	default:
		return false, ErrTilesNotInLine
	}
}

func sortLine(placed [][2]int, horizontal bool) {
	axis := 0
	if !horizontal {
		axis = 1
	}
	sort.Slice(placed, func(i, j int) bool { return placed[i][axis] < placed[j][axis] })
}

func coversCenter(placed [][2]int) bool {
	for _, c := range placed {
		if c[0] == CenterX && c[1] == CenterY {
			return true
		}
	}
	return false
}

// runThrough expands the sorted coordinates to the maximal occupied run
// along the given axis. It reports a gap when an empty square sits
// between the first and last placed tile.
func runThrough(b *Board, placed [][2]int, horizontal bool) (run [][2]int, gap bool) {
	dx, dy := 1, 0
	if !horizontal {
		dx, dy = 0, 1
	}

	x, y := placed[0][0], placed[0][1]
	// Walk back to the start of the run.
	for b.Inside(x-dx, y-dy) && b.Squares[x-dx][y-dy].Tile != nil {
		x, y = x-dx, y-dy
	}
	// Walk forward collecting the occupied run.
	for b.Inside(x, y) && b.Squares[x][y].Tile != nil {
		run = append(run, [2]int{x, y})
		x, y = x+dx, y+dy
	}

	// The run must reach past the last placed coordinate.
	last := placed[len(placed)-1]
	end := run[len(run)-1]
	if end[0] < last[0] || end[1] < last[1] {
		return nil, true
	}
	return run, false
}

// scoreRun scores one word and reports whether it uses a locked tile.
func scoreRun(b *Board, run [][2]int) (Word, bool) {
	word := ""
	score := 0
	multiplier := 1
	usesLocked := false

	for _, c := range run {
		sq := b.Squares[c[0]][c[1]]
		word += sq.Tile.Letter
		letterScore := sq.Tile.Score
		if sq.TileLocked {
			usesLocked = true
		} else {
			switch sq.Type {
			case DoubleLetter:
				letterScore *= 2
			case TripleLetter:
				letterScore *= 3
			case DoubleWord:
				multiplier *= 2
			case TripleWord:
				multiplier *= 3
			}
		}
		score += letterScore
	}
	return Word{Word: word, Score: score * multiplier}, usesLocked
}
