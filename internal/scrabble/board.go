// internal/scrabble/board.go
//
// The 15x15 game board with the standard premium-square layout.
// Squares are addressed board.Squares[x][y] with x as the column and y
// as the row, matching the placement coordinates sent by clients.

package scrabble

// Board dimensions and the center square every first move must cover.
const (
	BoardDim = 15
	CenterX  = 7
	CenterY  = 7
)

// Board is the shared 15x15 grid of squares.
type Board struct {
	Squares [][]*Square `json:"squares"`
}

// premium lists the special squares of the upper-left quadrant
// (inclusive of the middle row/column); the other three quadrants are
// mirror images.
var premium = map[[2]int]SquareType{
	{0, 0}: TripleWord,
	{0, 7}: TripleWord,
	{7, 0}: TripleWord,
	{1, 1}: DoubleWord,
	{2, 2}: DoubleWord,
	{3, 3}: DoubleWord,
	{4, 4}: DoubleWord,
	{7, 7}: DoubleWord, // center
	{1, 5}: TripleLetter,
	{5, 1}: TripleLetter,
	{5, 5}: TripleLetter,
	{0, 3}: DoubleLetter,
	{3, 0}: DoubleLetter,
	{2, 6}: DoubleLetter,
	{6, 2}: DoubleLetter,
	{6, 6}: DoubleLetter,
	{3, 7}: DoubleLetter,
	{7, 3}: DoubleLetter,
}

// NewBoard constructs an empty board with the premium layout applied.
func NewBoard() *Board {
	b := &Board{Squares: make([][]*Square, BoardDim)}
	for x := 0; x < BoardDim; x++ {
		b.Squares[x] = make([]*Square, BoardDim)
		for y := 0; y < BoardDim; y++ {
			b.Squares[x][y] = &Square{Type: squareType(x, y)}
		}
	}
	return b
}

// squareType resolves the premium type of (x, y) by folding the
// coordinates into the upper-left quadrant.
func squareType(x, y int) SquareType {
	if x > CenterX {
		x = BoardDim - 1 - x
	}
	if y > CenterY {
		y = BoardDim - 1 - y
	}
	if t, ok := premium[[2]int{x, y}]; ok {
		return t
	}
	return Normal
}

// Inside reports whether (x, y) addresses a square on the board.
func (b *Board) Inside(x, y int) bool {
	return x >= 0 && x < BoardDim && y >= 0 && y < BoardDim
}

// SquareAt returns the square at (x, y); callers must check Inside.
func (b *Board) SquareAt(x, y int) *Square { return b.Squares[x][y] }

// TileCount counts the tiles currently on the board.
func (b *Board) TileCount() int {
	n := 0
	for x := 0; x < BoardDim; x++ {
		for y := 0; y < BoardDim; y++ {
			if b.Squares[x][y].Tile != nil {
				n++
			}
		}
	}
	return n
}

// HasLockedTiles reports whether any committed move is on the board,
// i.e. whether the next move is the game's first.
func (b *Board) HasLockedTiles() bool {
	for x := 0; x < BoardDim; x++ {
		for y := 0; y < BoardDim; y++ {
			if b.Squares[x][y].TileLocked {
				return true
			}
		}
	}
	return false
}
