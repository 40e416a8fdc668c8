package scrabble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// place puts a fresh unlocked tile on the board.
func place(b *Board, x, y int, letter string, score int) {
	b.Squares[x][y].PlaceTile(&Tile{Letter: letter, Score: score})
}

// lock commits every tile currently on the board.
func lock(b *Board) {
	for x := 0; x < BoardDim; x++ {
		for y := 0; y < BoardDim; y++ {
			if b.Squares[x][y].Tile != nil {
				b.Squares[x][y].TileLocked = true
			}
		}
	}
}

func TestBoardPremiumLayout(t *testing.T) {
	b := NewBoard()

	assert.Equal(t, TripleWord, b.SquareAt(0, 0).Type)
	assert.Equal(t, TripleWord, b.SquareAt(14, 14).Type)
	assert.Equal(t, TripleWord, b.SquareAt(0, 14).Type)
	assert.Equal(t, TripleWord, b.SquareAt(7, 0).Type)
	assert.Equal(t, DoubleWord, b.SquareAt(CenterX, CenterY).Type)
	assert.Equal(t, DoubleWord, b.SquareAt(1, 1).Type)
	assert.Equal(t, DoubleWord, b.SquareAt(13, 13).Type)
	assert.Equal(t, TripleLetter, b.SquareAt(5, 1).Type)
	assert.Equal(t, TripleLetter, b.SquareAt(9, 13).Type)
	assert.Equal(t, DoubleLetter, b.SquareAt(3, 0).Type)
	assert.Equal(t, DoubleLetter, b.SquareAt(11, 14).Type)
	assert.Equal(t, Normal, b.SquareAt(1, 0).Type)

	// Layout is symmetric under both mirrors.
	for x := 0; x < BoardDim; x++ {
		for y := 0; y < BoardDim; y++ {
			assert.Equal(t, b.SquareAt(x, y).Type, b.SquareAt(BoardDim-1-x, y).Type)
			assert.Equal(t, b.SquareAt(x, y).Type, b.SquareAt(x, BoardDim-1-y).Type)
		}
	}
}

func TestFirstMoveScoresDoubleWordCenter(t *testing.T) {
	b := NewBoard()
	place(b, 7, 7, "H", 4)
	place(b, 8, 7, "I", 1)

	move, err := CalculateMove(b)
	require.NoError(t, err)
	require.Len(t, move.Words, 1)
	assert.Equal(t, "HI", move.Words[0].Word)
	// (4 + 1) doubled by the center square.
	assert.Equal(t, 10, move.Score)
}

func TestFirstMoveGeometryRejections(t *testing.T) {
	tests := []struct {
		name   string
		place  func(b *Board)
		reject error
	}{
		{
			name:   "no tiles",
			place:  func(b *Board) {},
			reject: ErrNoTilesPlaced,
		},
		{
			name: "not in line",
			place: func(b *Board) {
				place(b, 7, 7, "A", 1)
				place(b, 8, 8, "B", 3)
			},
			reject: ErrTilesNotInLine,
		},
		{
			name: "gap in word",
			place: func(b *Board) {
				place(b, 7, 7, "A", 1)
				place(b, 9, 7, "B", 3)
			},
			reject: ErrTilesNotAdjacent,
		},
		{
			name: "misses center",
			place: func(b *Board) {
				place(b, 0, 0, "A", 1)
				place(b, 1, 0, "B", 3)
			},
			reject: ErrFirstWordCenter,
		},
		{
			name: "single tile",
			place: func(b *Board) {
				place(b, 7, 7, "A", 1)
			},
			reject: ErrFirstWordShort,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard()
			tt.place(b)
			_, err := CalculateMove(b)
			assert.ErrorIs(t, err, tt.reject)
		})
	}
}

func TestCrossWordScoring(t *testing.T) {
	b := NewBoard()
	place(b, 7, 7, "H", 4)
	place(b, 8, 7, "I", 1)
	lock(b)

	// A single S below the I forms the vertical word IS.
	place(b, 8, 8, "S", 1)

	move, err := CalculateMove(b)
	require.NoError(t, err)
	require.Len(t, move.Words, 1)
	assert.Equal(t, "IS", move.Words[0].Word)
	// Locked I scores plain; the S lands on the (8,8) double letter.
	assert.Equal(t, 3, move.Score)
}

func TestExtendingWordCountsLockedTilesOnce(t *testing.T) {
	b := NewBoard()
	place(b, 7, 7, "H", 4)
	place(b, 8, 7, "I", 1)
	lock(b)

	// HI -> HIT. The locked center premium no longer applies.
	place(b, 9, 7, "T", 1)

	move, err := CalculateMove(b)
	require.NoError(t, err)
	require.Len(t, move.Words, 1)
	assert.Equal(t, "HIT", move.Words[0].Word)
	assert.Equal(t, 6, move.Score)
}

func TestDetachedWordRejected(t *testing.T) {
	b := NewBoard()
	place(b, 7, 7, "H", 4)
	place(b, 8, 7, "I", 1)
	lock(b)

	place(b, 0, 0, "A", 1)
	place(b, 1, 0, "B", 3)

	_, err := CalculateMove(b)
	assert.ErrorIs(t, err, ErrWordDetached)
}

func TestLetterPremiumAppliesToNewTileOnly(t *testing.T) {
	b := NewBoard()
	place(b, 7, 7, "A", 1)
	place(b, 8, 7, "B", 3)
	lock(b)

	// Vertical word down column 7; (7, 11) is a double-letter square
	// mirrored from (7, 3).
	place(b, 7, 8, "C", 3)
	place(b, 7, 9, "D", 2)
	place(b, 7, 10, "E", 1)
	place(b, 7, 11, "F", 4)

	move, err := CalculateMove(b)
	require.NoError(t, err)
	require.Len(t, move.Words, 1)
	assert.Equal(t, "ACDEF", move.Words[0].Word)
	// 1 + 3 + 2 + 1 + 4*2 = 15, no word multiplier under new tiles.
	assert.Equal(t, 15, move.Score)
}

func TestBingoBonusForSevenTiles(t *testing.T) {
	b := NewBoard()
	letters := []string{"A", "B", "C", "D", "E", "F", "G"}
	for i, l := range letters {
		place(b, 1+i, 7, l, 1)
	}

	move, err := CalculateMove(b)
	require.NoError(t, err)
	// Letters sum to 7 with the (3,7) double letter adding one more,
	// the word doubles on the center, and seven tiles earn the bonus.
	assert.Equal(t, (7+1)*2+50, move.Score)
}

func TestBlankTileScoresZero(t *testing.T) {
	b := NewBoard()
	blank := &Tile{Letter: "H"} // assigned blank keeps score 0
	b.Squares[7][7].PlaceTile(blank)
	place(b, 8, 7, "I", 1)

	require.True(t, blank.IsBlank())
	move, err := CalculateMove(b)
	require.NoError(t, err)
	assert.Equal(t, "HI", move.Words[0].Word)
	assert.Equal(t, 2, move.Score)
}
