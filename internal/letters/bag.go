// internal/letters/bag.go
//
// The shared letter bag for one game: a finite pool of tiles drawn
// without replacement. Draws are uniformly random; returned tiles
// become eligible for later draws with no ordering guarantee.

package letters

import (
	"fmt"
	"math/rand"

	"github.com/mixtape-audio/html-scrabble/internal/scrabble"
)

// Bag is the pool of undrawn tiles of a game.
type Bag struct {
	language     string
	legalLetters []string
	tiles        []*scrabble.Tile
}

// NewBag builds a full bag for the given language.
func NewBag(language string) (*Bag, error) {
	d, err := DistributionFor(language)
	if err != nil {
		return nil, err
	}
	b := &Bag{language: d.Language, legalLetters: d.LegalLetters()}
	for _, letter := range d.LegalLetters() {
		spec := d.Letters[letter]
		for i := 0; i < spec.Count; i++ {
			b.tiles = append(b.tiles, &scrabble.Tile{Letter: letter, Score: spec.Score})
		}
	}
	for i := 0; i < d.Blanks; i++ {
		b.tiles = append(b.tiles, &scrabble.Tile{})
	}
	return b, nil
}

// RestoreBag rebuilds a bag from a persisted remaining-tile list.
func RestoreBag(language string, tiles []*scrabble.Tile) (*Bag, error) {
	d, err := DistributionFor(language)
	if err != nil {
		return nil, fmt.Errorf("restore bag: %w", err)
	}
	return &Bag{language: d.Language, legalLetters: d.LegalLetters(), tiles: tiles}, nil
}

// Language reports the language the bag was built for.
func (b *Bag) Language() string { return b.language }

// LegalLetters lists the letters a placement may use, sorted.
func (b *Bag) LegalLetters() []string { return b.legalLetters }

// RemainingCount reports how many tiles are left to draw.
func (b *Bag) RemainingCount() int { return len(b.tiles) }

// Tiles exposes the remaining pool for persistence.
func (b *Bag) Tiles() []*scrabble.Tile { return b.tiles }

// DrawTiles removes up to n tiles chosen uniformly at random without
// replacement. When fewer than n remain, all remaining tiles are
// returned; callers that need an exact count must check the length.
func (b *Bag) DrawTiles(n int) []*scrabble.Tile {
	var drawn []*scrabble.Tile
	for len(drawn) < n && len(b.tiles) > 0 {
		i := rand.Intn(len(b.tiles))
		drawn = append(drawn, b.tiles[i])
		b.tiles[i] = b.tiles[len(b.tiles)-1]
		b.tiles = b.tiles[:len(b.tiles)-1]
	}
	return drawn
}

// ReturnTiles puts tiles back into the pool. A returned blank loses any
// assigned letter.
func (b *Bag) ReturnTiles(tiles ...*scrabble.Tile) {
	for _, t := range tiles {
		if t.IsBlank() {
			t.Letter = ""
		}
		b.tiles = append(b.tiles, t)
	}
}

// Counts is a letter multiset, used to validate swap requests against a
// rack without caring about slot positions.
type Counts map[string]int

// CountLetters builds the multiset of a letter list.
func CountLetters(letters []string) Counts {
	c := make(Counts, len(letters))
	for _, l := range letters {
		c[l]++
	}
	return c
}

// Take removes one occurrence of letter, reporting whether one was
// available.
func (c Counts) Take(letter string) bool {
	if c[letter] == 0 {
		return false
	}
	c[letter]--
	return true
}
