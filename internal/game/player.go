// internal/game/player.go
//
// Players and their capability keys. The game key identifies a game to
// anyone; the per-player key authenticates one participant and is only
// ever distributed inside that player's invitation link. Player keys
// are derived from a fresh per-game seed with HKDF so one creation-time
// random read covers the whole seating.

package game

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/mixtape-audio/html-scrabble/internal/scrabble"
)

// Player is one participant of a game.
type Player struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	// Key is the player's capability secret, distinct from the game key.
	Key        string         `json:"key"`
	Index      int            `json:"index"`
	Rack       *scrabble.Rack `json:"rack"`
	Score      int            `json:"score"`
	TallyScore *int           `json:"tallyScore,omitempty"`
}

// Seat describes a participant before a game exists. A non-empty Key
// carries a capability secret over from a finished game into its
// follow-on; otherwise a fresh one is derived.
type Seat struct {
	Name  string
	Email string
	Key   string
}

// MakeKey returns a fresh opaque 16-hex-char key, used for game keys.
func MakeKey() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(fmt.Sprintf("game: crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(b[:])
}

// newKeySeed returns the creation-time seed player keys derive from.
func newKeySeed() []byte {
	seed := make([]byte, 16)
	if _, err := rand.Read(seed); err != nil {
		panic(fmt.Sprintf("game: crypto/rand failed: %v", err))
	}
	return seed
}

// derivePlayerKey expands the game seed into the capability key of the
// player at the given seat index.
func derivePlayerKey(seed []byte, index int) string {
	r := hkdf.New(sha256.New, seed, nil, []byte(fmt.Sprintf("player/%d", index)))
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		panic(fmt.Sprintf("game: hkdf expand failed: %v", err))
	}
	return hex.EncodeToString(b[:])
}
