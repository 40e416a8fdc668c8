// internal/game/errors.go
//
// The closed error taxonomy of the session engine. Every recoverable
// failure a command can produce is one of these kinds, so callers
// match with errors.Is / errors.As instead of string inspection.

package game

import (
	"errors"
	"fmt"
)

var (
	// ErrGameNotFound: a game key resolves neither in the registry
	// cache nor in the store.
	ErrGameNotFound = errors.New("game not found")

	// ErrPlayerNotFound: a capability key matches no player of the game.
	ErrPlayerNotFound = errors.New("player not found for capability key")

	// ErrNotYourTurn: the acting player is not at the current turn index.
	ErrNotYourTurn = errors.New("not this player's turn")

	// ErrDuplicateFollowon: a follow-on game was already created.
	ErrDuplicateFollowon = errors.New("followon game already created")

	// ErrTileInvariant: more than one empty rack at game end. This is a
	// tile-conservation violation; the finishing operation aborts
	// loudly instead of producing a wrong tally.
	ErrTileInvariant = errors.New("unexpectedly found more than one player with no tiles when finishing game")
)

// EndedError rejects commands against a finished game.
type EndedError struct {
	Reason string
}

func (e *EndedError) Error() string {
	return fmt.Sprintf("this game has ended: %s", e.Reason)
}

// InvalidMoveError rejects a placement: a letter missing from the
// rack, an occupied or out-of-bounds target square, or a move the
// evaluator refused. The wrapped cause is user-renderable.
type InvalidMoveError struct {
	Cause error
}

func (e *InvalidMoveError) Error() string { return fmt.Sprintf("invalid move: %v", e.Cause) }
func (e *InvalidMoveError) Unwrap() error { return e.Cause }

// InsufficientTilesError rejects a swap while the bag is low.
type InsufficientTilesError struct {
	Remaining int
}

func (e *InsufficientTilesError) Error() string {
	return fmt.Sprintf("cannot swap, letterbag contains only %d tiles", e.Remaining)
}

// InvalidSwapError rejects a swap naming a letter the rack lacks.
type InvalidSwapError struct {
	Letter string
}

func (e *InvalidSwapError) Error() string {
	return fmt.Sprintf("cannot swap, rack does not contain letter %q", e.Letter)
}

// UnrecognizedCommandError rejects a command name outside the known set.
type UnrecognizedCommandError struct {
	Command string
}

func (e *UnrecognizedCommandError) Error() string {
	return fmt.Sprintf("unrecognized game command: %q", e.Command)
}
