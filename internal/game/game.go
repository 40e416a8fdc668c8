// internal/game/game.go
//
// The session state machine for one game. A game is ACTIVE from
// creation until exactly one transition to ENDED, taken inside
// finishTurn when a move empties the acting player's rack or when the
// shared pass counter reaches twice the player count.
//
// All mutating operations on one game are serialized by the registry
// under the game's mutex; the methods here assume they already run
// single-file. Tiles are conserved across every operation: the count
// on racks, on the board and in the bag only ever moves between those
// three places.

package game

import (
	"fmt"
	"sync"

	"github.com/mixtape-audio/html-scrabble/internal/letters"
	"github.com/mixtape-audio/html-scrabble/internal/scrabble"
)

// startingTiles is the rack size drawn at game creation.
const startingTiles = 7

// EvaluateFunc validates the tiles newly placed on a board and either
// scores them or rejects the move with a renderable reason.
type EvaluateFunc func(*scrabble.Board) (scrabble.Move, error)

// Game is one session: players, board, bag and the turn log.
// The hub and mutex are runtime-only and never persisted.
type Game struct {
	// mu serializes the authorize-apply-persist-broadcast sequence of
	// every command against this game. Held by the registry.
	mu sync.Mutex

	Key      string
	Language string
	Players  []*Player
	Board    *scrabble.Board
	Bag      *letters.Bag
	Turns    []*Turn
	// WhosTurn is the current turn index while active, -1 once ended.
	WhosTurn    int
	Passes      int
	EndMessage  *EndMessage
	NextGameKey string

	hub *Hub
}

// newGame assembles a fresh game: new key, full bag, each seat dealt a
// starting rack and a zero score. Seats without a capability key get
// one derived from a fresh seed.
func newGame(language string, seats []Seat) (*Game, error) {
	if len(seats) == 0 {
		return nil, fmt.Errorf("cannot create a game without players")
	}
	bag, err := letters.NewBag(language)
	if err != nil {
		return nil, err
	}
	g := &Game{
		Key:      MakeKey(),
		Language: bag.Language(),
		Board:    scrabble.NewBoard(),
		Bag:      bag,
		Turns:    []*Turn{},
		hub:      newHub(),
	}
	seed := newKeySeed()
	for i, seat := range seats {
		p := &Player{
			Name:  seat.Name,
			Email: seat.Email,
			Key:   seat.Key,
			Index: i,
			Rack:  scrabble.NewRack(),
		}
		if p.Key == "" {
			p.Key = derivePlayerKey(seed, i)
		}
		p.Rack.FillEmpty(g.Bag.DrawTiles(startingTiles))
		g.Players = append(g.Players, p)
	}
	return g, nil
}

// Hub returns the game's transient listener set.
func (g *Game) Hub() *Hub { return g.hub }

// Ended reports whether the game has reached its terminal state.
func (g *Game) Ended() bool { return g.EndMessage != nil }

// LookupPlayer resolves a capability key to the one player it
// authenticates.
func (g *Game) LookupPlayer(key string) (*Player, error) {
	if key != "" {
		for _, p := range g.Players {
			if p.Key == key {
				return p, nil
			}
		}
	}
	return nil, ErrPlayerNotFound
}

// authorizeTurn gates every mutating turn command: the game must still
// be active and the acting player must hold the current turn.
func (g *Game) authorizeTurn(p *Player) error {
	if g.Ended() {
		return &EndedError{Reason: g.EndMessage.Reason}
	}
	if p != g.Players[g.WhosTurn] {
		return ErrNotYourTurn
	}
	return nil
}

// stagedPlacement pairs one rack tile with its target board square.
type stagedPlacement struct {
	rackSquare  *scrabble.Square
	boardSquare *scrabble.Square
	tile        *scrabble.Tile
	wasBlank    bool
}

// makeMove applies a placement list to the board. The whole request is
// staged before any mutation: an unmatched letter or occupied target
// aborts with rack and board untouched, and an evaluator rejection
// rolls every placement back, including blank letter assignments. On
// acceptance the placed squares are locked, the score is credited, the
// pass counter resets and the rack is refilled from the bag.
func (g *Game) makeMove(p *Player, placements []Placement, evaluate EvaluateFunc) ([]*scrabble.Tile, *Turn, error) {
	staged := make([]stagedPlacement, 0, len(placements))
	used := make(map[*scrabble.Square]bool, len(placements))
	targets := make(map[*scrabble.Square]bool, len(placements))

	for _, pl := range placements {
		if pl.Letter == "" {
			return nil, nil, &InvalidMoveError{
				Cause: fmt.Errorf("placement on square %d/%d names no letter", pl.X, pl.Y),
			}
		}
		var from *scrabble.Square
		for _, sq := range p.Rack.Squares {
			if used[sq] || sq.Tile == nil {
				continue
			}
			if (!sq.Tile.IsBlank() && sq.Tile.Letter == pl.Letter) || (pl.Blank && sq.Tile.IsBlank()) {
				from = sq
				used[sq] = true
				break
			}
		}
		if from == nil {
			return nil, nil, &InvalidMoveError{
				Cause: fmt.Errorf("cannot find letter %q in rack of player %s", pl.Letter, p.Name),
			}
		}
		if !g.Board.Inside(pl.X, pl.Y) {
			return nil, nil, &InvalidMoveError{
				Cause: fmt.Errorf("target square %d/%d is off the board", pl.X, pl.Y),
			}
		}
		to := g.Board.SquareAt(pl.X, pl.Y)
		if to.Tile != nil || targets[to] {
			return nil, nil, &InvalidMoveError{
				Cause: fmt.Errorf("target square %d/%d is already occupied", pl.X, pl.Y),
			}
		}
		targets[to] = true
		staged = append(staged, stagedPlacement{
			rackSquare:  from,
			boardSquare: to,
			tile:        from.Tile,
			wasBlank:    pl.Blank && from.Tile.IsBlank(),
		})
	}

	// Apply the staged placements. Blank letters are assigned only now
	// so a validation failure above leaves every blank untouched.
	for i, s := range staged {
		if s.wasBlank {
			s.tile.Letter = placements[i].Letter
		}
		s.rackSquare.PlaceTile(nil)
		s.boardSquare.PlaceTile(s.tile)
	}

	move, err := evaluate(g.Board)
	if err != nil {
		// Roll everything back: tiles return to their rack squares and
		// blanks lose their assigned letter.
		for _, s := range staged {
			s.boardSquare.PlaceTile(nil)
			if s.wasBlank {
				s.tile.Letter = ""
			}
			s.rackSquare.PlaceTile(s.tile)
		}
		return nil, nil, &InvalidMoveError{Cause: err}
	}

	for _, s := range staged {
		s.boardSquare.TileLocked = true
	}
	p.Score += move.Score
	g.Passes = 0

	// Refill the rack; the bag may run short near the end of a game.
	newTiles := g.Bag.DrawTiles(len(staged))
	p.Rack.FillEmpty(newTiles)

	turn := &Turn{
		Type:       TurnMove,
		Player:     p.Index,
		Score:      move.Score,
		Move:       &move,
		Placements: placements,
	}
	return newTiles, turn, nil
}

// pass records a zero-score turn and bumps the shared pass counter.
func (g *Game) pass(p *Player) ([]*scrabble.Tile, *Turn, error) {
	g.Passes++
	return nil, &Turn{Type: TurnPass, Player: p.Index}, nil
}

// swapTiles exchanges rack tiles for fresh ones. Replacements are
// drawn before the old tiles go back, so a swap can never hand back a
// tile the player just returned. Counts as a pass.
func (g *Game) swapTiles(p *Player, swap []string) ([]*scrabble.Tile, *Turn, error) {
	if remaining := g.Bag.RemainingCount(); remaining < startingTiles {
		return nil, nil, &InsufficientTilesError{Remaining: remaining}
	}

	rackLetters := letters.CountLetters(p.Rack.Letters())
	for _, letter := range swap {
		if !rackLetters.Take(letter) {
			return nil, nil, &InvalidSwapError{Letter: letter}
		}
	}

	newTiles := g.Bag.DrawTiles(len(swap))

	returned := letters.CountLetters(swap)
	for _, sq := range p.Rack.Squares {
		if sq.Tile != nil && returned.Take(sq.Tile.Letter) {
			g.Bag.ReturnTiles(sq.Tile)
			sq.PlaceTile(nil)
		}
	}
	p.Rack.FillEmpty(newTiles)

	g.Passes++
	turn := &Turn{Type: TurnSwap, Player: p.Index, SwapCount: len(swap)}
	return newTiles, turn, nil
}

// finishTurn commits a turn: it is appended to the log, the end
// conditions are evaluated (an emptied rack wins over the pass
// threshold), and while the game stays active the turn cursor advances
// round-robin and is stamped onto the record. Persistence and
// broadcast are the registry's side of the commit.
func (g *Game) finishTurn(p *Player, turn *Turn) error {
	g.Turns = append(g.Turns, turn)

	switch {
	case p.Rack.Empty():
		if err := g.finish(fmt.Sprintf("player %d ended the game", p.Index)); err != nil {
			g.Turns = g.Turns[:len(g.Turns)-1]
			return err
		}
	case g.Passes == 2*len(g.Players):
		if err := g.finish("all players passed two times"); err != nil {
			g.Turns = g.Turns[:len(g.Turns)-1]
			return err
		}
	default:
		g.WhosTurn = (g.WhosTurn + 1) % len(g.Players)
		next := g.WhosTurn
		turn.WhosTurn = &next
	}

	turn.RemainingTileCount = g.Bag.RemainingCount()
	return nil
}

// finish tallies the final scores and produces the end message. Every
// player still holding tiles forfeits their rack value; the single
// player with an empty rack, if any, collects the sum. Finding more
// than one empty rack means tiles were not conserved, and the
// operation aborts before touching any score.
func (g *Game) finish(reason string) error {
	var emptyRacks int
	for _, p := range g.Players {
		if p.Rack.Empty() {
			emptyRacks++
		}
	}
	if emptyRacks > 1 {
		return ErrTileInvariant
	}

	var finisher *Player
	pointsOnRacks := 0
	for _, p := range g.Players {
		if p.Rack.Empty() {
			finisher = p
			continue
		}
		rackScore := p.Rack.Score()
		p.Score -= rackScore
		tally := -rackScore
		p.TallyScore = &tally
		pointsOnRacks += rackScore
	}
	if finisher != nil {
		finisher.Score += pointsOnRacks
		tally := pointsOnRacks
		finisher.TallyScore = &tally
	}

	g.WhosTurn = -1
	end := &EndMessage{Reason: reason, NextGameKey: g.NextGameKey}
	for _, p := range g.Players {
		tally := 0
		if p.TallyScore != nil {
			tally = *p.TallyScore
		}
		end.Players = append(end.Players, PlayerResult{
			Name:       p.Name,
			Score:      p.Score,
			TallyScore: tally,
			Rack:       p.Rack,
		})
	}
	g.EndMessage = end
	return nil
}
