// internal/game/view.go
//
// The per-player JSON view of a game, served to a client joining or
// refreshing. Racks are private: the view exposes only the requesting
// player's own rack.

package game

import (
	"encoding/json"
	"fmt"

	"github.com/mixtape-audio/html-scrabble/internal/scrabble"
)

// PlayerView is one player as everyone may see them.
type PlayerView struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	// Rack is non-nil only for the player the view was built for.
	Rack *scrabble.Rack `json:"rack"`
}

// View is the full game state for one authenticated player.
type View struct {
	Board              *scrabble.Board `json:"board"`
	Turns              []*Turn         `json:"turns"`
	WhosTurn           int             `json:"whosTurn"`
	RemainingTileCount int             `json:"remainingTileCount"`
	LegalLetters       []string        `json:"legalLetters"`
	Players            []PlayerView    `json:"players"`
	EndMessage         *EndMessage     `json:"endMessage,omitempty"`
}

// View builds the state view for the given player. The view is
// serialized while the game's mutex is held and decoded back into a
// detached copy, so callers can encode or inspect it while commands
// against the same game keep executing.
func (g *Game) View(forPlayer *Player) (*View, error) {
	g.mu.Lock()
	v := &View{
		Board:              g.Board,
		Turns:              g.Turns,
		WhosTurn:           g.WhosTurn,
		RemainingTileCount: g.Bag.RemainingCount(),
		LegalLetters:       g.Bag.LegalLetters(),
		EndMessage:         g.EndMessage,
	}
	for _, p := range g.Players {
		pv := PlayerView{Name: p.Name, Score: p.Score}
		if p == forPlayer {
			pv.Rack = p.Rack
		}
		v.Players = append(v.Players, pv)
	}
	raw, err := json.Marshal(v)
	g.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("encode game view: %w", err)
	}

	var detached View
	if err := json.Unmarshal(raw, &detached); err != nil {
		return nil, fmt.Errorf("decode game view: %w", err)
	}
	return &detached, nil
}
