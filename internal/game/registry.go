// internal/game/registry.go
//
// The process-wide registry of live games: a bounded LRU cache over
// the durable store. The registry is also the command engine — it
// serializes every command against its game's mutex through the full
// authorize → apply → commit → persist → broadcast sequence, so two
// commands against one game can never interleave while independent
// games proceed in parallel.

package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"

	"github.com/mixtape-audio/html-scrabble/internal/scrabble"
)

// Store is the persistence contract the registry needs: a key-value
// round trip of game snapshots. Implementations report a missing key
// with ErrGameNotFound.
type Store interface {
	Get(ctx context.Context, key string) (*Snapshot, error)
	Put(ctx context.Context, key string, snap *Snapshot) error
}

// Mailer delivers invitation mail. Failures are logged and never fatal
// to game creation.
type Mailer interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// DefaultCacheSize bounds the live-game cache when the configuration
// does not.
const DefaultCacheSize = 512

// RegistryConfig wires the registry's collaborators.
type RegistryConfig struct {
	Store     Store
	Mailer    Mailer
	Evaluate  EvaluateFunc
	BaseURL   string
	CacheSize int
}

// Registry resolves game keys to live games and runs their commands.
type Registry struct {
	mu       sync.Mutex
	cache    *lru.Cache[string, *Game]
	store    Store
	mailer   Mailer
	evaluate EvaluateFunc
	baseURL  string
}

// NewRegistry constructs a registry with a bounded cache. Evicted
// games lose only their transient listener set; their durable state is
// persisted on every committed turn.
func NewRegistry(cfg RegistryConfig) (*Registry, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("registry requires a store")
	}
	size := cfg.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, *Game](size)
	if err != nil {
		return nil, err
	}
	return &Registry{
		cache:    cache,
		store:    cfg.Store,
		mailer:   cfg.Mailer,
		evaluate: cfg.Evaluate,
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/") + "/",
	}, nil
}

// Create allocates and persists a fresh game and dispatches an
// invitation to every seat. Mail delivery is asynchronous and
// best-effort.
func (r *Registry) Create(ctx context.Context, language string, seats []Seat) (*Game, error) {
	g, err := newGame(language, seats)
	if err != nil {
		return nil, err
	}
	if err := r.store.Put(ctx, g.Key, g.Snapshot()); err != nil {
		return nil, fmt.Errorf("persist new game: %w", err)
	}

	r.mu.Lock()
	r.cache.Add(g.Key, g)
	r.mu.Unlock()

	log.Info().Str("game", g.Key).Str("language", g.Language).
		Int("players", len(g.Players)).Msg("game created")

	for _, p := range g.Players {
		go r.sendInvitation(g, p)
	}
	return g, nil
}

// Get resolves a game key: cache first, then the store. A store miss
// is ErrGameNotFound. A game loaded from the store joins the cache
// with a fresh, empty listener set.
func (r *Registry) Get(ctx context.Context, key string) (*Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g, ok := r.cache.Get(key); ok {
		return g, nil
	}
	snap, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("load game %s: %w", key, err)
	}
	g, err := restore(snap)
	if err != nil {
		return nil, fmt.Errorf("restore game %s: %w", key, err)
	}
	r.cache.Add(key, g)
	return g, nil
}

// Command is one inbound player action.
type Command struct {
	Name       string
	Placements []Placement
	Letters    []string
}

// Result is the response to the command's originator. Everyone else
// learns about the turn through the hub instead.
type Result struct {
	NewTiles []*scrabble.Tile `json:"newTiles"`
}

// Execute runs one command against a game as an atomic unit. Turn
// commands go through authorization, application, commit, persistence
// and broadcast under the game's mutex; any failure leaves the game
// unchanged.
func (r *Registry) Execute(ctx context.Context, g *Game, p *Player, cmd Command) (*Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch cmd.Name {
	case "makeMove", "pass", "swap":
		if err := g.authorizeTurn(p); err != nil {
			return nil, err
		}
	case "newGame":
		return nil, r.createFollowon(ctx, g, p)
	default:
		return nil, &UnrecognizedCommandError{Command: cmd.Name}
	}

	passesBefore := g.Passes

	var (
		newTiles []*scrabble.Tile
		turn     *Turn
		err      error
	)
	switch cmd.Name {
	case "makeMove":
		newTiles, turn, err = g.makeMove(p, cmd.Placements, r.evaluate)
	case "pass":
		newTiles, turn, err = g.pass(p)
	case "swap":
		newTiles, turn, err = g.swapTiles(p, cmd.Letters)
	}
	if err != nil {
		return nil, err
	}

	if err := g.finishTurn(p, turn); err != nil {
		// The turn was not committed, so the shared pass counter must
		// not move either.
		g.Passes = passesBefore
		log.Error().Err(err).Str("game", g.Key).Msg("aborting game finish")
		return nil, err
	}
	if err := r.store.Put(ctx, g.Key, g.Snapshot()); err != nil {
		return nil, fmt.Errorf("persist game %s: %w", g.Key, err)
	}

	g.hub.Broadcast("turn", turn)
	if g.Ended() {
		g.hub.Broadcast("gameEnded", g.EndMessage)
	}

	if newTiles == nil {
		newTiles = []*scrabble.Tile{}
	}
	return &Result{NewTiles: newTiles}, nil
}

// createFollowon starts a new game with the same seating rotated so
// startPlayer opens, preserving every capability key, and links the
// finished game to it. Idempotence guard: at most one follow-on per
// game.
func (r *Registry) createFollowon(ctx context.Context, g *Game, startPlayer *Player) error {
	if g.NextGameKey != "" {
		return ErrDuplicateFollowon
	}

	n := len(g.Players)
	seats := make([]Seat, 0, n)
	for i := 0; i < n; i++ {
		p := g.Players[(i+startPlayer.Index)%n]
		seats = append(seats, Seat{Name: p.Name, Email: p.Email, Key: p.Key})
	}

	next, err := r.Create(ctx, g.Language, seats)
	if err != nil {
		return fmt.Errorf("create followon game: %w", err)
	}

	g.NextGameKey = next.Key
	if g.EndMessage != nil {
		g.EndMessage.NextGameKey = next.Key
	}
	if err := r.store.Put(ctx, g.Key, g.Snapshot()); err != nil {
		return fmt.Errorf("persist game %s: %w", g.Key, err)
	}

	log.Info().Str("game", g.Key).Str("next", next.Key).Msg("followon game created")
	g.hub.Broadcast("nextGame", next.Key)
	return nil
}
