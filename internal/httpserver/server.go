// internal/httpserver/server.go
//
// HTTP wiring for the Scrabble server.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Game endpoints: create, join link, state, command PUT, event socket.
//   - Mapping the engine's error taxonomy onto HTTP statuses.
//
// All game semantics live in internal/game; handlers here only decode,
// authenticate and encode.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/mixtape-audio/html-scrabble/internal/game"
)

// Config is the handler-level configuration.
type Config struct {
	// JWTSecret signs the capability cookie.
	JWTSecret string
	// DefaultLanguage is used when game creation names none.
	DefaultLanguage string
}

// Server bundles the router and the game registry.
type Server struct {
	r        *chi.Mux
	registry *game.Registry
	cfg      Config
}

// New constructs a Server, installs middleware, and registers routes.
func New(registry *game.Registry, cfg Config) *Server {
	s := &Server{r: chi.NewRouter(), registry: registry, cfg: cfg}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(corsFromEnv)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Post("/game", s.handleCreateGame)
	s.r.Get("/game/{gameKey}/socket", s.handleSocket)
	s.r.Get("/game/{gameKey}/{playerKey}", s.handleJoin)
	s.r.Get("/game/{gameKey}", s.handleGameState)
	s.r.Put("/game/{gameKey}", s.handleCommand)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; empty disables CORS headers entirely.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// ----------------------------- responses -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encoding response failed")
	}
}

// writeGameError maps the engine's error taxonomy to HTTP statuses.
// Everything except a not-found key, a bad credential and the tile
// invariant is a conflict the player can recover from.
func writeGameError(w http.ResponseWriter, err error) {
	status := http.StatusConflict

	var unrecognized *game.UnrecognizedCommandError
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrPlayerNotFound):
		status = http.StatusUnauthorized
	case errors.As(err, &unrecognized):
		status = http.StatusBadRequest
	case errors.Is(err, game.ErrTileInvariant):
		status = http.StatusInternalServerError
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}
