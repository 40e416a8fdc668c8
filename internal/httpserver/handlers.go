// internal/httpserver/handlers.go
//
// Game route handlers: creation from the signup form, join-link
// redirects, the per-player state view, and the command endpoint the
// client plays through.

package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/mixtape-audio/html-scrabble/internal/game"
)

// maxSeats is how many name/email pairs the creation form offers.
const maxSeats = 4

// handleCreateGame creates a game from form fields name1..4/email1..4
// and redirects to the first player's join link.
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad form data"})
		return
	}

	var seats []game.Seat
	for i := 1; i <= maxSeats; i++ {
		name := r.FormValue(fmt.Sprintf("name%d", i))
		email := r.FormValue(fmt.Sprintf("email%d", i))
		if name != "" && email != "" {
			seats = append(seats, game.Seat{Name: name, Email: email})
		}
	}
	if len(seats) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no players given"})
		return
	}

	language := r.FormValue("language")
	if language == "" {
		language = s.cfg.DefaultLanguage
	}

	g, err := s.registry.Create(r.Context(), language, seats)
	if err != nil {
		log.Error().Err(err).Msg("game creation failed")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	http.Redirect(w, r, "/game/"+g.Key+"/"+g.Players[0].Key, http.StatusFound)
}

// handleJoin turns a join link into the capability cookie and strips
// the player key from the visible URL.
func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	gameKey := chi.URLParam(r, "gameKey")
	g, err := s.registry.Get(r.Context(), gameKey)
	if err != nil {
		writeGameError(w, err)
		return
	}
	player, err := g.LookupPlayer(chi.URLParam(r, "playerKey"))
	if err != nil {
		writeGameError(w, err)
		return
	}

	token, err := s.signPlayerToken(g.Key, player.Key)
	if err != nil {
		log.Error().Err(err).Msg("signing capability cookie failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	setPlayerCookie(w, g.Key, token)
	http.Redirect(w, r, "/game/"+g.Key, http.StatusFound)
}

// handleGameState serves the authenticated player's view of the game.
func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	g, err := s.registry.Get(r.Context(), chi.URLParam(r, "gameKey"))
	if err != nil {
		writeGameError(w, err)
		return
	}
	player, err := s.authenticatePlayer(r, g)
	if err != nil {
		writeGameError(w, err)
		return
	}
	view, err := g.View(player)
	if err != nil {
		log.Error().Err(err).Str("game", g.Key).Msg("building game view failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// commandRequest is the PUT body: a command name and its arguments,
// whose shape depends on the command.
type commandRequest struct {
	Command   string          `json:"command"`
	Arguments json.RawMessage `json:"arguments"`
}

// handleCommand runs one game command for the authenticated player.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	g, err := s.registry.Get(r.Context(), chi.URLParam(r, "gameKey"))
	if err != nil {
		writeGameError(w, err)
		return
	}
	player, err := s.authenticatePlayer(r, g)
	if err != nil {
		writeGameError(w, err)
		return
	}

	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad command body"})
		return
	}

	cmd := game.Command{Name: req.Command}
	switch req.Command {
	case "makeMove":
		if err := json.Unmarshal(req.Arguments, &cmd.Placements); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad placement list"})
			return
		}
	case "swap":
		if err := json.Unmarshal(req.Arguments, &cmd.Letters); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad letter list"})
			return
		}
	}

	log.Info().Str("game", g.Key).Str("player", player.Name).
		Str("command", req.Command).Msg("game command")

	result, err := s.registry.Execute(r.Context(), g, player, cmd)
	if err != nil {
		writeGameError(w, err)
		return
	}
	if result == nil {
		// Commands without a turn record (newGame) answer through the
		// event feed only.
		writeJSON(w, http.StatusOK, map[string]any{})
		return
	}
	writeJSON(w, http.StatusOK, result)
}
