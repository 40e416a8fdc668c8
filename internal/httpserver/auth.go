// internal/httpserver/auth.go
//
// The capability cookie. Following a join link stores the player's
// capability key in a signed JWT cookie named after the game, so later
// requests carry the credential without it appearing in every URL.
// The JWT only wraps the key for tamper-proof transport; the key
// itself is what authenticates the player.

package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mixtape-audio/html-scrabble/internal/game"
)

// cookieTTL matches the original client's 30-day join cookie.
const cookieTTL = 30 * 24 * time.Hour

// signPlayerToken wraps a player's capability key for one game.
func (s *Server) signPlayerToken(gameKey, playerKey string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"game":   gameKey,
		"player": playerKey,
		"exp":    now.Add(cookieTTL).Unix(),
		"iat":    now.Unix(),
	})
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// setPlayerCookie stores the signed token under the game's key.
func setPlayerCookie(w http.ResponseWriter, gameKey, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     gameKey,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(cookieTTL),
	})
}

// playerKeyFromRequest extracts and verifies the capability key for
// the given game from the request's cookie.
func (s *Server) playerKeyFromRequest(r *http.Request, gameKey string) (string, error) {
	c, err := r.Cookie(gameKey)
	if err != nil {
		return "", errors.New("no capability cookie")
	}
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(c.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid capability cookie")
	}
	if g, _ := claims["game"].(string); g != gameKey {
		return "", errors.New("capability cookie is for another game")
	}
	key, _ := claims["player"].(string)
	if key == "" {
		return "", errors.New("capability cookie holds no player key")
	}
	return key, nil
}

// authenticatePlayer resolves the request to one player of g, or fails
// with the engine's player-not-found error.
func (s *Server) authenticatePlayer(r *http.Request, g *game.Game) (*game.Player, error) {
	key, err := s.playerKeyFromRequest(r, g.Key)
	if err != nil {
		return nil, game.ErrPlayerNotFound
	}
	return g.LookupPlayer(key)
}
