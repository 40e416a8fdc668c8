// internal/httpserver/ws.go
//
// The real-time event feed. A client opens one websocket per game and
// receives every hub event as a JSON frame. The writer goroutine is
// the only writer on the connection; a failed or slow socket is torn
// down and its hub subscription dropped silently.

package httpserver

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/go-chi/chi/v5"
)

const (
	// writeWait bounds one websocket write.
	writeWait = 10 * time.Second
	// pingPeriod keeps idle connections alive through proxies.
	pingPeriod = 50 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := os.Getenv("CLIENT_ORIGIN")
		return origin == "" || r.Header.Get("Origin") == origin
	},
}

// handleSocket subscribes a websocket client to a game's events.
func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	g, err := s.registry.Get(r.Context(), chi.URLParam(r, "gameKey"))
	if err != nil {
		writeGameError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("game", g.Key).Msg("websocket upgrade failed")
		return
	}

	events, cancel := g.Hub().Subscribe()
	log.Debug().Str("game", g.Key).Int("listeners", g.Hub().Listeners()).
		Msg("listener joined")

	// Writer: hub events and keepalive pings.
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		defer conn.Close()
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(ev); err != nil {
					cancel()
					return
				}
			case <-ticker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					cancel()
					return
				}
			}
		}
	}()

	// Reader: the feed is one-way; reads only detect disconnection.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()
}
