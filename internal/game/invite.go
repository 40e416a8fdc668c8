// internal/game/invite.go
//
// Invitation mail sent to every player at game creation. The mail
// carries the player's personal join link — the only channel their
// capability key travels over.

package game

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// inviteTimeout bounds one mail delivery attempt.
const inviteTimeout = 30 * time.Second

// JoinLink is the URL a player follows to take their seat.
func (r *Registry) JoinLink(g *Game, p *Player) string {
	link := r.baseURL + "game/" + g.Key
	if p != nil {
		link += "/" + p.Key
	}
	return link
}

// sendInvitation mails one player their join link. Failure is logged
// and otherwise ignored; the game exists regardless.
func (r *Registry) sendInvitation(g *Game, p *Player) {
	if r.mailer == nil || p.Email == "" {
		return
	}

	var others []string
	for _, other := range g.Players {
		if other != p {
			others = append(others, other.Name)
		}
	}
	link := r.JoinLink(g, p)
	subject := "You have been invited to play Scrabble with " + joinProse(others)
	text := "Use this link to play:\n\n" + link
	html := fmt.Sprintf(`Click <a href="%s">here</a> to play.`, link)

	ctx, cancel := context.WithTimeout(context.Background(), inviteTimeout)
	defer cancel()
	if err := r.mailer.Send(ctx, p.Email, subject, text, html); err != nil {
		log.Error().Err(err).Str("game", g.Key).Str("to", p.Email).
			Msg("sending invitation mail failed")
	}
}

// joinProse renders a name list the way a sentence would:
// "Alice", "Alice and Bob", "Alice, Bob and Carol".
func joinProse(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}
