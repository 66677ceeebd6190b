package engine

import (
	"time"

	"github.com/govindlahoti/avalon-engine/internal/player"
	"github.com/govindlahoti/avalon-engine/internal/random"
	"github.com/govindlahoti/avalon-engine/internal/role"
)

// fastWaits collapses every freeze window to a single millisecond so tests
// observe the real state transitions without a multi-second sleep.
func fastWaits() Option {
	return WithWaits(time.Millisecond, time.Millisecond, time.Millisecond)
}

func newTestGame(seed int64, usernames ...string) *Game {
	g := New(random.New(seed), fastWaits())
	for i, name := range usernames {
		_ = g.AddPlayer(player.New(name, i))
	}
	return g
}

func await(g *Game) {
	<-g.LastTransitionDone()
}

func findByRole(g *Game, id role.ID) string {
	for _, p := range g.players.GetAll() {
		if r := p.GetRole(); r != nil && r.GetID() == id {
			return p.GetUsername()
		}
	}
	return ""
}

func sevenPlayers() []string {
	return []string{"alice", "bob", "carol", "dave", "erin", "frank", "grace"}
}
