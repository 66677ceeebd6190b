package engine

// Serialize returns the wire shape of a Game: identity/timestamps, the
// reveal flag, the two managers, and the current state's name. Each entity
// contributes its own Serialize rather than walking the struct
// reflectively.
func (g *Game) Serialize() map[string]any {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := map[string]any{
		"id":               g.id,
		"createdAt":        g.createdAt,
		"startedAt":        g.startedAt,
		"finishedAt":       g.finished,
		"rolesAreRevealed": g.rolesAreRevealed,
		"playersManager":   g.players.Serialize(),
		"state":            g.fsm.current.String(),
	}
	if g.quests != nil {
		out["questsManager"] = g.quests.Serialize()
	} else {
		out["questsManager"] = nil
	}
	return out
}
