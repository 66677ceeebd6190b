// Package player holds a single participant's identity, current secret
// role, current vote, and seating/flag state within one game.
package player

import (
	"github.com/govindlahoti/avalon-engine/internal/role"
	"github.com/govindlahoti/avalon-engine/internal/vote"
)

// Player holds identity, current role, current vote, and flags. Username
// uniquely identifies the player within a game. Role and IsAssassin are
// assigned exactly once, at game start; vote is set and cleared repeatedly;
// IsAssassinated is set at most once.
type Player struct {
	username string
	// index is the seat order assigned on creation, used by the roster to
	// rotate leadership modulo the player count.
	index int

	role *role.Role
	vote *vote.Vote

	isLeader       bool
	isProposed     bool
	isAssassin     bool
	isAssassinated bool
	isGameCreator  bool
}

// New constructs a Player with no role or vote assigned yet.
func New(username string, index int) *Player {
	return &Player{username: username, index: index}
}

// GetUsername returns the player's username.
func (p *Player) GetUsername() string { return p.username }

// GetIndex returns the player's seat order.
func (p *Player) GetIndex() int { return p.index }

// GetRole returns the player's assigned role, or nil before assignment.
func (p *Player) GetRole() *role.Role { return p.role }

// SetRole assigns a role to the player.
func (p *Player) SetRole(r role.Role) { p.role = &r }

// GetVote returns the player's current vote, or nil if none is recorded.
func (p *Player) GetVote() *vote.Vote { return p.vote }

// SetVote records a vote for the player.
func (p *Player) SetVote(v vote.Vote) { p.vote = &v }

// ClearVote removes any recorded vote.
func (p *Player) ClearVote() { p.vote = nil }

// IsLeader reports whether the player currently holds the leader flag.
func (p *Player) IsLeader() bool { return p.isLeader }

// SetLeader sets or clears the leader flag.
func (p *Player) SetLeader(v bool) { p.isLeader = v }

// IsProposed reports whether the player is currently on the proposed team.
func (p *Player) IsProposed() bool { return p.isProposed }

// SetProposed sets or clears the proposed flag.
func (p *Player) SetProposed(v bool) { p.isProposed = v }

// IsAssassin reports whether the player was dealt the Assassin role.
func (p *Player) IsAssassin() bool { return p.isAssassin }

// MarkAssassin flags the player as the assassin.
func (p *Player) MarkAssassin() { p.isAssassin = true }

// IsAssassinated reports whether the player has been named as a victim.
func (p *Player) IsAssassinated() bool { return p.isAssassinated }

// MarkAssassinated flags the player as assassinated. Set at most once.
func (p *Player) MarkAssassinated() { p.isAssassinated = true }

// IsGameCreator reports whether the player was the first one added.
func (p *Player) IsGameCreator() bool { return p.isGameCreator }

// MarkGameCreator flags the player as the game's creator.
func (p *Player) MarkGameCreator() { p.isGameCreator = true }

// CanSee delegates to the underlying role's visibility predicate. It
// reports false if either player has no role assigned yet.
func (p *Player) CanSee(other *Player) bool {
	if p.role == nil || other.role == nil {
		return false
	}
	return p.role.CanSee(*other.role)
}

// Serialize returns the wire shape of a Player.
func (p *Player) Serialize() map[string]any {
	out := map[string]any{
		"username":       p.username,
		"isAssassinated": p.isAssassinated,
	}
	if p.role != nil {
		out["role"] = p.role.Serialize()
	} else {
		out["role"] = nil
	}
	if p.vote != nil {
		out["vote"] = p.vote.Serialize()
	} else {
		out["vote"] = nil
	}
	return out
}
