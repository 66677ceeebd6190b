// Package playersmanager owns the player roster: membership, leader
// rotation, role assignment, and routing of team propositions, submissions
// and votes to the right player.
package playersmanager

import (
	"errors"

	"github.com/govindlahoti/avalon-engine/internal/player"
	"github.com/govindlahoti/avalon-engine/internal/preset"
	"github.com/govindlahoti/avalon-engine/internal/random"
	"github.com/govindlahoti/avalon-engine/internal/role"
	"github.com/govindlahoti/avalon-engine/internal/vote"
)

// MaxPlayers is the hard ceiling on roster size.
const MaxPlayers = 10

var (
	// ErrNilPlayer is returned by Add for a nil player.
	ErrNilPlayer = errors.New("playersmanager: player must not be nil")
	// ErrUsernameAlreadyExists is returned by Add for a duplicate username.
	ErrUsernameAlreadyExists = errors.New("playersmanager: username already exists")
	// ErrMaximumPlayersReached is returned by Add once the roster is full.
	ErrMaximumPlayersReached = errors.New("playersmanager: maximum players reached")
	// ErrNoRightToAssassinate is returned when a non-assassin calls
	// Assassinate.
	ErrNoRightToAssassinate = errors.New("playersmanager: caller is not the assassin")
)

// RoleOptions toggles which optional roles are in play. Merlin and
// Assassin are always included regardless of these flags.
type RoleOptions struct {
	Percival bool
	Morgana  bool
	Mordred  bool
	Oberon   bool
}

// PlayersManager is the player roster, leader rotation, role assignment and
// proposition/submission/vote routing.
type PlayersManager struct {
	players     []*player.Player
	byUsername  map[string]*player.Player
	leaderIndex int
	hasLeader   bool
	isSubmitted bool
}

// New constructs an empty roster.
func New() *PlayersManager {
	return &PlayersManager{byUsername: make(map[string]*player.Player)}
}

// Add appends a player to the roster. It rejects a nil player, a duplicate
// username, or a roster already at MaxPlayers. The first successful add is
// flagged as the game creator.
func (pm *PlayersManager) Add(p *player.Player) error {
	if p == nil {
		return ErrNilPlayer
	}
	if _, exists := pm.byUsername[p.GetUsername()]; exists {
		return ErrUsernameAlreadyExists
	}
	if len(pm.players) >= MaxPlayers {
		return ErrMaximumPlayersReached
	}
	if len(pm.players) == 0 {
		p.MarkGameCreator()
	}
	pm.players = append(pm.players, p)
	pm.byUsername[p.GetUsername()] = p
	return nil
}

// GetAll returns every player in seating order.
func (pm *PlayersManager) GetAll() []*player.Player { return pm.players }

// Count returns the current roster size.
func (pm *PlayersManager) Count() int { return len(pm.players) }

// Get returns a player by username, or nil if absent.
func (pm *PlayersManager) Get(username string) *player.Player {
	return pm.byUsername[username]
}

// defaultPool returns the always-included roles (Merlin, Assassin) plus the
// optional roles selected by opts, in a fixed order; AssignRoles shuffles
// the resulting pool before dealing it to seats.
func defaultPool(opts *RoleOptions) []role.ID {
	pool := []role.ID{role.Merlin, role.Assassin}
	if opts != nil {
		if opts.Percival {
			pool = append(pool, role.Percival)
		}
		if opts.Morgana {
			pool = append(pool, role.Morgana)
		}
		if opts.Mordred {
			pool = append(pool, role.Mordred)
		}
		if opts.Oberon {
			pool = append(pool, role.Oberon)
		}
	}
	return pool
}

// AssignRoles deals roles to every seated player: the full pool is built
// from defaultPool (Merlin and Assassin always present) padded with
// numbered Servant/Minion fillers up to the preset's goodCount/evilCount,
// then shuffled across seats via src. An optional role that would push its
// side past the preset's count is left out. A random starting leader is
// also chosen. opts may be nil to use only the mandatory roles.
func (pm *PlayersManager) AssignRoles(lp preset.LevelPreset, opts *RoleOptions, src random.Source) {
	var pool []role.ID
	goodUsed, evilUsed := 0, 0
	for _, id := range defaultPool(opts) {
		if role.New(id).GetLoyalty() == role.Good {
			if goodUsed >= lp.GetGoodCount() {
				continue
			}
			goodUsed++
		} else {
			if evilUsed >= lp.GetEvilCount() {
				continue
			}
			evilUsed++
		}
		pool = append(pool, id)
	}

	servant := 1
	for goodUsed < lp.GetGoodCount() {
		pool = append(pool, role.ServantN(servant))
		servant++
		goodUsed++
	}
	minion := 1
	for evilUsed < lp.GetEvilCount() {
		pool = append(pool, role.MinionN(minion))
		minion++
		evilUsed++
	}

	shuffled := make([]role.ID, len(pool))
	copy(shuffled, pool)
	src.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	for i, p := range pm.players {
		r := role.New(shuffled[i])
		p.SetRole(r)
		if r.GetID() == role.Assassin {
			p.MarkAssassin()
		}
	}

	pm.leaderIndex = src.Intn(len(pm.players))
	pm.hasLeader = true
	pm.players[pm.leaderIndex].SetLeader(true)
}

// NextLeader transfers leadership to the next seat, modulo roster size.
func (pm *PlayersManager) NextLeader() {
	if len(pm.players) == 0 {
		return
	}
	if pm.hasLeader {
		pm.players[pm.leaderIndex].SetLeader(false)
	}
	pm.leaderIndex = (pm.leaderIndex + 1) % len(pm.players)
	pm.hasLeader = true
	pm.players[pm.leaderIndex].SetLeader(true)
}

// GetLeader returns the current leader, or nil if none has been chosen yet.
func (pm *PlayersManager) GetLeader() *player.Player {
	if !pm.hasLeader {
		return nil
	}
	return pm.players[pm.leaderIndex]
}

// ToggleIsProposed flips the proposed flag for the named player. It is a
// no-op for an empty or unknown username.
func (pm *PlayersManager) ToggleIsProposed(username string) {
	p := pm.byUsername[username]
	if p == nil {
		return
	}
	p.SetProposed(!p.IsProposed())
}

// GetProposedPlayers returns every player currently marked proposed.
func (pm *PlayersManager) GetProposedPlayers() []*player.Player {
	proposed := make([]*player.Player, 0)
	for _, p := range pm.players {
		if p.IsProposed() {
			proposed = append(proposed, p)
		}
	}
	return proposed
}

// GetAssassin returns the player dealt the Assassin role, or nil.
func (pm *PlayersManager) GetAssassin() *player.Player {
	for _, p := range pm.players {
		if p.IsAssassin() {
			return p
		}
	}
	return nil
}

// GetVictim returns the assassinated player, or nil if none.
func (pm *PlayersManager) GetVictim() *player.Player {
	for _, p := range pm.players {
		if p.IsAssassinated() {
			return p
		}
	}
	return nil
}

// GetGameCreator returns the first player added to the roster.
func (pm *PlayersManager) GetGameCreator() *player.Player {
	for _, p := range pm.players {
		if p.IsGameCreator() {
			return p
		}
	}
	return nil
}

// IsAllowedToProposePlayer reports whether username is the current leader.
func (pm *PlayersManager) IsAllowedToProposePlayer(username string) bool {
	leader := pm.GetLeader()
	return leader != nil && leader.GetUsername() == username
}

// IsAllowedToProposeTeam is an alias of IsAllowedToProposePlayer: only the
// leader may submit the team.
func (pm *PlayersManager) IsAllowedToProposeTeam(username string) bool {
	return pm.IsAllowedToProposePlayer(username)
}

// MarkAsSubmitted records that the leader has submitted the proposed team.
func (pm *PlayersManager) MarkAsSubmitted() { pm.isSubmitted = true }

// UnmarkAsSubmitted clears the submission flag.
func (pm *PlayersManager) UnmarkAsSubmitted() { pm.isSubmitted = false }

// GetIsSubmitted reports whether the team has been submitted.
func (pm *PlayersManager) GetIsSubmitted() bool { return pm.isSubmitted }

// SetVote assigns a vote to the named player, if present.
func (pm *PlayersManager) SetVote(v vote.Vote) {
	p := pm.byUsername[v.GetUsername()]
	if p == nil {
		return
	}
	p.SetVote(v)
}

// IsAllowedToVoteForTeam reports whether username names a known player who
// has not yet cast a vote this round.
func (pm *PlayersManager) IsAllowedToVoteForTeam(username string) bool {
	p := pm.byUsername[username]
	return p != nil && p.GetVote() == nil
}

// IsAllowedToVoteForQuest reports whether username names a known, proposed
// player who has not yet cast a vote.
func (pm *PlayersManager) IsAllowedToVoteForQuest(username string) bool {
	p := pm.byUsername[username]
	return p != nil && p.IsProposed() && p.GetVote() == nil
}

// ResetVotes clears every player's recorded vote.
func (pm *PlayersManager) ResetVotes() {
	for _, p := range pm.players {
		p.ClearVote()
	}
}

// ResetPropositions clears every player's proposed flag.
func (pm *PlayersManager) ResetPropositions() {
	for _, p := range pm.players {
		p.SetProposed(false)
	}
}

// Reset clears both votes and propositions.
func (pm *PlayersManager) Reset() {
	pm.ResetVotes()
	pm.ResetPropositions()
}

// Assassinate marks target assassinated, provided assassinUsername is
// actually the assassin.
func (pm *PlayersManager) Assassinate(assassinUsername, victimUsername string) error {
	assassin := pm.GetAssassin()
	if assassin == nil || assassin.GetUsername() != assassinUsername {
		return ErrNoRightToAssassinate
	}
	victim := pm.byUsername[victimUsername]
	if victim == nil {
		return ErrNoRightToAssassinate
	}
	victim.MarkAssassinated()
	return nil
}

// Serialize returns the wire shape of a PlayersManager.
func (pm *PlayersManager) Serialize() map[string]any {
	players := make([]map[string]any, len(pm.players))
	for i, p := range pm.players {
		players[i] = p.Serialize()
	}
	return map[string]any{
		"players":     players,
		"isSubmitted": pm.isSubmitted,
	}
}
