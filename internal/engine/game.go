// Package engine composes Role, Vote, Player, LevelPreset, Quest,
// QuestsManager and PlayersManager into the running game: the finite state
// machine, its per-state command policy, and the Game facade that exposes
// the command surface and produces snapshots.
package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/govindlahoti/avalon-engine/internal/player"
	"github.com/govindlahoti/avalon-engine/internal/playersmanager"
	"github.com/govindlahoti/avalon-engine/internal/preset"
	"github.com/govindlahoti/avalon-engine/internal/questsmanager"
	"github.com/govindlahoti/avalon-engine/internal/random"
	"github.com/govindlahoti/avalon-engine/internal/role"
	"github.com/govindlahoti/avalon-engine/internal/vote"
)

// Game owns the player roster, the quest collection, the state machine and
// the currently active state. It is the only thing an external collaborator
// touches; states and managers never outlive it.
type Game struct {
	mu sync.Mutex

	id        string
	createdAt time.Time
	startedAt time.Time
	finished  time.Time

	rolesAreRevealed bool
	revealPending    bool
	revealDone       chan struct{}

	fsm         *gameStateMachine
	waits       waitConfig
	random      random.Source
	players     *playersmanager.PlayersManager
	quests      *questsmanager.QuestsManager
	levelPreset preset.LevelPreset

	lastTransitionDone <-chan struct{}
}

// Option configures a Game at construction time.
type Option func(*Game)

// WithWaits overrides the three named freeze windows; any zero field falls
// back to defaultWait.
func WithWaits(afterTeamProposition, afterTeamVoting, afterQuestVoting time.Duration) Option {
	return func(g *Game) {
		if afterTeamProposition > 0 {
			g.waits.afterTeamProposition = afterTeamProposition
		}
		if afterTeamVoting > 0 {
			g.waits.afterTeamVoting = afterTeamVoting
		}
		if afterQuestVoting > 0 {
			g.waits.afterQuestVoting = afterQuestVoting
		}
	}
}

// New constructs a fresh Game in Preparation, seeded with src for role
// assignment and leader selection.
func New(src random.Source, opts ...Option) *Game {
	g := &Game{
		id:        uuid.NewString(),
		createdAt: time.Now(),
		fsm:       newGameStateMachine(),
		waits:     defaultWaitConfig(),
		random:    src,
		players:   playersmanager.New(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the game's stable identifier.
func (g *Game) ID() string { return g.id }

// doTransition moves the FSM from its current state to target, honouring
// permitted. Callers must already hold g.mu. A wait > 0 installs Frozen
// immediately and schedules the real arrival after wait elapses; onArrive
// (if non-nil) runs exactly once, at the moment target is actually
// installed: synchronously here, or inside the timer callback, which
// re-acquires g.mu before running it.
func (g *Game) doTransition(target stateKind, wait time.Duration, onArrive func()) (<-chan struct{}, error) {
	if !g.fsm.canGo(g.fsm.current, target) {
		return nil, newError(KindIllegalTransition, "illegal transition from "+g.fsm.current.String()+" to "+target.String())
	}
	done := make(chan struct{})
	g.lastTransitionDone = done
	if wait <= 0 {
		g.fsm.current = target
		if onArrive != nil {
			onArrive()
		}
		close(done)
		return done, nil
	}
	g.fsm.current = stateFrozen
	time.AfterFunc(wait, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		g.fsm.current = target
		if onArrive != nil {
			onArrive()
		}
		close(done)
	})
	return done, nil
}

// LastTransitionDone returns the completion channel of the most recently
// requested transition, closed once its Frozen window (if any) elapses.
// Tests use it to deterministically wait out a freeze instead of sleeping.
func (g *Game) LastTransitionDone() <-chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastTransitionDone
}

// QuestsStatus reports the overall quest score, or InProgress before Start.
func (g *Game) QuestsStatus() questsmanager.Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.quests == nil {
		return questsmanager.InProgress
	}
	return g.quests.GetStatus()
}

// CurrentQuestVotesNeeded returns the active quest's required team size, or
// 0 before Start.
func (g *Game) CurrentQuestVotesNeeded() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.quests == nil {
		return 0
	}
	return g.quests.GetCurrentQuest().GetVotesNeeded()
}

// UsernameWithRole returns the username of whichever seated player was
// dealt id, or "" if none (or roles have not been assigned yet).
func (g *Game) UsernameWithRole(id role.ID) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, p := range g.players.GetAll() {
		if r := p.GetRole(); r != nil && r.GetID() == id {
			return p.GetUsername()
		}
	}
	return ""
}

// LeaderUsername returns the current leader's username, or "" before one
// has been chosen.
func (g *Game) LeaderUsername() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	l := g.players.GetLeader()
	if l == nil {
		return ""
	}
	return l.GetUsername()
}

// State returns the name of the current state, per the snapshot's "state"
// field.
func (g *Game) State() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fsm.current.String()
}

// AddPlayer adds p to the roster. Valid only in Preparation.
func (g *Game) AddPlayer(p *player.Player) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fsm.current != statePreparation {
		return newError(KindGameAlreadyStarted, "cannot add players once the game has started")
	}
	switch err := g.players.Add(p); err {
	case nil:
		return nil
	case playersmanager.ErrUsernameAlreadyExists:
		return newError(KindUsernameAlreadyExists, err.Error())
	case playersmanager.ErrMaximumPlayersReached:
		return newError(KindMaximumPlayersReached, err.Error())
	default:
		return newError(KindUsernameAlreadyExists, err.Error())
	}
}

// Start validates the roster size, assigns roles and quests, and moves the
// game into TeamProposition. opts may be nil to use only the mandatory
// roles (Merlin, Assassin).
func (g *Game) Start(opts *playersmanager.RoleOptions) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fsm.current != statePreparation {
		return newError(KindGameAlreadyStarted, "game has already started")
	}
	count := g.players.Count()
	if count < 5 || count > 10 {
		return newError(KindIncorrectNumberOfPlayers, "player count must be between 5 and 10")
	}
	lp, err := preset.For(count)
	if err != nil {
		return newError(KindIncorrectNumberOfPlayers, err.Error())
	}
	g.levelPreset = lp
	g.quests = questsmanager.Init(lp, count)
	g.players.AssignRoles(lp, opts, g.random)
	g.startedAt = time.Now()

	_, tErr := g.doTransition(stateTeamProposition, 0, nil)
	return tErr
}

// RevealRoles starts (or rejoins) a one-shot concealment timer that flips
// rolesAreRevealed after seconds elapse. A call while a previous timer is
// still pending returns its existing completion handle rather than
// starting a second timer; a call after a prior reveal completed starts a
// fresh one. Valid any time after Start.
func (g *Game) RevealRoles(seconds int) (<-chan struct{}, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fsm.current == statePreparation {
		return nil, newError(KindNoRevealTime, "revealRoles requires the game to have started")
	}
	if g.revealPending {
		return g.revealDone, nil
	}
	done := make(chan struct{})
	g.revealDone = done
	g.revealPending = true
	time.AfterFunc(time.Duration(seconds)*time.Second, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		g.rolesAreRevealed = true
		g.revealPending = false
		close(done)
	})
	return done, nil
}

// ToggleIsProposed flips a player's proposed flag. Only the leader may
// call it, and only before the team has been submitted.
func (g *Game) ToggleIsProposed(leaderUsername, targetUsername string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fsm.current != stateTeamProposition {
		return newError(KindNoPropositionTime, "not in team proposition")
	}
	if !g.players.IsAllowedToProposePlayer(leaderUsername) {
		return newError(KindNoRightToPropose, "only the leader may propose players")
	}
	g.players.ToggleIsProposed(targetUsername)
	return nil
}

// SubmitTeam locks in the currently proposed team for this quest. On
// success it moves to TeamVoting, or to TeamVotingPreApproved on the
// forced fifth round.
func (g *Game) SubmitTeam(leaderUsername string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fsm.current != stateTeamProposition {
		return newError(KindNoRightToSubmitTeam, "not in team proposition")
	}
	if !g.players.IsAllowedToProposeTeam(leaderUsername) {
		return newError(KindNoRightToSubmitTeam, "only the leader may submit the team")
	}
	q := g.quests.GetCurrentQuest()
	proposed := g.players.GetProposedPlayers()
	if len(proposed) != q.GetVotesNeeded() {
		return newError(KindIncorrectNumberOfPlayers, "proposed team size does not match this quest")
	}
	g.players.MarkAsSubmitted()

	usernames := make([]string, len(proposed))
	for i, p := range proposed {
		usernames[i] = p.GetUsername()
	}

	if q.IsLastRoundOfTeamVoting() {
		_, err := g.doTransition(stateTeamVotingPreApproved, g.waits.afterTeamProposition, func() {
			g.quests.MarkTeamVotingRoundsExhausted()
			q.ForceApproveTeamVotes(usernames)
			g.players.ResetVotes()
			_, _ = g.doTransition(stateQuestVoting, g.waits.afterTeamVoting, nil)
		})
		return err
	}
	_, err := g.doTransition(stateTeamVoting, g.waits.afterTeamProposition, nil)
	return err
}

// VoteForTeam records a public approve/reject vote on the proposed team.
// When the round completes it either advances to QuestVoting (majority
// approved) or returns leadership to the next seat and reopens
// TeamProposition (majority rejected, and this is not the forced round).
func (g *Game) VoteForTeam(username string, value bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fsm.current != stateTeamVoting {
		return newError(KindNoVotingTime, "not in team voting")
	}
	if !g.players.IsAllowedToVoteForTeam(username) {
		return newError(KindNoRightToVote, "player may not vote for the team right now")
	}
	v := vote.New(username, value)
	q := g.quests.GetCurrentQuest()
	if err := q.AddTeamVote(v); err != nil {
		return newError(KindNoRightToVote, err.Error())
	}
	g.players.SetVote(v)

	if q.TeamVotingSucceeded() {
		_, err := g.doTransition(stateQuestVoting, g.waits.afterTeamVoting, func() {
			g.players.ResetVotes()
		})
		return err
	}
	if q.TeamVotingRoundFinished() {
		// A majority-rejected round on the forced fifth attempt never reaches
		// here: the fifth round is entered via TeamVotingPreApproved, which
		// skips team voting entirely.
		g.players.UnmarkAsSubmitted()
		_, err := g.doTransition(stateTeamProposition, g.waits.afterTeamVoting, func() {
			g.players.ResetPropositions()
			g.players.ResetVotes()
			g.players.NextLeader()
		})
		return err
	}
	return nil
}

// VoteForQuest records a private approve/reject vote on the current
// quest's outcome. Once every vote is in, the quest resolves and the game
// advances: to Finish on a terminal score, to Assassination once good has
// three wins, or back to TeamProposition for the next quest.
func (g *Game) VoteForQuest(username string, value bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fsm.current != stateQuestVoting {
		return newError(KindNoVotingTime, "not in quest voting")
	}
	if !g.players.IsAllowedToVoteForQuest(username) {
		return newError(KindNoRightToVote, "player may not vote for the quest right now")
	}
	v := vote.New(username, value)
	if err := g.quests.GetCurrentQuest().AddQuestVote(v); err != nil {
		return newError(KindNoRightToVote, err.Error())
	}
	g.players.SetVote(v)

	if !g.quests.GetCurrentQuest().QuestVotingFinished() {
		return nil
	}

	switch {
	case g.quests.GetStatus() != questsmanager.InProgress && !g.quests.AssassinationIsAllowed():
		_, err := g.doTransition(stateFinish, g.waits.afterQuestVoting, func() {
			g.finished = time.Now()
		})
		return err
	case g.quests.AssassinationIsAllowed():
		_, err := g.doTransition(stateAssassination, g.waits.afterQuestVoting, nil)
		return err
	default:
		_, err := g.doTransition(stateTeamProposition, g.waits.afterQuestVoting, func() {
			g.players.ResetVotes()
			g.players.ResetPropositions()
			g.players.NextLeader()
			_ = g.quests.NextQuest()
		})
		return err
	}
}

// Assassinate resolves the game's final act: the assassin names a victim,
// and the outcome flips to evil victory iff the victim was Merlin.
func (g *Game) Assassinate(assassinUsername, victimUsername string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fsm.current != stateAssassination {
		return newError(KindNoAssassinationTime, "not in assassination")
	}
	victim := g.players.Get(victimUsername)
	if victim == nil {
		return newError(KindNoRightToAssassinate, "unknown victim")
	}
	if err := g.players.Assassinate(assassinUsername, victimUsername); err != nil {
		return newError(KindNoRightToAssassinate, err.Error())
	}
	victimWasMerlin := victim.GetRole() != nil && victim.GetRole().GetID() == role.Merlin
	g.quests.SetAssassinationStatus(victimWasMerlin)

	_, err := g.doTransition(stateFinish, 0, func() {
		g.finished = time.Now()
	})
	return err
}
