// Package quest models a single mission: its team-voting rounds and, once a
// team is approved, the private quest votes that decide its outcome.
package quest

import (
	"errors"

	"github.com/govindlahoti/avalon-engine/internal/preset"
	"github.com/govindlahoti/avalon-engine/internal/vote"
)

// Status is the outcome of a quest.
type Status int

const (
	// InProgress means the quest has not yet resolved.
	InProgress Status = -1
	// Failed means enough quest votes rejected the mission.
	Failed Status = 0
	// Succeeded means too few quest votes rejected the mission.
	Succeeded Status = 1
)

// teamVotingRounds is the fixed number of team-proposition attempts a quest
// allows before the fifth is forced through.
const teamVotingRounds = 5

var (
	// ErrAlreadyVotedForTeam is returned when a voter already appears in
	// the active team-voting round.
	ErrAlreadyVotedForTeam = errors.New("quest: voter already cast a team vote this round")
	// ErrAlreadyVotedForQuest is returned when a voter already appears in
	// the quest-vote collection.
	ErrAlreadyVotedForQuest = errors.New("quest: voter already cast a quest vote")
	// ErrQuestTerminal is returned when a vote arrives for a quest that is
	// no longer accepting either kind of vote.
	ErrQuestTerminal = errors.New("quest: not accepting votes")
)

// Quest is per-mission state: team-vote rounds plus quest votes.
type Quest struct {
	votesNeeded    int
	failsNeeded    int
	totalPlayers   int
	teamVoteRounds [teamVotingRounds][]vote.Vote
	roundIndex     int
	questVotes     []vote.Vote
}

// New constructs a Quest from its preset configuration and the total number
// of players seated at the table (used to bound each team-voting round).
func New(cfg preset.QuestConfig, totalPlayers int) *Quest {
	return &Quest{
		votesNeeded:  cfg.VotesNeeded,
		failsNeeded:  cfg.FailsNeeded,
		totalPlayers: totalPlayers,
	}
}

// GetVotesNeeded returns the team size required for this quest.
func (q *Quest) GetVotesNeeded() int { return q.votesNeeded }

// GetFailsNeeded returns the number of quest-vote rejections needed to fail.
func (q *Quest) GetFailsNeeded() int { return q.failsNeeded }

// GetTeamVotingRoundIndex returns the current (0-based) team-voting round.
func (q *Quest) GetTeamVotingRoundIndex() int { return q.roundIndex }

// currentRound returns the votes cast in the active team-voting round.
func (q *Quest) currentRound() []vote.Vote { return q.teamVoteRounds[q.roundIndex] }

// hasVoted reports whether username already appears in votes.
func hasVoted(votes []vote.Vote, username string) bool {
	for _, v := range votes {
		if v.GetUsername() == username {
			return true
		}
	}
	return false
}

// TeamVotingAllowed reports whether the active round can still accept team
// votes: either it is under-voted, or majority approval has not (yet) been
// reached. The second disjunct stays true immediately after a
// majority-rejected complete round too: the caller is expected to treat
// that rejection as the cue to advance the round (TeamVotingRoundFinished)
// before votes resume, at which point the fresh, empty round satisfies the
// first disjunct instead.
func (q *Quest) TeamVotingAllowed() bool {
	round := q.currentRound()
	return len(round) < q.totalPlayers || !q.TeamVotingSucceeded()
}

// countRound tallies approvals and rejections in a completed round.
func countRound(round []vote.Vote) (approvals, rejections int) {
	for _, v := range round {
		if v.GetValue() {
			approvals++
		} else {
			rejections++
		}
	}
	return
}

// TeamVotingSucceeded reports whether the current round is complete and a
// strict majority approved (ties reject). On the fifth round, a non-empty
// round holding only approvals (as ForceApproveTeamVotes records) also
// counts as succeeded, even though it holds fewer than totalPlayers votes.
func (q *Quest) TeamVotingSucceeded() bool {
	round := q.currentRound()
	approvals, rejections := countRound(round)
	if q.IsLastRoundOfTeamVoting() && len(round) > 0 && rejections == 0 {
		return true
	}
	if len(round) < q.totalPlayers {
		return false
	}
	return approvals > rejections
}

// TeamVotingRoundFinished reports whether the current round is complete and
// a majority rejected; as a side effect it advances the round index, except
// on the fifth round, which is the last and is never advanced past. Once
// advanced, the new round is fresh and under-voted, so a repeat call
// against it reports false rather than advancing again.
func (q *Quest) TeamVotingRoundFinished() bool {
	round := q.currentRound()
	if len(round) < q.totalPlayers {
		return false
	}
	approvals, rejections := countRound(round)
	if approvals > rejections {
		return false
	}
	if q.roundIndex < teamVotingRounds-1 {
		q.roundIndex++
	}
	return true
}

// IsLastRoundOfTeamVoting reports whether the current round is the fifth
// (forced-approval) attempt.
func (q *Quest) IsLastRoundOfTeamVoting() bool {
	return q.roundIndex == teamVotingRounds-1
}

// AddTeamVote records a team vote in the active round. It fails with
// ErrAlreadyVotedForTeam if the voter already appears in it.
func (q *Quest) AddTeamVote(v vote.Vote) error {
	round := q.currentRound()
	if hasVoted(round, v.GetUsername()) {
		return ErrAlreadyVotedForTeam
	}
	q.teamVoteRounds[q.roundIndex] = append(round, v)
	return nil
}

// ForceApproveTeamVotes auto-approves the current (forced) round for every
// given username, used when the fifth round's team is submitted.
func (q *Quest) ForceApproveTeamVotes(usernames []string) {
	round := make([]vote.Vote, 0, len(usernames))
	for _, u := range usernames {
		round = append(round, vote.New(u, true))
	}
	q.teamVoteRounds[q.roundIndex] = round
}

// QuestVotingAllowed reports whether the team succeeded and the quest still
// needs more votes.
func (q *Quest) QuestVotingAllowed() bool {
	return q.TeamVotingSucceeded() && len(q.questVotes) < q.votesNeeded
}

// QuestVotingFinished reports whether every required quest vote is in.
func (q *Quest) QuestVotingFinished() bool {
	return len(q.questVotes) == q.votesNeeded
}

// AddQuestVote records a private quest vote. It fails with
// ErrAlreadyVotedForQuest if the voter already voted.
func (q *Quest) AddQuestVote(v vote.Vote) error {
	if hasVoted(q.questVotes, v.GetUsername()) {
		return ErrAlreadyVotedForQuest
	}
	q.questVotes = append(q.questVotes, v)
	return nil
}

// AddVote routes a vote to the team- or quest-voting collection depending
// on the quest's current phase.
func (q *Quest) AddVote(v vote.Vote) error {
	if q.QuestVotingAllowed() {
		return q.AddQuestVote(v)
	}
	if q.TeamVotingAllowed() {
		return q.AddTeamVote(v)
	}
	return ErrQuestTerminal
}

// GetStatus reports the quest's outcome: InProgress while incomplete,
// Failed when reject votes meet or exceed failsNeeded, Succeeded otherwise.
func (q *Quest) GetStatus() Status {
	if !q.QuestVotingFinished() {
		return InProgress
	}
	rejections := 0
	for _, v := range q.questVotes {
		if !v.GetValue() {
			rejections++
		}
	}
	if rejections >= q.failsNeeded {
		return Failed
	}
	return Succeeded
}

// GetQuestVotes returns the recorded quest votes.
func (q *Quest) GetQuestVotes() []vote.Vote { return q.questVotes }

// Serialize returns the wire shape of a Quest.
func (q *Quest) Serialize() map[string]any {
	rounds := make([][]map[string]any, teamVotingRounds)
	for i, round := range q.teamVoteRounds {
		serialized := make([]map[string]any, len(round))
		for j, v := range round {
			serialized[j] = v.Serialize()
		}
		rounds[i] = serialized
	}
	qVotes := make([]map[string]any, len(q.questVotes))
	for i, v := range q.questVotes {
		qVotes[i] = v.Serialize()
	}
	return map[string]any{
		"votesNeeded":          q.votesNeeded,
		"failsNeeded":          q.failsNeeded,
		"totalPlayers":         q.totalPlayers,
		"teamVoteRounds":       rounds,
		"teamVotingRoundIndex": q.roundIndex,
		"questVotes":           qVotes,
		"status":               int(q.GetStatus()),
	}
}
