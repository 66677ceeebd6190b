// Package questsmanager owns the ordered collection of five quests, the
// running score, and assassination eligibility/outcome.
package questsmanager

import (
	"errors"

	"github.com/govindlahoti/avalon-engine/internal/preset"
	"github.com/govindlahoti/avalon-engine/internal/quest"
	"github.com/govindlahoti/avalon-engine/internal/vote"
)

const numQuests = 5
const quorumToWin = 3

// AssassinationStatus is the outcome of the assassin's final guess.
type AssassinationStatus int

const (
	// Pending means assassination has not yet happened.
	Pending AssassinationStatus = iota
	// VictimWasMerlin means evil correctly named Merlin.
	VictimWasMerlin
	// VictimWasNotMerlin means evil missed.
	VictimWasNotMerlin
)

// ErrNoCurrentQuest is returned when nextQuest is called with nothing left
// to advance to.
var ErrNoCurrentQuest = errors.New("questsmanager: no quest left to advance to")

// QuestsManager is the ordered collection of Quests.
type QuestsManager struct {
	preset              preset.LevelPreset
	quests              [numQuests]*quest.Quest
	currentQuestIndex   int
	assassinationStatus AssassinationStatus
	// teamVotingRoundsExhausted records that the current quest's team
	// voting reached its forced fifth round, informational only: no
	// operation in this package branches on it.
	teamVotingRoundsExhausted bool
}

// Init constructs the five quests for a level preset and total player
// count.
func Init(lp preset.LevelPreset, totalPlayers int) *QuestsManager {
	qm := &QuestsManager{preset: lp}
	cfgs := lp.GetQuestsConfig()
	for i, cfg := range cfgs {
		qm.quests[i] = quest.New(cfg, totalPlayers)
	}
	return qm
}

// GetCurrentQuest returns the active quest.
func (qm *QuestsManager) GetCurrentQuest() *quest.Quest {
	return qm.quests[qm.currentQuestIndex]
}

// GetCurrentQuestIndex returns the 0-based index of the active quest.
func (qm *QuestsManager) GetCurrentQuestIndex() int { return qm.currentQuestIndex }

// GetQuests returns all five quests in order.
func (qm *QuestsManager) GetQuests() [numQuests]*quest.Quest { return qm.quests }

// NextQuest advances to the next quest once the current one is terminal.
// It is a no-op once the manager itself is terminal (three quests resolved
// one way or the other).
func (qm *QuestsManager) NextQuest() error {
	if qm.GetStatus() != InProgress {
		return ErrNoCurrentQuest
	}
	if qm.quests[qm.currentQuestIndex].GetStatus() == quest.InProgress {
		return ErrNoCurrentQuest
	}
	if qm.currentQuestIndex < numQuests-1 {
		qm.currentQuestIndex++
	}
	return nil
}

// AddVote delegates to the current quest.
func (qm *QuestsManager) AddVote(v vote.Vote) error {
	return qm.GetCurrentQuest().AddVote(v)
}

// Status mirrors quest.Status's overall-game tri-state.
type Status int

const (
	// InProgress means neither side has reached three quest results yet.
	InProgress Status = -1
	// EvilVictory means three quests failed.
	EvilVictory Status = 0
	// GoodVictory means three quests succeeded, provisionally pending
	// assassination.
	GoodVictory Status = 1
)

// counts tallies how many quests have succeeded and failed so far.
func (qm *QuestsManager) counts() (succeeded, failed int) {
	for _, q := range qm.quests {
		switch q.GetStatus() {
		case quest.Succeeded:
			succeeded++
		case quest.Failed:
			failed++
		}
	}
	return
}

// GetStatus reports the overall game outcome: InProgress while fewer than
// three quests have resolved either way; EvilVictory once three have
// failed; GoodVictory once three have succeeded. Once SetAssassinationStatus
// has run, it reports EvilVictory if the victim was Merlin and GoodVictory
// otherwise.
func (qm *QuestsManager) GetStatus() Status {
	succeeded, failed := qm.counts()
	if qm.assassinationStatus != Pending {
		if qm.assassinationStatus == VictimWasMerlin {
			return EvilVictory
		}
		return GoodVictory
	}
	if failed >= quorumToWin {
		return EvilVictory
	}
	if succeeded >= quorumToWin {
		return GoodVictory
	}
	return InProgress
}

// AssassinationIsAllowed reports whether good has won three quests and the
// assassin has not yet acted.
func (qm *QuestsManager) AssassinationIsAllowed() bool {
	succeeded, _ := qm.counts()
	return succeeded >= quorumToWin && qm.assassinationStatus == Pending
}

// SetAssassinationStatus finalises the assassination outcome.
func (qm *QuestsManager) SetAssassinationStatus(victimWasMerlin bool) {
	if victimWasMerlin {
		qm.assassinationStatus = VictimWasMerlin
		return
	}
	qm.assassinationStatus = VictimWasNotMerlin
}

// GetAssassinationStatus returns the raw assassination outcome.
func (qm *QuestsManager) GetAssassinationStatus() AssassinationStatus {
	return qm.assassinationStatus
}

// MarkTeamVotingRoundsExhausted records that the current quest's team
// voting reached its forced fifth round.
func (qm *QuestsManager) MarkTeamVotingRoundsExhausted() {
	qm.teamVotingRoundsExhausted = true
}

// Serialize returns the wire shape of a QuestsManager.
func (qm *QuestsManager) Serialize() map[string]any {
	quests := make([]map[string]any, numQuests)
	for i, q := range qm.quests {
		quests[i] = q.Serialize()
	}
	var assassination any
	switch qm.assassinationStatus {
	case VictimWasMerlin:
		assassination = "SUCCESS"
	case VictimWasNotMerlin:
		assassination = "FAIL"
	default:
		assassination = nil
	}
	return map[string]any{
		"quests":                    quests,
		"currentQuestIndex":         qm.currentQuestIndex,
		"assassinationStatus":       assassination,
		"teamVotingRoundsExhausted": qm.teamVotingRoundsExhausted,
		"status":                    int(qm.GetStatus()),
	}
}
