package engine

import "time"

// stateKind tags the finite set of states a Game can occupy. A tagged kind
// plus a dispatch table stands in for a per-state class hierarchy.
type stateKind int

const (
	statePreparation stateKind = iota
	stateTeamProposition
	stateTeamVoting
	stateTeamVotingPreApproved
	stateQuestVoting
	stateAssassination
	stateFrozen
	stateFinish
)

func (k stateKind) String() string {
	switch k {
	case statePreparation:
		return "Preparation"
	case stateTeamProposition:
		return "TeamProposition"
	case stateTeamVoting:
		return "TeamVoting"
	case stateTeamVotingPreApproved:
		return "TeamVotingPreApproved"
	case stateQuestVoting:
		return "QuestVoting"
	case stateAssassination:
		return "Assassination"
	case stateFrozen:
		return "Frozen"
	case stateFinish:
		return "Finish"
	default:
		return "Unknown"
	}
}

// permitted is the directed transition table for the game's states. A
// transition not listed here fails with KindIllegalTransition.
var permitted = map[stateKind]map[stateKind]bool{
	statePreparation:           {stateTeamProposition: true},
	stateTeamProposition:       {stateTeamVoting: true, stateTeamVotingPreApproved: true},
	stateTeamVoting:            {stateTeamProposition: true, stateQuestVoting: true},
	stateTeamVotingPreApproved: {stateQuestVoting: true},
	stateQuestVoting:           {stateTeamProposition: true, stateAssassination: true, stateFinish: true},
	stateAssassination:         {stateFinish: true},
}

// defaultWait is the freeze duration each of the three named waits starts
// with. Transitions that use none of the named waits do not freeze.
const defaultWait = 5000 * time.Millisecond

// waitConfig holds the three named freeze windows a game can be configured
// with.
type waitConfig struct {
	afterTeamProposition time.Duration
	afterTeamVoting      time.Duration
	afterQuestVoting     time.Duration
}

func defaultWaitConfig() waitConfig {
	return waitConfig{
		afterTeamProposition: defaultWait,
		afterTeamVoting:      defaultWait,
		afterQuestVoting:     defaultWait,
	}
}

// gameStateMachine is the tagged-state FSM. It never runs timers itself:
// Game owns the mutex any timer callback must take, so Game's doTransition
// drives the clock and this type only tracks the current tag and validates
// moves against permitted.
type gameStateMachine struct {
	current stateKind
}

func newGameStateMachine() *gameStateMachine {
	return &gameStateMachine{current: statePreparation}
}

// canGo reports whether target is a permitted move from the given from
// state. Frozen has no entry in permitted, so no move out of it is allowed.
func (fsm *gameStateMachine) canGo(from, target stateKind) bool {
	return permitted[from][target]
}
