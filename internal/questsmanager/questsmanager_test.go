package questsmanager

import (
	"testing"

	"github.com/govindlahoti/avalon-engine/internal/preset"
	"github.com/govindlahoti/avalon-engine/internal/vote"
)

func succeedCurrentQuest(t *testing.T, qm *QuestsManager, players []string) {
	t.Helper()
	q := qm.GetCurrentQuest()
	for _, name := range players[:q.GetVotesNeeded()] {
		_ = q.AddTeamVote(vote.New(name, true))
	}
	for _, name := range players[:q.GetVotesNeeded()] {
		_ = q.AddQuestVote(vote.New(name, true))
	}
}

func failCurrentQuest(t *testing.T, qm *QuestsManager, players []string) {
	t.Helper()
	q := qm.GetCurrentQuest()
	for _, name := range players[:q.GetVotesNeeded()] {
		_ = q.AddTeamVote(vote.New(name, true))
	}
	for i, name := range players[:q.GetVotesNeeded()] {
		_ = q.AddQuestVote(vote.New(name, i != 0))
	}
}

func TestGoodVictoryIsProvisionalUntilAssassination(t *testing.T) {
	lp, _ := preset.For(7)
	qm := Init(lp, 7)
	players := []string{"a", "b", "c", "d", "e", "f", "g"}

	for i := 0; i < 3; i++ {
		succeedCurrentQuest(t, qm, players)
		if qm.GetStatus() == EvilVictory {
			t.Fatalf("should not read as evil victory after successes")
		}
		_ = qm.NextQuest()
	}
	if got := qm.GetStatus(); got != GoodVictory {
		t.Fatalf("expected provisional GoodVictory, got %v", got)
	}
	if !qm.AssassinationIsAllowed() {
		t.Fatalf("assassination should be allowed after three successes")
	}

	qm.SetAssassinationStatus(true)
	if got := qm.GetStatus(); got != EvilVictory {
		t.Fatalf("merlin killed should flip to EvilVictory, got %v", got)
	}
	if qm.AssassinationIsAllowed() {
		t.Fatalf("assassination should no longer be allowed once resolved")
	}
}

func TestAssassinMissesMerlinConfirmsGoodVictory(t *testing.T) {
	lp, _ := preset.For(5)
	qm := Init(lp, 5)
	players := []string{"a", "b", "c", "d", "e"}
	for i := 0; i < 3; i++ {
		succeedCurrentQuest(t, qm, players)
		_ = qm.NextQuest()
	}
	qm.SetAssassinationStatus(false)
	if got := qm.GetStatus(); got != GoodVictory {
		t.Fatalf("expected GoodVictory when assassin misses, got %v", got)
	}
}

func TestEvilVictoryOnThreeFailedQuests(t *testing.T) {
	lp, _ := preset.For(5)
	qm := Init(lp, 5)
	players := []string{"a", "b", "c", "d", "e"}
	for i := 0; i < 3; i++ {
		failCurrentQuest(t, qm, players)
		if qm.GetStatus() != InProgress && i < 2 {
			t.Fatalf("round %d: expected InProgress, got %v", i, qm.GetStatus())
		}
		_ = qm.NextQuest()
	}
	if got := qm.GetStatus(); got != EvilVictory {
		t.Fatalf("expected EvilVictory after three fails, got %v", got)
	}
	if qm.AssassinationIsAllowed() {
		t.Fatalf("assassination should never be allowed on an evil victory")
	}
}

func TestStatusNeverChangesOnceTerminal(t *testing.T) {
	lp, _ := preset.For(5)
	qm := Init(lp, 5)
	players := []string{"a", "b", "c", "d", "e"}
	for i := 0; i < 3; i++ {
		failCurrentQuest(t, qm, players)
		_ = qm.NextQuest()
	}
	want := qm.GetStatus()
	for i := 0; i < 3; i++ {
		if got := qm.GetStatus(); got != want {
			t.Fatalf("status drifted after becoming terminal: %v != %v", got, want)
		}
	}
}
