package engine

import (
	"testing"

	"github.com/govindlahoti/avalon-engine/internal/player"
	"github.com/govindlahoti/avalon-engine/internal/questsmanager"
	"github.com/govindlahoti/avalon-engine/internal/role"
)

func TestUnderpopulatedStartRejected(t *testing.T) {
	g := newTestGame(1, "a", "b", "c", "d")
	err := g.Start(nil)
	perr, ok := err.(*Error)
	if !ok || perr.Kind != KindIncorrectNumberOfPlayers {
		t.Fatalf("expected KindIncorrectNumberOfPlayers, got %v", err)
	}
	if !g.startedAt.IsZero() {
		t.Fatalf("startedAt should remain unset after a rejected start")
	}
}

func TestOverpopulatedRosterRejected(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	g := newTestGame(1, names...)
	err := g.AddPlayer(player.New("k", 10))
	perr, ok := err.(*Error)
	if !ok || perr.Kind != KindMaximumPlayersReached {
		t.Fatalf("expected KindMaximumPlayersReached, got %v", err)
	}
}

// runQuestCycle proposes the current quest's required team size (always the
// first N seated usernames for simplicity), submits it, unanimously
// approves the team, then has the team unanimously vote the quest to the
// given outcome. It returns once the freeze after the quest vote has elapsed.
func runQuestCycle(t *testing.T, g *Game, usernames []string, questApprove bool) {
	t.Helper()
	leader := g.LeaderUsername()
	team := usernames[:g.CurrentQuestVotesNeeded()]

	for _, u := range team {
		if err := g.ToggleIsProposed(leader, u); err != nil {
			t.Fatalf("ToggleIsProposed(%s): %v", u, err)
		}
	}
	if err := g.SubmitTeam(leader); err != nil {
		t.Fatalf("SubmitTeam: %v", err)
	}
	await(g)

	for _, u := range usernames {
		if err := g.VoteForTeam(u, true); err != nil {
			t.Fatalf("VoteForTeam(%s): %v", u, err)
		}
	}
	await(g)

	for _, u := range team {
		if err := g.VoteForQuest(u, questApprove); err != nil {
			t.Fatalf("VoteForQuest(%s): %v", u, err)
		}
	}
	await(g)
}

func startedSevenPlayerGameThroughThreeSuccesses(t *testing.T) *Game {
	t.Helper()
	names := sevenPlayers()
	g := newTestGame(42, names...)
	if err := g.Start(nil); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := g.RevealRoles(10); err != nil {
		t.Fatalf("RevealRoles: %v", err)
	}
	for i := 0; i < 3; i++ {
		runQuestCycle(t, g, names, true)
	}
	return g
}

func TestHappyPathToGoodVictoryReachesAssassination(t *testing.T) {
	g := startedSevenPlayerGameThroughThreeSuccesses(t)
	if got := g.State(); got != stateAssassination.String() {
		t.Fatalf("expected Assassination after three successes, got %s", got)
	}
	if got := g.QuestsStatus(); got != questsmanager.GoodVictory {
		t.Fatalf("expected provisional GoodVictory, got %v", got)
	}
}

func TestAssassinKillsMerlinFlipsToEvilVictory(t *testing.T) {
	g := startedSevenPlayerGameThroughThreeSuccesses(t)
	assassin := findByRole(g, role.Assassin)
	merlin := findByRole(g, role.Merlin)

	if err := g.Assassinate(assassin, merlin); err != nil {
		t.Fatalf("Assassinate: %v", err)
	}
	await(g)

	if got := g.QuestsStatus(); got != questsmanager.EvilVictory {
		t.Fatalf("expected EvilVictory once Merlin is assassinated, got %v", got)
	}
	if got := g.State(); got != stateFinish.String() {
		t.Fatalf("expected Finish, got %s", got)
	}
}

func TestAssassinMissesMerlinConfirmsGoodVictory(t *testing.T) {
	g := startedSevenPlayerGameThroughThreeSuccesses(t)
	assassin := findByRole(g, role.Assassin)
	merlin := findByRole(g, role.Merlin)

	var victim string
	for _, p := range g.players.GetAll() {
		if p.GetUsername() != merlin {
			victim = p.GetUsername()
			break
		}
	}

	if err := g.Assassinate(assassin, victim); err != nil {
		t.Fatalf("Assassinate: %v", err)
	}
	await(g)

	if got := g.QuestsStatus(); got != questsmanager.GoodVictory {
		t.Fatalf("expected GoodVictory once the assassin misses, got %v", got)
	}
	if got := g.State(); got != stateFinish.String() {
		t.Fatalf("expected Finish, got %s", got)
	}
}

func TestForcedFifthRoundApproval(t *testing.T) {
	names := sevenPlayers()
	g := newTestGame(9, names...)
	if err := g.Start(nil); err != nil {
		t.Fatalf("Start: %v", err)
	}

	for round := 0; round < 4; round++ {
		leader := g.LeaderUsername()
		team := names[:g.CurrentQuestVotesNeeded()]
		for _, u := range team {
			if err := g.ToggleIsProposed(leader, u); err != nil {
				t.Fatalf("round %d ToggleIsProposed: %v", round, err)
			}
		}
		if err := g.SubmitTeam(leader); err != nil {
			t.Fatalf("round %d SubmitTeam: %v", round, err)
		}
		await(g)
		for _, u := range names {
			if err := g.VoteForTeam(u, false); err != nil {
				t.Fatalf("round %d VoteForTeam(%s): %v", round, u, err)
			}
		}
		await(g)
	}

	leader := g.LeaderUsername()
	team := names[:g.CurrentQuestVotesNeeded()]
	for _, u := range team {
		if err := g.ToggleIsProposed(leader, u); err != nil {
			t.Fatalf("forced round ToggleIsProposed: %v", err)
		}
	}
	if err := g.SubmitTeam(leader); err != nil {
		t.Fatalf("forced round SubmitTeam: %v", err)
	}
	await(g)
	await(g)

	if got := g.State(); got != stateQuestVoting.String() {
		t.Fatalf("expected auto-approval to land in QuestVoting, got %s", got)
	}
	if err := g.VoteForTeam(names[0], true); err == nil {
		t.Fatalf("expected VoteForTeam to fail once auto-approved into quest voting")
	} else if perr, ok := err.(*Error); !ok || perr.Kind != KindNoVotingTime {
		t.Fatalf("expected KindNoVotingTime, got %v", err)
	}
}
