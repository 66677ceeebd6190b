// Command avalonctl is a thin demo driver for internal/engine. It wires the
// ambient stack the core intentionally omits: configuration, logging,
// player identity, a scripted command sequence, and a terminal QR code for
// "joining" the room, the same way a single-binary entry point wires
// routes to handlers, minus the transport layer this repository doesn't
// build.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"github.com/govindlahoti/avalon-engine/internal/config"
	"github.com/govindlahoti/avalon-engine/internal/engine"
	"github.com/govindlahoti/avalon-engine/internal/player"
	"github.com/govindlahoti/avalon-engine/internal/random"
	"github.com/govindlahoti/avalon-engine/internal/role"
)

func main() {
	namesFlag := flag.String("players", "", "comma-separated usernames (defaults to 7 generated names)")
	seedFlag := flag.Int64("seed", 0, "override the configured random seed (0 keeps the configured value)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading configuration", "error", err)
		os.Exit(1)
	}
	seed := cfg.RandomSeed
	if *seedFlag != 0 {
		seed = *seedFlag
	}

	usernames := parseUsernames(*namesFlag)
	g := engine.New(random.New(seed), engine.WithWaits(
		cfg.AfterTeamProposition, cfg.AfterTeamVoting, cfg.AfterQuestVoting,
	))

	slog.Info("game created", "id", g.ID(), "players", usernames)
	printJoinCode(g.ID())

	for i, name := range usernames {
		if err := g.AddPlayer(player.New(name, i)); err != nil {
			slog.Error("adding player", "username", name, "error", err)
			os.Exit(1)
		}
	}

	if err := g.Start(nil); err != nil {
		slog.Error("starting game", "error", err)
		os.Exit(1)
	}
	slog.Info("game started", "state", g.State())

	if _, err := g.RevealRoles(cfg.RevealRolesSeconds); err != nil {
		slog.Warn("revealRoles rejected", "error", err)
	}

	runScriptedGame(g, usernames)
	printSnapshot(g)
}

// parseUsernames splits a comma-separated flag value, falling back to 7
// generated uuid-suffixed names so the demo runs with no flags at all.
func parseUsernames(flagValue string) []string {
	if strings.TrimSpace(flagValue) == "" {
		names := make([]string, 7)
		for i := range names {
			names[i] = fmt.Sprintf("player-%s", uuid.NewString()[:8])
		}
		return names
	}
	parts := strings.Split(flagValue, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

// printJoinCode renders the game id as a terminal QR code, standing in for
// how a networked lobby would surface a join link.
func printJoinCode(gameID string) {
	qr, err := qrcode.New(gameID, qrcode.Medium)
	if err != nil {
		slog.Warn("rendering join QR code", "error", err)
		return
	}
	fmt.Println(qr.ToString(false))
}

// runScriptedGame drives every quest to approval via unanimous votes,
// logging each command's outcome, until the game leaves QuestVoting for
// good (Assassination or Finish).
func runScriptedGame(g *engine.Game, usernames []string) {
	for i := 0; i < 5; i++ {
		state := g.State()
		if state != "TeamProposition" {
			break
		}
		leader := g.LeaderUsername()
		team := usernames[:g.CurrentQuestVotesNeeded()]

		for _, u := range team {
			if err := g.ToggleIsProposed(leader, u); err != nil {
				slog.Error("toggleIsProposed", "leader", leader, "target", u, "error", err)
				return
			}
		}
		if err := g.SubmitTeam(leader); err != nil {
			slog.Error("submitTeam", "leader", leader, "error", err)
			return
		}
		<-g.LastTransitionDone()
		slog.Info("team submitted", "quest", i, "leader", leader, "team", team, "state", g.State())

		if g.State() == "TeamVoting" {
			for _, u := range usernames {
				if err := g.VoteForTeam(u, true); err != nil {
					slog.Error("voteForTeam", "username", u, "error", err)
					return
				}
			}
			<-g.LastTransitionDone()
		}

		if g.State() != "QuestVoting" {
			slog.Info("quest voting skipped", "state", g.State())
			continue
		}
		for _, u := range team {
			if err := g.VoteForQuest(u, true); err != nil {
				slog.Error("voteForQuest", "username", u, "error", err)
				return
			}
		}
		<-g.LastTransitionDone()
		slog.Info("quest resolved", "quest", i, "state", g.State(), "questsStatus", g.QuestsStatus())
	}

	if g.State() == "Assassination" {
		assassin := g.UsernameWithRole(role.Assassin)
		merlin := g.UsernameWithRole(role.Merlin)
		victim := merlin
		if err := g.Assassinate(assassin, victim); err != nil {
			slog.Error("assassinate", "assassin", assassin, "victim", victim, "error", err)
			return
		}
		<-g.LastTransitionDone()
		slog.Info("assassination resolved", "questsStatus", g.QuestsStatus())
	}
}

func printSnapshot(g *engine.Game) {
	out, err := json.MarshalIndent(g.Serialize(), "", "  ")
	if err != nil {
		slog.Error("marshalling snapshot", "error", err)
		return
	}
	fmt.Println(string(out))
}
