// Package preset holds the player-count-keyed configuration table: how many
// good/evil roles are dealt and the per-quest team size and fail threshold.
package preset

import "fmt"

// QuestConfig is the team size and fail threshold for a single quest.
type QuestConfig struct {
	VotesNeeded int
	FailsNeeded int
}

// LevelPreset is the configuration for one player count.
type LevelPreset struct {
	goodCount int
	evilCount int
	quests    [5]QuestConfig
}

// GetGoodCount returns the number of GOOD roles dealt.
func (p LevelPreset) GetGoodCount() int { return p.goodCount }

// GetEvilCount returns the number of EVIL roles dealt.
func (p LevelPreset) GetEvilCount() int { return p.evilCount }

// GetQuestsConfig returns the five quests' (votesNeeded, failsNeeded) pairs.
func (p LevelPreset) GetQuestsConfig() [5]QuestConfig { return p.quests }

// UnsupportedPlayerCountError reports a player count outside [5,10].
type UnsupportedPlayerCountError struct {
	PlayerCount int
}

func (e *UnsupportedPlayerCountError) Error() string {
	return fmt.Sprintf("preset: unsupported player count %d", e.PlayerCount)
}

// table is the authoritative per-player-count configuration.
var table = map[int]LevelPreset{
	5: {goodCount: 3, evilCount: 2, quests: [5]QuestConfig{
		{2, 1}, {3, 1}, {2, 1}, {3, 1}, {3, 1},
	}},
	6: {goodCount: 4, evilCount: 2, quests: [5]QuestConfig{
		{2, 1}, {3, 1}, {4, 1}, {3, 1}, {4, 1},
	}},
	7: {goodCount: 4, evilCount: 3, quests: [5]QuestConfig{
		{2, 1}, {3, 1}, {3, 1}, {4, 2}, {4, 1},
	}},
	8: {goodCount: 5, evilCount: 3, quests: [5]QuestConfig{
		{3, 1}, {4, 1}, {4, 1}, {5, 2}, {5, 1},
	}},
	9: {goodCount: 6, evilCount: 3, quests: [5]QuestConfig{
		{3, 1}, {4, 1}, {4, 1}, {5, 2}, {5, 1},
	}},
	10: {goodCount: 6, evilCount: 4, quests: [5]QuestConfig{
		{3, 1}, {4, 1}, {4, 1}, {5, 2}, {5, 1},
	}},
}

// For gets the preset for a player count, failing with
// UnsupportedPlayerCountError when playerCount is outside [5,10].
func For(playerCount int) (LevelPreset, error) {
	p, ok := table[playerCount]
	if !ok {
		return LevelPreset{}, &UnsupportedPlayerCountError{PlayerCount: playerCount}
	}
	return p, nil
}
