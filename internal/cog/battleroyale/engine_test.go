package battleroyale

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlayers(n int) []Player {
	players := make([]Player, 0, n)
	for i := 0; i < n; i++ {
		players = append(players, Player{
			ID:   fmt.Sprintf("user-%d", i),
			Name: fmt.Sprintf("Player %d", i),
		})
	}
	return players
}

func testPack() *PromptPack {
	return &PromptPack{
		Kill:   []string{"{killer} got {killed}."},
		Winner: []string{"{winner} wins."},
	}
}

func runToEnd(e *Engine) []Round {
	var rounds []Round
	for !e.Done() {
		rounds = append(rounds, e.Next())
	}
	return rounds
}

func TestEngineEliminatesToOneSurvivor(t *testing.T) {
	players := testPlayers(8)
	eng := NewEngine(players, false, testPack(), rand.New(rand.NewSource(1)))

	rounds := runToEnd(eng)

	assert.Len(t, rounds, 7, "each round removes exactly one player")
	assert.Equal(t, 1, eng.RemainingCount())

	places := eng.Places()
	require.Len(t, places, 8)
	assert.Equal(t, eng.Winner().ID, places[0].ID)

	seen := map[string]bool{}
	for _, p := range places {
		assert.False(t, seen[p.ID], "player %s placed twice", p.ID)
		seen[p.ID] = true
	}
	assert.Len(t, seen, 8, "every player places exactly once")

	// The last death finishes second.
	assert.Equal(t, rounds[len(rounds)-1].Killed.ID, places[1].ID)
}

func TestEngineKillerSurvivesTheRound(t *testing.T) {
	eng := NewEngine(testPlayers(12), false, testPack(), rand.New(rand.NewSource(7)))
	for !eng.Done() {
		r := eng.Next()
		assert.NotEqual(t, r.Killer.ID, r.Killed.ID, "the killed player cannot be their own killer")
	}
}

func TestEngineFlushEveryRoundInSmallGames(t *testing.T) {
	eng := NewEngine(testPlayers(smallGame), false, testPack(), rand.New(rand.NewSource(2)))
	for _, r := range runToEnd(eng) {
		assert.True(t, r.Flush, "games with few players post every round")
	}
}

func TestEngineBatchesLargeGames(t *testing.T) {
	eng := NewEngine(testPlayers(30), false, testPack(), rand.New(rand.NewSource(3)))

	remaining := 30
	sinceFlush := 0
	for !eng.Done() {
		r := eng.Next()
		remaining--
		if remaining <= endgameAt {
			assert.True(t, r.Flush, "endgame posts every round (%d remaining)", remaining)
			continue
		}
		if r.Flush {
			assert.Equal(t, batchSize, sinceFlush, "a mid-game flush carries a full batch")
			sinceFlush = 0
		} else {
			sinceFlush++
			assert.LessOrEqual(t, sinceFlush, batchSize)
		}
	}
}

func TestEngineSkipMode(t *testing.T) {
	eng := NewEngine(testPlayers(20), true, testPack(), rand.New(rand.NewSource(4)))
	for _, r := range runToEnd(eng) {
		assert.Empty(t, r.Prompt)
		assert.False(t, r.Flush)
	}
	assert.Equal(t, 1, eng.RemainingCount())
}

func TestEnginePromptsAreRendered(t *testing.T) {
	eng := NewEngine(testPlayers(6), false, prompts(), rand.New(rand.NewSource(5)))
	for _, r := range runToEnd(eng) {
		assert.NotEmpty(t, r.Prompt)
		assert.NotContains(t, r.Prompt, "{killer}")
		assert.NotContains(t, r.Prompt, "{killed}")
		assert.Contains(t, r.Prompt, "**"+r.Killed.Name+"**", "the victim is always named")
	}
}

func TestEngineStatDeltas(t *testing.T) {
	eng := NewEngine(testPlayers(5), false, testPack(), rand.New(rand.NewSource(6)))
	runToEnd(eng)

	deltas := eng.StatDeltas()
	require.Len(t, deltas, 5)

	totalKills, totalDeaths, totalWins := 0, 0, 0
	for _, d := range deltas {
		assert.Equal(t, 1, d.Games)
		totalKills += d.Kills
		totalDeaths += d.Deaths
		totalWins += d.Wins
	}
	assert.Equal(t, 4, totalKills, "four eliminations in a five player game")
	assert.Equal(t, 4, totalDeaths)
	assert.Equal(t, 1, totalWins)

	winner := deltas[eng.Winner().ID]
	assert.Equal(t, 1, winner.Wins)
	assert.Zero(t, winner.Deaths)
	assert.Equal(t, eng.Kills(eng.Winner().ID), winner.Kills)
}

func TestEngineRemainingNamesSorted(t *testing.T) {
	players := []Player{
		{ID: "1", Name: "Charlie"},
		{ID: "2", Name: "alice"},
		{ID: "3", Name: "Bob"},
	}
	eng := NewEngine(players, false, testPack(), rand.New(rand.NewSource(8)))
	assert.Equal(t, []string{"Bob", "Charlie", "alice"}, eng.RemainingNames())
}
