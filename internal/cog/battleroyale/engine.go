package battleroyale

import (
	"math/rand"
	"sort"

	"seina-bot/internal/domain"
)

const (
	// smallGame games post an image every round.
	smallGame = 10
	// endgameAt survivors or fewer switches back to posting every round.
	endgameAt = 5
	// batchSize prompts accumulate between posts in large mid-games.
	batchSize = 5
)

// Player is one combatant, captured when the lobby closes so the game never
// reads gateway state mid-round.
type Player struct {
	ID        string
	Name      string
	AvatarURL string
}

// Round is the outcome of one elimination step.
type Round struct {
	Killer Player
	Killed Player
	Prompt string
	// Flush marks the round whose accumulated prompts get posted together
	// with a battle image.
	Flush bool
}

// Engine runs the elimination order for one battle. It owns no Discord
// state, so tests drive it with a seeded rand.
type Engine struct {
	rng       *rand.Rand
	pack      *PromptPack
	skip      bool
	total     int
	remaining []Player
	fallen    []Player // in kill order, first death first
	kills     map[string]int
	batched   int
}

func NewEngine(players []Player, skip bool, pack *PromptPack, rng *rand.Rand) *Engine {
	remaining := make([]Player, len(players))
	copy(remaining, players)
	return &Engine{
		rng:       rng,
		pack:      pack,
		skip:      skip,
		total:     len(players),
		remaining: remaining,
		kills:     make(map[string]int, len(players)),
	}
}

// Done reports whether a single survivor remains.
func (e *Engine) Done() bool { return len(e.remaining) <= 1 }

// Winner returns the last player standing. Only meaningful once Done.
func (e *Engine) Winner() Player { return e.remaining[0] }

// RemainingCount returns the number of survivors.
func (e *Engine) RemainingCount() int { return len(e.remaining) }

// RemainingNames lists survivors sorted by display name.
func (e *Engine) RemainingNames() []string {
	names := make([]string, 0, len(e.remaining))
	for _, p := range e.remaining {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// Kills reports the kill count for a player.
func (e *Engine) Kills(id string) int { return e.kills[id] }

// Next removes one random player at the hands of one random survivor. In
// skip mode no prompt is rendered and nothing flushes.
func (e *Engine) Next() Round {
	idx := e.rng.Intn(len(e.remaining))
	killed := e.remaining[idx]
	e.remaining = append(e.remaining[:idx], e.remaining[idx+1:]...)
	killer := e.remaining[e.rng.Intn(len(e.remaining))]
	e.kills[killer.ID]++
	e.fallen = append(e.fallen, killed)

	r := Round{Killer: killer, Killed: killed}
	if e.skip {
		return r
	}
	r.Prompt = e.pack.KillLine(e.rng, "**"+killer.Name+"**", "**"+killed.Name+"**")
	if e.total <= smallGame || len(e.remaining) <= endgameAt || e.batched >= batchSize {
		r.Flush = true
		e.batched = 0
	} else {
		e.batched++
	}
	return r
}

// Places returns the final standings, winner first, then the fallen from
// most recent death to first.
func (e *Engine) Places() []Player {
	places := make([]Player, 0, len(e.remaining)+len(e.fallen))
	places = append(places, e.remaining...)
	for i := len(e.fallen) - 1; i >= 0; i-- {
		places = append(places, e.fallen[i])
	}
	return places
}

// StatDeltas builds the per-player stat increments for a finished game.
func (e *Engine) StatDeltas() map[string]domain.BattleStats {
	deltas := make(map[string]domain.BattleStats, e.total)
	for _, p := range e.fallen {
		d := deltas[p.ID]
		d.Games = 1
		d.Deaths = 1
		deltas[p.ID] = d
	}
	for _, p := range e.remaining {
		d := deltas[p.ID]
		d.Games = 1
		deltas[p.ID] = d
	}
	for id, kills := range e.kills {
		d := deltas[id]
		d.Kills = kills
		deltas[id] = d
	}
	if len(e.remaining) == 1 {
		winner := e.remaining[0]
		d := deltas[winner.ID]
		d.Wins = 1
		deltas[winner.ID] = d
	}
	return deltas
}
