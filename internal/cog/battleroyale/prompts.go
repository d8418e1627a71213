package battleroyale

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"

	"seina-bot/internal/config"

	"github.com/rs/zerolog/log"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// PromptPack holds the narration lines the game draws from. Kill lines may
// use the {killer} and {killed} placeholders, winner lines {winner}; lines
// without placeholders are posted verbatim.
type PromptPack struct {
	Kill   []string `json:"kill"`
	Winner []string `json:"winner"`
}

// KillLine renders a random kill prompt for the pair.
func (p *PromptPack) KillLine(rng *rand.Rand, killer, killed string) string {
	line := p.Kill[rng.Intn(len(p.Kill))]
	return strings.NewReplacer("{killer}", killer, "{killed}", killed).Replace(line)
}

// WinnerLine renders a random winner prompt.
func (p *PromptPack) WinnerLine(rng *rand.Rand, winner string) string {
	line := p.Winner[rng.Intn(len(p.Winner))]
	return strings.ReplaceAll(line, "{winner}", winner)
}

// LoadPromptPack reads a JSON5 prompt file. A section left out of the file
// keeps the built-in lines.
func LoadPromptPack(path string) (*PromptPack, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompt pack: %w", err)
	}
	var pack PromptPack
	if err := json5.Unmarshal(raw, &pack); err != nil {
		return nil, fmt.Errorf("parse prompt pack %s: %w", path, err)
	}
	if len(pack.Kill) == 0 {
		pack.Kill = killPrompts
	}
	if len(pack.Winner) == 0 {
		pack.Winner = winnerPrompts
	}
	return &pack, nil
}

var (
	packOnce sync.Once
	pack     *PromptPack
)

// prompts returns the active pack: the override from BATTLE_PROMPTS_PATH when
// set and readable, the built-in lines otherwise.
func prompts() *PromptPack {
	packOnce.Do(func() {
		pack = &PromptPack{Kill: killPrompts, Winner: winnerPrompts}
		cfg, err := config.Get()
		if err != nil || cfg.BattlePromptsPath == "" {
			return
		}
		loaded, err := LoadPromptPack(cfg.BattlePromptsPath)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.BattlePromptsPath).
				Msg("battleroyale: prompt pack not loaded, using built-ins")
			return
		}
		pack = loaded
		log.Info().
			Int("kill", len(pack.Kill)).
			Int("winner", len(pack.Winner)).
			Str("path", cfg.BattlePromptsPath).
			Msg("battleroyale: loaded prompt pack")
	})
	return pack
}

var killPrompts = []string{
	"{killer} killed {killed} with a Pilum!",
	"{killer} slaughtered {killed} with their Roman Poison.",
	"{killer} murdered {killed}.",
	"{killer} beat {killed} to death with a Marble Brick.",
	"{killer} stabbed {killed} with a Gladius.",
	"{killer} ran over {killed} with a Carthaginian Elephant.",
	"{killer} drove {killed} to the point of insanity 🤯.",
	"{killer} ran {killed} over with a Lion.",
	"{killer} lit {killed}'s hair on fire 🔥!",
	"{killer} fed {killed} to a bear 🐻!",
	"{killed} died of food poisoning 🤮 from {killer}'s cooking at Tiberius' victory dinner.",
	"{killed} was pushed in front of a marching Legion by {killer}!",
	"{killer}'s snake 🐍 bit {killed} in the eye 👁️.",
	"{killer} ripped {killed}'s eyes out of their sockets.",
	"{killer} killed {killed} with a Pugio!",
	"{killed} was swallowed by a volcano in Pompeii 🔥.",
	"{killed} was struck down by a spear thrown by {killer}.",
	"{killer} killed {killed} with a Scutum!",
	"{killer} killed {killed} with a crossbow!",
	"{killer} killed {killed} with a knife!",
	"{killer} ran over {killed} with a Rhino!",
	"There is no escape from {killer}! {killed} was killed by a shot to the head!",
	"{killer} set fire to kill {killed} with a Roman Fire Glass 🔥!",
	"{killer} shot {killed} with their bow from 300 meters away 🎯!",
	"{killer} killed {killed} with a Spatha!",
	"{killer} killed {killed} with a Pila & Hasta!",
	"{killer} killed {killed} with a Plumbatae!",
	"{killer} killed {killed} with a sword 🗡️!",
	"{killer} killed {killed} with a spear 🪓!",
	"{killer} killed {killed} with a hammer 🔨!",
	"{killer} killed {killed} with a Vertum!",
	"{killer} killed {killed} with a Javelin!",
	"{killer} killed {killed} with a Spiculum!",
	"{killer} killed {killed} with a Sudis!",
	"{killer} killed {killed} with a War Hammer 🪓!",
	"{killer} killed {killed} with a pickaxe ⛏️!",
	"{killed} met their demise at the hands of {killer}. 💀",
	"{killer} obliterated {killed} with a powerful curse given to them by Jupiter ✨!",
	"{killer} outsmarted {killed} and took them down. 🎯",
	"{killer} unleashed their fury upon {killed} and ended their life. 😡",
	"{killer} prayed to Jupiter, who struck down {killed} with lightning ⚡!",
	"{killed} met their demise at the hands of {killer}.",
	"{killer} terminated {killed} with extreme prejudice.",
	"{killer} dispatched {killed} without mercy.",
	"{killer} brought about the demise of {killed}.",
	"{killer} extinguished {killed}'s life force.",
	"{killer} wiped out {killed} from the face of the Earth.",
	"{killed} met their untimely end due to {killer}'s actions.",
	"{killed} perished under the hand of {killer}.",
	"{killer} pulled the trigger and ended {killed}'s life.",
	"{killer} obliterated {killed} without hesitation.",
	"{killer} inflicted a fatal blow upon {killed}.",
	"{killed} succumbed to {killer}'s murderous ways.",
	"{killed} fell victim to {killer}'s deadly plot.",
	"{killer} brought about the demise of {killed} with precision.",
	"{killer} enacted a deadly scheme that ended {killed}'s life.",
	"{killed}'s life was claimed by the cold grip of {killer}.",
	"{killer} sent {killed} to their eternal rest.",
	"{killer} left no trace of {killed}'s existence.",
	"{killed} met a horrifying end at the hands of {killer}.",
	"{killer} unleashed unspeakable terror upon {killed}.",
	"{killer} plunged {killed} into a world of eternal darkness.",
	"{killed} became a mere puppet in {killer}'s twisted game of death.",
	"{killer} reveled in the screams of agony as they extinguished {killed}'s life.",
	"{killer} cast {killed} into a realm of everlasting torment and despair.",
	"{killer} painted a macabre masterpiece with {killed}'s lifeblood as their brush.",
	"{killer} unleashed a cataclysmic force upon {killed}, obliterating all hope.",
	"{killed} was consumed by the fiery wrath of {killer}.",
	"{killer} carved a path of devastation, leaving {killed} in ruins.",
	"{killer} tore through {killed} with savage ferocity, leaving a trail of devastation in their wake.",
	"{killer} descended upon {killed} with ferocious intent, their wrath leaving a trail of devastation in its wake.",
	"{killed} was caught in a deadly dance with {killer}, their fate sealed with each lethal movement.",
	"{killed} encountered {killer} in a battle of wills, their struggle culminating in a cataclysmic clash of life and death.",
}

var winnerPrompts = []string{
	"{winner} is the winner 🏆! The Gods of Rome have blessed you on this day!",
	"Winner! Congrats {winner}! The Emperor is pleased.",
	"Stand at attention! {winner} won 🏆!",
	"In the end... {winner} was all that remained.",
	"{winner} is your final survivor.",
	"We have a winner, and it's... {winner}!",
	"It's not about winning and losing. You know who says that? The loser. {winner} is the winner!",
	"{winner} didn't lose the game, they just ran out of time and took down everyone!",
	"Winning and losing does not have any meaning, because some people win by losing and some lose by winning. Congratulations on winning, {winner}!",
	"{winner}, you never lose. You either win or you learn.",
	"Winning is not everything, but the effort to win is. {winner}, you did it!",
	"You fucking did it {winner}! You won!",
	"You are the winner {winner}! You are the best!",
	"{winner}, victory has a hundred fathers, but defeat is an orphan.",
	"Yesterday I dared to struggle. Today I dare to win. You did it, {winner}!",
	"Why do I win every time, {winner}? Because I'm the best, and everyone else sucks.",
	"You are a winner {winner}! You are just a winner I swear, congrats! 🏆",
	"For every winner, there are dozens of losers. Odds are you're one of them, {winner}!",
	"You shouldn't focus on why you can't win. Focus on the winner, {winner}!",
}
