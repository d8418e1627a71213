package battleroyale

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"seina-bot/internal/bot"
	"seina-bot/internal/domain"
	"seina-bot/internal/storage"
	"seina-bot/pkg/util"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

const (
	defaultPrize    = 100
	defaultWait     = 120
	defaultEmoji    = "⚔️"
	defaultCooldown = 60

	minPlayers = 2
	maxPlayers = 200

	rosterLimit = 3000
)

// effectiveConfig fills zero values with the cog defaults.
func effectiveConfig(cfg domain.BattleConfig) domain.BattleConfig {
	if cfg.Prize == 0 {
		cfg.Prize = defaultPrize
	}
	if cfg.WaitSec == 0 {
		cfg.WaitSec = defaultWait
	}
	if cfg.Emoji == "" {
		cfg.Emoji = defaultEmoji
	}
	if cfg.Cooldown == 0 {
		cfg.Cooldown = defaultCooldown
	}
	return cfg
}

// humanizeList joins names the way prose reads: "a", "a and b", "a, b, and c".
func humanizeList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
}

func rosterText(names []string) string {
	return util.Truncate(humanizeList(names), rosterLimit)
}

// runGame drives one battle to its end in channelID. It blocks between
// rounds, so callers run it inside the channel's named job.
func runGame(ctx context.Context, s *discordgo.Session, store *storage.Storage, guildID, channelID string, players []Player, delay int, skip bool, prize int) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	eng := NewEngine(players, skip, prompts(), rng)

	var batch []string
	for !eng.Done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		round := eng.Next()
		if skip {
			continue
		}
		batch = append(batch, round.Prompt)
		if !round.Flush {
			continue
		}

		renderStart := time.Now()
		img, err := sceneRenderer().Render(ctx, rng, round.Killer, round.Killed)
		if err != nil {
			log.Warn().Err(err).Str("channel", channelID).Msg("battleroyale: round image failed")
		}

		// The configured delay paces the whole round, render time included.
		if wait := time.Duration(delay)*time.Second - time.Since(renderStart); wait > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		embed := &discordgo.MessageEmbed{
			Title: "Battle Royale",
			Color: bot.EmbedColor,
			Description: util.Truncate(fmt.Sprintf("%s\n\n**%d Remaining Players:**\n%s.",
				strings.Join(batch, "\n"), eng.RemainingCount(), rosterText(eng.RemainingNames())), 2000),
		}
		if img != nil {
			embed.Image = &discordgo.MessageEmbedImage{URL: "attachment://battle.png"}
			if _, err := bot.MessageEmbedWithFile(s, channelID, embed, "battle.png", bytes.NewReader(img)); err != nil {
				log.Warn().Err(err).Str("channel", channelID).Msg("battleroyale: round post failed")
			}
		} else if err := bot.MessageEmbed(s, channelID, embed); err != nil {
			log.Warn().Err(err).Str("channel", channelID).Msg("battleroyale: round post failed")
		}
		batch = batch[:0]
	}

	winner := eng.Winner()
	payoutLine := fmt.Sprintf("- %s received %d dollars from the Roman State.", winner.Name, prize)
	if _, err := store.Deposit(guildID, winner.ID, prize); err != nil {
		log.Error().Err(err).Str("guild", guildID).Str("winner", winner.ID).Msg("battleroyale: prize not paid")
		payoutLine = fmt.Sprintf("- The Roman State could not pay out %s's prize.", winner.Name)
	}

	var places strings.Builder
	for i, p := range eng.Places() {
		if i >= 10 {
			break
		}
		kills := eng.Kills(p.ID)
		suffix := "kill"
		if kills > 1 {
			suffix = "kills"
		}
		fmt.Fprintf(&places, "**#%d** - %s - %d %s\n", i+1, p.Name, kills, suffix)
	}

	final := &discordgo.MessageEmbed{
		Title: "BattleRoyale",
		Color: bot.EmbedColor,
		Description: util.Truncate(fmt.Sprintf("%s\n%s\n\n**Places:**\n%s",
			prompts().WinnerLine(rng, "**"+winner.Name+"**"), payoutLine, places.String()), 1900),
	}
	if err := bot.MessageEmbed(s, channelID, final); err != nil {
		log.Warn().Err(err).Str("channel", channelID).Msg("battleroyale: winner post failed")
	}

	if err := store.RecordBattleResults(guildID, eng.StatDeltas()); err != nil {
		log.Error().Err(err).Str("guild", guildID).Msg("battleroyale: stats not recorded")
	}

	log.Info().
		Str("guild", guildID).
		Str("channel", channelID).
		Str("winner", winner.ID).
		Int("players", len(players)).
		Bool("skip", skip).
		Msg("battleroyale: game finished")
	return nil
}
