package rainbowrole

import (
	"context"
	"fmt"
	"time"

	"seina-bot/internal/bot"
	"seina-bot/internal/storage"
	"seina-bot/pkg/jobmgr"
	"seina-bot/pkg/retrylimit"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultInterval and MinInterval bound the tick rate in seconds. Role
	// edits share one REST budget, so the floor stays conservative.
	DefaultInterval = 90
	MinInterval     = 60
)

// editLimiter paces role color edits across every guild loop.
var editLimiter = retrylimit.NewAdaptiveLimiter(2, 1, 5, 0.5, 0.5)

func jobName(guildID string) string { return "rainbowrole:" + guildID }

// Running reports whether the guild's color loop is active.
func Running(guildID string) bool {
	return jobmgr.DefaultManager.Running(jobName(guildID))
}

// StopLoop cancels a guild's loop and reports whether one was running.
func StopLoop(guildID string) bool {
	return jobmgr.DefaultManager.Stop(jobName(guildID)) == nil
}

// StartLoop launches the color loop for one guild as a named job; a loop
// that is already running stays untouched and an error is returned. The loop
// ends on its own when the role disappears or becomes unmanageable, flipping
// the stored config to disabled so it does not resume on the next start.
func StartLoop(s *discordgo.Session, store *storage.Storage, guildID string) error {
	cfg, ok, err := store.RainbowRole(guildID)
	if err != nil {
		return err
	}
	if !ok || cfg.RoleID == "" {
		return fmt.Errorf("no rainbow role configured for guild %s", guildID)
	}

	interval := time.Duration(cfg.Interval) * time.Second
	if cfg.Interval <= 0 {
		interval = DefaultInterval * time.Second
	} else if cfg.Interval < MinInterval {
		interval = MinInterval * time.Second
	}

	return jobmgr.DefaultManager.Start(jobName(guildID), func(ctx context.Context) error {
		hue := 0.0
		if role, _ := s.State.Role(guildID, cfg.RoleID); role != nil {
			hue = colorHue(role.Color)
		}

		log.Info().
			Str("guild", guildID).
			Str("role", cfg.RoleID).
			Dur("interval", interval).
			Msg("rainbow loop started")

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				hue = nextHue(hue)
				if err := paintRole(ctx, s, guildID, cfg.RoleID, hueColor(hue)); err != nil {
					if ctx.Err() != nil {
						return nil
					}
					cfg.Enabled = false
					if serr := store.SetRainbowRole(guildID, cfg); serr != nil {
						log.Error().Err(serr).Str("guild", guildID).Msg("failed to persist rainbow disable")
					}
					log.Warn().Err(err).
						Str("guild", guildID).
						Str("role", cfg.RoleID).
						Msg("rainbow loop disabled")
					return err
				}
			}
		}
	})
}

// paintRole performs one rate-limited color edit with a small retry budget.
func paintRole(ctx context.Context, s *discordgo.Session, guildID, roleID string, color int) error {
	if !bot.CanManageRole(s, guildID, roleID) {
		return fmt.Errorf("role %s is missing or not manageable", roleID)
	}
	return retrylimit.WithRetryMax(ctx, func() error {
		_, err := s.GuildRoleEdit(guildID, roleID, &discordgo.RoleParams{Color: &color})
		return bot.WrapRESTError(err)
	}, editLimiter, 3)
}

// Resume restarts the loop for every guild that had one enabled when the
// process went down.
func Resume(s *discordgo.Session, store *storage.Storage) {
	for _, guildID := range store.RainbowGuilds() {
		cfg, ok, err := store.RainbowRole(guildID)
		if err != nil || !ok || !cfg.Enabled {
			continue
		}
		if err := StartLoop(s, store, guildID); err != nil {
			log.Warn().Err(err).Str("guild", guildID).Msg("could not resume rainbow loop")
		}
	}
}

func init() {
	bot.OnReady(bot.ReadyHook{Name: "rainbowrole-resume", Run: Resume})
}
