package discord

import (
	"time"

	"seina-bot/internal/bot"
	"seina-bot/internal/storage"

	"github.com/bwmarrin/discordgo"
	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"
)

// startMaintenance schedules every registered maintenance task on its
// interval. Cogs register tasks in init; the scheduler picks them up once
// the session is ready.
func startMaintenance(s *discordgo.Session, store *storage.Storage) *gocron.Scheduler {
	sched := gocron.NewScheduler(time.UTC)

	for _, t := range bot.MaintenanceTasks() {
		t := t
		if _, err := sched.Every(t.Interval).Do(func() { t.Run(s, store) }); err != nil {
			log.Error().Err(err).Str("task", t.Name).Msg("failed to schedule maintenance task")
			continue
		}
		log.Info().Str("task", t.Name).Dur("interval", t.Interval).Msg("maintenance task scheduled")
	}

	sched.StartAsync()
	return sched
}
