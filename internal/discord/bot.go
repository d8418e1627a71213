// Package discord runs the gateway side of the bot: session lifecycle,
// event fan-out into the command registry, per-guild slash command sync
// and the maintenance scheduler.
package discord

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"seina-bot/internal/bot"
	"seina-bot/internal/config"
	"seina-bot/internal/storage"

	"github.com/bwmarrin/discordgo"
	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"
)

// Bot owns the Discord session and the services hanging off it.
type Bot struct {
	session *discordgo.Session
	store   *storage.Storage
	cfg     *config.Config
	sched   *gocron.Scheduler

	readyOnce sync.Once
}

// StartBot connects to Discord and blocks until ctx is cancelled.
func StartBot(ctx context.Context, cfg *config.Config, store *storage.Storage) error {
	b := &Bot{cfg: cfg, store: store}
	if err := b.run(ctx); err != nil {
		return fmt.Errorf("bot run error: %w", err)
	}
	return nil
}

func (b *Bot) run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.session = dg

	dg.Identify.Intents = discordgo.IntentsAll
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onGuildCreate)
	dg.AddHandler(b.onInteractionCreate)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onPresenceUpdate)
	dg.AddHandler(b.onChannelDelete)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	go b.consumeSystemEvents(ctx)

	<-ctx.Done()
	log.Info().Msg("shutdown signal received, cleaning up")
	if b.sched != nil {
		b.sched.Stop()
	}
	return nil
}

// consumeSystemEvents reacts to events published by commands, such as a cog
// being toggled and needing its slash commands re-synced.
func (b *Bot) consumeSystemEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-bot.SystemEvents():
			switch evt.Type {
			case bot.SystemEventRefreshCommands:
				go b.refreshCommands(evt)
			}
		}
	}
}

func (b *Bot) isGuildBlacklisted(guildID string) bool {
	return slices.Contains(b.cfg.GuildBlacklist, guildID)
}
