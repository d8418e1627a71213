package discord

import (
	"seina-bot/internal/bot"
	"seina-bot/internal/command"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	botInfo, err := s.User("@me")
	if err != nil {
		log.Warn().Err(err).Msg("failed to retrieve bot user")
		return
	}

	for _, g := range r.Guilds {
		if b.isGuildBlacklisted(g.ID) {
			log.Info().Str("guild", g.ID).Msg("leaving blacklisted guild")
			if err := s.GuildLeave(g.ID); err != nil {
				log.Error().Err(err).Str("guild", g.ID).Msg("failed to leave guild")
			}
			continue
		}

		if b.cfg.InitSlashCommands {
			if err := b.syncCommands(g.ID); err != nil {
				log.Error().Err(err).Str("guild", g.ID).Msg("failed to sync slash commands")
			}
		}
	}
	if !b.cfg.InitSlashCommands {
		log.Info().Msg("slash command sync skipped")
	}

	// Ready can fire again on reconnect; hooks and the scheduler run once.
	b.readyOnce.Do(func() {
		for _, h := range bot.ReadyHooks() {
			h := h
			go func() {
				log.Debug().Str("hook", h.Name).Msg("running ready hook")
				h.Run(s, b.store)
			}()
		}
		b.sched = startMaintenance(s, b.store)
	})

	log.Info().Str("user", botInfo.Username).Msg("discord bot is running")
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	log.Info().Str("guild", g.Guild.ID).Str("name", g.Guild.Name).Msg("bot added to guild")

	if b.isGuildBlacklisted(g.Guild.ID) {
		log.Info().Str("guild", g.Guild.ID).Msg("leaving blacklisted guild")
		if err := s.GuildLeave(g.Guild.ID); err != nil {
			log.Error().Err(err).Str("guild", g.Guild.ID).Msg("failed to leave guild")
		}
		return
	}

	if err := b.syncCommands(g.Guild.ID); err != nil {
		log.Error().Err(err).Str("guild", g.Guild.ID).Msg("failed to sync commands for new guild")
	}
}

// onMessageCreate fans every message out to the registry. Commands that watch
// messages pick it up; the rest ignore it.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}

	data := &command.MessageContext{Session: s, Event: m, Storage: b.store}
	for _, cmd := range command.AllCommands() {
		if err := runCommand(cmd, data); err != nil {
			log.Error().Err(err).Str("command", cmd.Name()).Msg("message watcher failed")
		}
	}
}

func (b *Bot) onPresenceUpdate(s *discordgo.Session, p *discordgo.PresenceUpdate) {
	data := &command.PresenceContext{Session: s, Event: p, Storage: b.store}
	for _, cmd := range command.AllCommands() {
		if err := runCommand(cmd, data); err != nil {
			log.Error().Err(err).Str("command", cmd.Name()).Msg("presence watcher failed")
		}
	}
}

func (b *Bot) onChannelDelete(s *discordgo.Session, c *discordgo.ChannelDelete) {
	data := &command.ChannelDeleteContext{Session: s, Event: c, Storage: b.store}
	for _, cmd := range command.AllCommands() {
		if err := runCommand(cmd, data); err != nil {
			log.Error().Err(err).Str("command", cmd.Name()).Msg("channel delete watcher failed")
		}
	}
}
