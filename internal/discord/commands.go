package discord

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"seina-bot/internal/bot"
	"seina-bot/internal/command"
	"seina-bot/pkg/cmdkit"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// syncCommands reconciles a guild's application commands with the registry:
// obsolete remote commands are deleted, commands whose definition hash
// changed are re-created.
func (b *Bot) syncCommands(guildID string) error {
	appID, err := b.appID()
	if err != nil {
		return err
	}

	remote, _ := b.session.ApplicationCommands(appID, guildID)
	cached := loadGuildCommandHashes(guildID)

	var wanted []*discordgo.ApplicationCommand
	wantedHashes := make(map[string]string)
	for _, c := range command.AllCommands() {
		if def := normalizeDefinition(c); def != nil {
			wanted = append(wanted, def)
			wantedHashes[def.Name] = hashCommand(def)
		}
	}

	for _, old := range remote {
		if _, ok := wantedHashes[old.Name]; ok {
			continue
		}
		log.Info().Str("guild", guildID).Str("command", old.Name).Msg("deleting obsolete command")
		if err := b.session.ApplicationCommandDelete(appID, guildID, old.ID); err != nil {
			log.Error().Err(err).Str("guild", guildID).Str("command", old.Name).Msg("failed to delete command")
		}
		delete(cached, old.Name)
	}

	var changed []*discordgo.ApplicationCommand
	for _, def := range wanted {
		if cached[def.Name] != wantedHashes[def.Name] {
			changed = append(changed, def)
		}
	}

	if len(changed) > 0 {
		log.Info().Str("guild", guildID).Int("count", len(changed)).Msg("updating changed commands")
		b.createWithRateLimit(appID, guildID, changed)
		for _, def := range changed {
			cached[def.Name] = wantedHashes[def.Name]
		}
	}

	saveGuildCommandHashes(guildID, cached)
	return nil
}

// createWithRateLimit spaces out command creation to stay under Discord's
// application command rate limit.
func (b *Bot) createWithRateLimit(appID, guildID string, defs []*discordgo.ApplicationCommand) {
	ticker := time.NewTicker(time.Second / 40)
	defer ticker.Stop()

	var wg sync.WaitGroup
	for _, def := range defs {
		wg.Add(1)
		go func(def *discordgo.ApplicationCommand) {
			defer wg.Done()
			<-ticker.C
			if _, err := b.session.ApplicationCommandCreate(appID, guildID, def); err != nil {
				log.Error().Err(err).Str("guild", guildID).Str("command", def.Name).Msg("failed to create command")
			} else {
				log.Debug().Str("guild", guildID).Str("command", def.Name).Msg("command created")
			}
		}(def)
	}
	wg.Wait()
}

// refreshCommands processes a refresh event published by a command, e.g.
// after /cogs toggles a cog on or off.
func (b *Bot) refreshCommands(evt bot.SystemEvent) {
	appID, err := b.appID()
	if err != nil {
		log.Error().Err(err).Str("guild", evt.GuildID).Msg("failed to resolve app id")
		return
	}

	if b.isGuildBlacklisted(evt.GuildID) {
		b.removeAllCommands(appID, evt.GuildID)
		return
	}

	switch {
	case strings.HasPrefix(evt.Target, "cog:"):
		b.refreshCog(appID, evt.GuildID, strings.TrimPrefix(evt.Target, "cog:"))
	case evt.Target == "" || strings.EqualFold(evt.Target, "all"):
		if err := b.syncCommands(evt.GuildID); err != nil {
			log.Error().Err(err).Str("guild", evt.GuildID).Msg("failed to refresh commands")
		}
	default:
		b.refreshSingle(appID, evt.GuildID, evt.Target)
	}
}

func (b *Bot) removeAllCommands(appID, guildID string) {
	log.Info().Str("guild", guildID).Msg("guild is blacklisted, removing all commands")
	existing, _ := b.session.ApplicationCommands(appID, guildID)
	for _, c := range existing {
		if err := b.session.ApplicationCommandDelete(appID, guildID, c.ID); err != nil {
			log.Error().Err(err).Str("guild", guildID).Str("command", c.Name).Msg("failed to delete command")
		}
	}
}

// refreshCog registers or removes the commands of a single cog depending on
// whether the cog is disabled in the guild.
func (b *Bot) refreshCog(appID, guildID, cogName string) {
	disabled, err := b.store.IsCogDisabled(guildID, cogName)
	if err != nil {
		log.Error().Err(err).Str("guild", guildID).Str("cog", cogName).Msg("failed to read cog state")
		return
	}

	existing, _ := b.session.ApplicationCommands(appID, guildID)
	existingByName := make(map[string]*discordgo.ApplicationCommand, len(existing))
	for _, c := range existing {
		existingByName[c.Name] = c
	}

	for _, c := range command.AllCommands() {
		meta, ok := command.Meta(c)
		if !ok || meta.Cog() != cogName {
			continue
		}
		remote, registered := existingByName[c.Name()]
		switch {
		case disabled && registered:
			log.Info().Str("guild", guildID).Str("command", c.Name()).Msg("removing command of disabled cog")
			if err := b.session.ApplicationCommandDelete(appID, guildID, remote.ID); err != nil {
				log.Error().Err(err).Str("guild", guildID).Str("command", c.Name()).Msg("failed to delete command")
			}
		case !disabled && !registered:
			if def := normalizeDefinition(c); def != nil {
				log.Info().Str("guild", guildID).Str("command", c.Name()).Msg("registering command of enabled cog")
				if _, err := b.session.ApplicationCommandCreate(appID, guildID, def); err != nil {
					log.Error().Err(err).Str("guild", guildID).Str("command", c.Name()).Msg("failed to create command")
				}
			}
		}
	}
}

func (b *Bot) refreshSingle(appID, guildID, name string) {
	for _, c := range command.AllCommands() {
		if !strings.EqualFold(c.Name(), name) {
			continue
		}
		if def := normalizeDefinition(c); def != nil {
			if _, err := b.session.ApplicationCommandCreate(appID, guildID, def); err != nil {
				log.Error().Err(err).Str("guild", guildID).Str("command", name).Msg("failed to refresh command")
			}
		}
		return
	}
	log.Warn().Str("guild", guildID).Str("target", name).Msg("no command found for refresh target")
}

// normalizeDefinition extracts the ApplicationCommand definition from a
// registered command, unwrapping middleware via cmdkit.Root. Context menu
// definitions default to the message command type.
func normalizeDefinition(c cmdkit.Command) *discordgo.ApplicationCommand {
	root := cmdkit.Root(c)
	if slash, ok := root.(command.SlashProvider); ok {
		if def := slash.SlashDefinition(); def != nil {
			if def.Type == 0 {
				def.Type = discordgo.ChatApplicationCommand
			}
			return def
		}
	}
	if menu, ok := root.(command.ContextMenuProvider); ok {
		if def := menu.ContextDefinition(); def != nil {
			if def.Type == 0 {
				def.Type = discordgo.MessageApplicationCommand
			}
			return def
		}
	}
	return nil
}

// appID returns the bot's application ID, fetching it when state has not
// caught up yet.
func (b *Bot) appID() (string, error) {
	if id := b.session.State.User.ID; id != "" {
		return id, nil
	}
	u, err := b.session.User("@me")
	if err != nil {
		return "", fmt.Errorf("failed to fetch bot user: %w", err)
	}
	return u.ID, nil
}
