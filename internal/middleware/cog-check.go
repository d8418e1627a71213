package middleware

import (
	"context"

	"seina-bot/internal/bot"
	"seina-bot/internal/command"
	"seina-bot/internal/storage"
	"seina-bot/pkg/cmdkit"

	"github.com/bwmarrin/discordgo"
)

// WithCogAccessCheck wraps a command so it does nothing in guilds where its
// cog has been disabled. Interactions get an ephemeral notice, watcher events
// are dropped silently.
func WithCogAccessCheck() cmdkit.Middleware {
	return func(c cmdkit.Command) cmdkit.Command {
		return cmdkit.Wrap(c, func(ctx context.Context, inv *cmdkit.Invocation) error {
			var (
				guildID string
				stor    *storage.Storage
				respond func(string)
			)

			switch v := inv.Data.(type) {
			case *command.SlashInteractionContext:
				guildID, stor = v.Event.GuildID, v.Storage
				respond = func(msg string) {
					bot.RespondEmbedEphemeral(v.Session, v.Event, &discordgo.MessageEmbed{Description: msg})
				}
			case *command.ComponentInteractionContext:
				guildID, stor = v.Event.GuildID, v.Storage
				respond = func(msg string) {
					bot.RespondEmbedEphemeral(v.Session, v.Event, &discordgo.MessageEmbed{Description: msg})
				}
			case *command.MessageApplicationCommandContext:
				guildID, stor = v.Event.GuildID, v.Storage
				respond = func(msg string) {
					bot.RespondEmbedEphemeral(v.Session, v.Event, &discordgo.MessageEmbed{Description: msg})
				}
			case *command.UserApplicationCommandContext:
				guildID, stor = v.Event.GuildID, v.Storage
				respond = func(msg string) {
					bot.RespondEmbedEphemeral(v.Session, v.Event, &discordgo.MessageEmbed{Description: msg})
				}
			case *command.MessageContext:
				guildID, stor = v.Event.GuildID, v.Storage
				respond = func(string) {}
			case *command.PresenceContext:
				guildID, stor = v.Event.GuildID, v.Storage
				respond = func(string) {}
			case *command.ChannelDeleteContext:
				guildID, stor = v.Event.GuildID, v.Storage
				respond = func(string) {}
			default:
				return c.Run(ctx, inv)
			}

			if cogDisabled(c, guildID, stor, respond) {
				return nil
			}
			return c.Run(ctx, inv)
		})
	}
}

func cogDisabled(c cmdkit.Command, guildID string, stor *storage.Storage, respond func(string)) bool {
	if guildID == "" || stor == nil {
		return false
	}
	meta, ok := command.Meta(c)
	if !ok || meta.Cog() == "" {
		return false
	}
	disabled, err := stor.IsCogDisabled(guildID, meta.Cog())
	if err != nil {
		return false
	}
	if disabled {
		respond("This command belongs to a cog that is disabled on this server.\nUse `/cogs list` to see which cogs are enabled.")
		return true
	}
	return false
}
