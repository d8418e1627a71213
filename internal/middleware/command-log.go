package middleware

import (
	"context"

	"seina-bot/internal/bot"
	"seina-bot/internal/command"
	"seina-bot/internal/storage"
	"seina-bot/pkg/cmdkit"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// WithCommandLogger wraps a command to record its execution in the per-guild
// history. Watcher events are not logged; they fire far too often.
func WithCommandLogger() cmdkit.Middleware {
	return func(c cmdkit.Command) cmdkit.Command {
		return cmdkit.Wrap(c, func(ctx context.Context, inv *cmdkit.Invocation) error {
			err := c.Run(ctx, inv)

			switch v := inv.Data.(type) {
			case *command.SlashInteractionContext:
				logInteraction(v.Session, v.Storage, v.Event, c.Name())
			case *command.ComponentInteractionContext:
				logInteraction(v.Session, v.Storage, v.Event, c.Name())
			case *command.MessageApplicationCommandContext:
				logInteraction(v.Session, v.Storage, v.Event, c.Name())
			case *command.UserApplicationCommandContext:
				logInteraction(v.Session, v.Storage, v.Event, c.Name())
			}
			return err
		})
	}
}

func logInteraction(s *discordgo.Session, stor *storage.Storage, e *discordgo.InteractionCreate, name string) {
	if stor == nil {
		return
	}
	user := resolveUser(s, e)
	if err := bot.LogCommand(s, stor, e.GuildID, e.ChannelID, user.ID, user.Username, name); err != nil {
		log.Warn().Err(err).Str("command", name).Msg("failed to log command")
	}
}

// resolveUser retrieves the invoking user from an interaction, falling back to
// the API when the event carries only an ID.
func resolveUser(s *discordgo.Session, e *discordgo.InteractionCreate) *discordgo.User {
	if e.Member != nil && e.Member.User != nil {
		return e.Member.User
	}
	if e.User != nil {
		if e.User.Username != "" {
			return e.User
		}
		if u, err := s.User(e.User.ID); err == nil {
			return u
		}
		return e.User
	}
	return &discordgo.User{ID: "unknown", Username: "Unknown"}
}
