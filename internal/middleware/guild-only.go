// Package middleware provides the cross-cutting wrappers applied at command
// registration: cog toggles, guild gating, permission checks and logging.
package middleware

import (
	"context"

	"seina-bot/internal/command"
	"seina-bot/pkg/cmdkit"
)

// WithGuildOnly wraps a command to silently ignore invocations outside a guild.
func WithGuildOnly() cmdkit.Middleware {
	return func(c cmdkit.Command) cmdkit.Command {
		return cmdkit.Wrap(c, func(ctx context.Context, inv *cmdkit.Invocation) error {
			switch v := inv.Data.(type) {
			case *command.SlashInteractionContext:
				if v.Event.GuildID == "" {
					return nil
				}
			case *command.ComponentInteractionContext:
				if v.Event.GuildID == "" {
					return nil
				}
			case *command.MessageApplicationCommandContext:
				if v.Event.GuildID == "" {
					return nil
				}
			case *command.UserApplicationCommandContext:
				if v.Event.GuildID == "" {
					return nil
				}
			case *command.MessageContext:
				if v.Event.GuildID == "" {
					return nil
				}
			}
			return c.Run(ctx, inv)
		})
	}
}
