package seinatools

import (
	"seina-bot/internal/bot"
	"seina-bot/internal/command"
	"seina-bot/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

// AvatarContextCommand is /avatar as a right-click user menu entry.
type AvatarContextCommand struct{}

func (c *AvatarContextCommand) Name() string        { return "View Avatar" }
func (c *AvatarContextCommand) Description() string { return "Show a member's avatar from the right-click menu" }
func (c *AvatarContextCommand) Cog() string         { return CogName }
func (c *AvatarContextCommand) Category() string    { return "🧰 Utilities" }
func (c *AvatarContextCommand) UserPermissions() []int64 {
	return []int64{}
}

// ContextDefinition registers the user command. Context menu entries carry no
// description on the Discord side.
func (c *AvatarContextCommand) ContextDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name: c.Name(),
		Type: discordgo.UserApplicationCommand,
	}
}

func (c *AvatarContextCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.UserApplicationCommandContext)
	if !ok {
		return nil
	}
	if context.Target == nil {
		return bot.RespondEphemeral(context.Session, context.Event, "Could not resolve the user.")
	}
	return bot.RespondEmbedEphemeral(context.Session, context.Event, avatarEmbed(context.Target))
}

func init() {
	command.RegisterCommand(
		&AvatarContextCommand{},
		middleware.WithCogAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
