package core

import (
	"fmt"

	"seina-bot/internal/bot"
	"seina-bot/internal/command"
	"seina-bot/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

type PingCommand struct{}

func (c *PingCommand) Name() string        { return "ping" }
func (c *PingCommand) Description() string { return "Check bot latency" }
func (c *PingCommand) Cog() string         { return CogName }
func (c *PingCommand) Category() string    { return "🕯️ Information" }
func (c *PingCommand) UserPermissions() []int64 {
	return []int64{}
}

func (c *PingCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *PingCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	latency := context.Session.HeartbeatLatency().Milliseconds()
	return bot.Respond(context.Session, context.Event, fmt.Sprintf("🏓 Pong! %dms", latency))
}

func init() {
	command.RegisterCommand(
		&PingCommand{},
		middleware.WithCogAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
