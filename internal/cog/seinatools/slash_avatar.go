package seinatools

import (
	"fmt"

	"seina-bot/internal/bot"
	"seina-bot/internal/command"
	"seina-bot/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

type AvatarCommand struct{}

func (c *AvatarCommand) Name() string        { return "avatar" }
func (c *AvatarCommand) Description() string { return "Show a member's avatar in full size" }
func (c *AvatarCommand) Cog() string         { return CogName }
func (c *AvatarCommand) Category() string    { return "🧰 Utilities" }
func (c *AvatarCommand) UserPermissions() []int64 {
	return []int64{}
}

func (c *AvatarCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "Whose avatar to show (defaults to you)",
			},
		},
	}
}

func (c *AvatarCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event

	var user *discordgo.User
	for _, opt := range event.ApplicationCommandData().Options {
		if opt.Name == "user" {
			user = opt.UserValue(session)
		}
	}
	if user == nil {
		if event.Member != nil {
			user = event.Member.User
		} else {
			user = event.User
		}
	}
	if user == nil {
		return bot.RespondEphemeral(session, event, "Could not resolve the user.")
	}

	return bot.RespondEmbed(session, event, avatarEmbed(user))
}

func avatarEmbed(user *discordgo.User) *discordgo.MessageEmbed {
	links := ""
	for _, size := range []string{"128", "256", "512", "1024", "4096"} {
		links += fmt.Sprintf("[%s](%s) ", size, user.AvatarURL(size))
	}
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Avatar of %s", user.Username),
		Description: links,
		Color:       bot.EmbedColor,
		Image:       &discordgo.MessageEmbedImage{URL: user.AvatarURL("1024")},
	}
}

func init() {
	command.RegisterCommand(
		&AvatarCommand{},
		middleware.WithCogAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
