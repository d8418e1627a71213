package seinatools

import (
	"fmt"

	"seina-bot/internal/bot"
	"seina-bot/internal/command"
	"seina-bot/internal/middleware"
	"seina-bot/pkg/util"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"
)

type ServerInfoCommand struct{}

func (c *ServerInfoCommand) Name() string        { return "serverinfo" }
func (c *ServerInfoCommand) Description() string { return "Show stats about this server" }
func (c *ServerInfoCommand) Cog() string         { return CogName }
func (c *ServerInfoCommand) Category() string    { return "🧰 Utilities" }
func (c *ServerInfoCommand) UserPermissions() []int64 {
	return []int64{}
}

func (c *ServerInfoCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *ServerInfoCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event

	guild, err := session.State.Guild(event.GuildID)
	if err != nil || guild == nil {
		guild, err = session.Guild(event.GuildID)
		if err != nil {
			return bot.RespondEphemeral(session, event, "Could not fetch server information.")
		}
	}

	humans, bots := 0, 0
	for _, m := range guild.Members {
		if m.User != nil && m.User.Bot {
			bots++
		} else {
			humans++
		}
	}
	memberLine := fmt.Sprintf("%d total", guild.MemberCount)
	if humans+bots > 0 {
		memberLine = fmt.Sprintf("%d total (%d humans, %d bots cached)", guild.MemberCount, humans, bots)
	}

	text, voice, categories := 0, 0, 0
	for _, ch := range guild.Channels {
		switch ch.Type {
		case discordgo.ChannelTypeGuildText, discordgo.ChannelTypeGuildNews:
			text++
		case discordgo.ChannelTypeGuildVoice, discordgo.ChannelTypeGuildStageVoice:
			voice++
		case discordgo.ChannelTypeGuildCategory:
			categories++
		}
	}

	created, _ := discordgo.SnowflakeTimestamp(guild.ID)

	embed := &discordgo.MessageEmbed{
		Title: guild.Name,
		Color: bot.EmbedColor,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: guild.IconURL("256"),
		},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Members", Value: memberLine, Inline: true},
			{Name: "Roles", Value: fmt.Sprintf("%d", len(guild.Roles)), Inline: true},
			{Name: "Boosts", Value: fmt.Sprintf("%d (tier %d)", guild.PremiumSubscriptionCount, guild.PremiumTier), Inline: true},
			{Name: "Channels", Value: fmt.Sprintf("%d text, %d voice, %d categories", text, voice, categories), Inline: true},
			{Name: "Owner", Value: fmt.Sprintf("<@%s>", guild.OwnerID), Inline: true},
			{Name: "Created", Value: fmt.Sprintf("%s (%s)", util.DiscordTimestamp(created, 'D'), humanize.Time(created)), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Server ID: " + guild.ID},
	}
	return bot.RespondEmbed(session, event, embed)
}

func init() {
	command.RegisterCommand(
		&ServerInfoCommand{},
		middleware.WithCogAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
