package firstmessage

import (
	"fmt"

	"seina-bot/internal/bot"
	"seina-bot/internal/command"
	"seina-bot/internal/middleware"
	"seina-bot/pkg/util"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"
)

type FirstMessageCommand struct{}

func (c *FirstMessageCommand) Name() string        { return "firstmessage" }
func (c *FirstMessageCommand) Description() string { return "Jump to the first message of a channel" }
func (c *FirstMessageCommand) Cog() string         { return CogName }
func (c *FirstMessageCommand) Category() string    { return "🧰 Utilities" }
func (c *FirstMessageCommand) UserPermissions() []int64 {
	return []int64{}
}

func (c *FirstMessageCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionChannel,
				Name:        "channel",
				Description: "Channel to inspect (defaults to this one)",
				ChannelTypes: []discordgo.ChannelType{
					discordgo.ChannelTypeGuildText,
					discordgo.ChannelTypeGuildNews,
				},
			},
		},
	}
}

func (c *FirstMessageCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event

	channelID := event.ChannelID
	for _, opt := range event.ApplicationCommandData().Options {
		if opt.Name == "channel" {
			if ch := opt.ChannelValue(session); ch != nil {
				channelID = ch.ID
			}
		}
	}

	// A channel's own snowflake predates its first message, so asking for
	// messages after it returns the oldest one.
	msgs, err := session.ChannelMessages(channelID, 1, "", channelID, "")
	if err != nil {
		return bot.RespondEphemeral(session, event, "Could not read that channel's history.")
	}
	if len(msgs) == 0 {
		return bot.RespondEphemeral(session, event, fmt.Sprintf("<#%s> has no messages yet.", channelID))
	}

	first := msgs[0]
	created, _ := discordgo.SnowflakeTimestamp(first.ID)

	snippet := util.Truncate(first.Content, 200)
	if snippet == "" {
		snippet = "*(no text content)*"
	}

	embed := &discordgo.MessageEmbed{
		Description: snippet,
		Color:       bot.EmbedColor,
		Author: &discordgo.MessageEmbedAuthor{
			Name:    first.Author.Username,
			IconURL: first.Author.AvatarURL("64"),
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Sent %s", humanize.Time(created)),
		},
	}

	link := fmt.Sprintf("https://discord.com/channels/%s/%s/%s", event.GuildID, channelID, first.ID)
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label: "Jump to message",
					Style: discordgo.LinkButton,
					URL:   link,
				},
			},
		},
	}

	return bot.RespondEmbedWithComponents(session, event, embed, components)
}

func init() {
	command.RegisterCommand(
		&FirstMessageCommand{},
		middleware.WithCogAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
