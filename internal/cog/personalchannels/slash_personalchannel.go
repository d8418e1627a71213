package personalchannels

import (
	"fmt"
	"sort"
	"strings"

	"seina-bot/internal/bot"
	"seina-bot/internal/command"
	"seina-bot/internal/middleware"
	"seina-bot/pkg/util"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// PersonalChannelCommand is the staff side: binding channels to members and
// cleaning up when a bound channel disappears.
type PersonalChannelCommand struct{}

func (c *PersonalChannelCommand) Name() string        { return "personalchannel" }
func (c *PersonalChannelCommand) Description() string { return "Manage members' personal channels" }
func (c *PersonalChannelCommand) Cog() string         { return CogName }
func (c *PersonalChannelCommand) Category() string    { return "📦 Channels" }
func (c *PersonalChannelCommand) UserPermissions() []int64 {
	return []int64{
		discordgo.PermissionManageChannels,
	}
}

func (c *PersonalChannelCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "assign",
				Description: "Bind a text channel to a member",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "member",
						Description: "Channel owner",
						Required:    true,
					},
					{
						Type:         discordgo.ApplicationCommandOptionChannel,
						Name:         "channel",
						Description:  "Channel to bind",
						Required:     true,
						ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "unassign",
				Description: "Remove a member's channel binding",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "member",
						Description: "Channel owner",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "Show all channel bindings",
			},
		},
	}
}

func (c *PersonalChannelCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event
	store := context.Storage
	guildID := event.GuildID

	data := event.ApplicationCommandData()
	if len(data.Options) == 0 {
		return nil
	}
	sub := data.Options[0]

	switch sub.Name {
	case "assign":
		var user *discordgo.User
		var channel *discordgo.Channel
		for _, opt := range sub.Options {
			switch opt.Name {
			case "member":
				user = opt.UserValue(session)
			case "channel":
				channel = opt.ChannelValue(session)
			}
		}
		if user == nil || channel == nil {
			return bot.RespondEphemeral(session, event, "Could not resolve the member or channel.")
		}
		if user.Bot {
			return bot.RespondEphemeral(session, event, "Bots don't get personal channels.")
		}

		if owner, taken, err := store.PersonalChannelOwner(guildID, channel.ID); err != nil {
			return fmt.Errorf("check channel owner: %w", err)
		} else if taken && owner != user.ID {
			return bot.RespondEphemeral(session, event,
				fmt.Sprintf("<#%s> already belongs to <@%s>.", channel.ID, owner))
		}

		if pc, err := store.PersonalChannelFor(guildID, user.ID); err == nil {
			return bot.RespondEphemeral(session, event,
				fmt.Sprintf("<@%s> already owns <#%s>. Unassign it first.", user.ID, pc.ChannelID))
		}

		if err := store.AssignPersonalChannel(guildID, user.ID, channel.ID); err != nil {
			return fmt.Errorf("assign personal channel: %w", err)
		}
		return bot.Respond(session, event,
			fmt.Sprintf("<#%s> now belongs to <@%s>. They can manage it with `/mychannel`.", channel.ID, user.ID))

	case "unassign":
		var user *discordgo.User
		for _, opt := range sub.Options {
			if opt.Name == "member" {
				user = opt.UserValue(session)
			}
		}
		if user == nil {
			return bot.RespondEphemeral(session, event, "Could not resolve the member.")
		}

		pc, err := store.PersonalChannelFor(guildID, user.ID)
		if err != nil {
			return bot.RespondEphemeral(session, event, fmt.Sprintf("<@%s> has no personal channel.", user.ID))
		}
		if err := store.UnassignPersonalChannel(guildID, user.ID); err != nil {
			return fmt.Errorf("unassign personal channel: %w", err)
		}
		return bot.Respond(session, event,
			fmt.Sprintf("Unbound <#%s> from <@%s>. The channel itself was left in place.", pc.ChannelID, user.ID))

	default:
		return c.respondList(context)
	}
}

func (c *PersonalChannelCommand) respondList(context *command.SlashInteractionContext) error {
	cfg, err := context.Storage.PersonalChannels(context.Event.GuildID)
	if err != nil {
		return fmt.Errorf("load personal channels: %w", err)
	}
	if len(cfg.Channels) == 0 {
		return bot.RespondEphemeral(context.Session, context.Event, "No personal channels are assigned.")
	}

	owners := make([]string, 0, len(cfg.Channels))
	for userID := range cfg.Channels {
		owners = append(owners, userID)
	}
	sort.Slice(owners, func(i, j int) bool {
		return cfg.Channels[owners[i]].Assigned.Before(cfg.Channels[owners[j]].Assigned)
	})

	var sb strings.Builder
	for _, userID := range owners {
		pc := cfg.Channels[userID]
		line := fmt.Sprintf("<#%s> → <@%s>, since %s", pc.ChannelID, userID, util.DiscordTimestamp(pc.Assigned, 'D'))
		if n := len(pc.Friends); n > 0 {
			line += fmt.Sprintf(" (%d friends)", n)
		}
		sb.WriteString(line + "\n")
	}

	return bot.RespondEmbedEphemeral(context.Session, context.Event, &discordgo.MessageEmbed{
		Title:       "Personal channels",
		Description: sb.String(),
		Color:       bot.EmbedColor,
	})
}

// WatchChannelDelete drops the binding when a bound channel is deleted.
func (c *PersonalChannelCommand) WatchChannelDelete(ctx *command.ChannelDeleteContext) error {
	ch := ctx.Event.Channel
	if ch == nil || ch.GuildID == "" {
		return nil
	}

	owner, found, err := ctx.Storage.PersonalChannelOwner(ch.GuildID, ch.ID)
	if err != nil || !found {
		return err
	}
	if err := ctx.Storage.UnassignPersonalChannel(ch.GuildID, owner); err != nil {
		return fmt.Errorf("clean up binding for deleted channel %s: %w", ch.ID, err)
	}
	log.Info().
		Str("guild", ch.GuildID).
		Str("channel", ch.ID).
		Str("owner", owner).
		Msg("personal channel deleted, binding removed")
	return nil
}

func init() {
	command.RegisterCommand(
		&PersonalChannelCommand{},
		middleware.WithCogAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
