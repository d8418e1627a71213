package personalchannels

import (
	"errors"
	"fmt"
	"strings"

	"seina-bot/internal/bot"
	"seina-bot/internal/command"
	"seina-bot/internal/middleware"
	"seina-bot/internal/storage"

	"github.com/bwmarrin/discordgo"
)

// friendPerms is what a friend gets on the owner's channel.
const friendPerms = discordgo.PermissionViewChannel | discordgo.PermissionSendMessages

// MyChannelCommand is the owner side of personal channels.
type MyChannelCommand struct{}

func (c *MyChannelCommand) Name() string        { return "mychannel" }
func (c *MyChannelCommand) Description() string { return "Manage your personal channel" }
func (c *MyChannelCommand) Cog() string         { return CogName }
func (c *MyChannelCommand) Category() string    { return "📦 Channels" }
func (c *MyChannelCommand) UserPermissions() []int64 {
	return []int64{}
}

func (c *MyChannelCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "name",
				Description: "Rename your channel",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "name",
						Description: "New channel name",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "topic",
				Description: "Set your channel's topic",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "text",
						Description: "New topic",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
				Name:        "friend",
				Description: "Share your channel with friends",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "add",
						Description: "Let a friend view and talk in your channel",
						Options: []*discordgo.ApplicationCommandOption{
							{
								Type:        discordgo.ApplicationCommandOptionUser,
								Name:        "member",
								Description: "Friend to add",
								Required:    true,
							},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "remove",
						Description: "Revoke a friend's access",
						Options: []*discordgo.ApplicationCommandOption{
							{
								Type:        discordgo.ApplicationCommandOptionUser,
								Name:        "member",
								Description: "Friend to remove",
								Required:    true,
							},
						},
					},
				},
			},
		},
	}
}

func (c *MyChannelCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event
	store := context.Storage
	guildID := event.GuildID

	if event.Member == nil || event.Member.User == nil {
		return nil
	}
	ownerID := event.Member.User.ID

	pc, err := store.PersonalChannelFor(guildID, ownerID)
	if errors.Is(err, storage.ErrNoPersonalChannel) {
		return bot.RespondEphemeral(session, event,
			"You don't have a personal channel. Ask a moderator to assign you one.")
	}
	if err != nil {
		return fmt.Errorf("load personal channel: %w", err)
	}

	data := event.ApplicationCommandData()
	if len(data.Options) == 0 {
		return nil
	}
	sub := data.Options[0]

	switch sub.Name {
	case "name":
		var name string
		for _, opt := range sub.Options {
			if opt.Name == "name" {
				name = strings.TrimSpace(opt.StringValue())
			}
		}
		if err := ValidateChannelName(name); err != nil {
			return bot.RespondEphemeral(session, event, "That name won't work: "+err.Error()+".")
		}
		if _, err := session.ChannelEdit(pc.ChannelID, &discordgo.ChannelEdit{Name: name}); err != nil {
			// Discord allows two renames per channel per ten minutes; the
			// REST error here is almost always that limit.
			return bot.RespondEphemeral(session, event,
				"Rename failed. Discord only allows two renames per ten minutes, try again later.")
		}
		return bot.RespondEphemeral(session, event, fmt.Sprintf("Your channel is now **%s**.", name))

	case "topic":
		var topic string
		for _, opt := range sub.Options {
			if opt.Name == "text" {
				topic = opt.StringValue()
			}
		}
		if err := ValidateTopic(topic); err != nil {
			return bot.RespondEphemeral(session, event, "That topic won't work: "+err.Error()+".")
		}
		if _, err := session.ChannelEdit(pc.ChannelID, &discordgo.ChannelEdit{Topic: topic}); err != nil {
			return bot.RespondEphemeral(session, event, "Setting the topic failed, try again later.")
		}
		return bot.RespondEphemeral(session, event, "Topic updated.")

	case "friend":
		if len(sub.Options) == 0 {
			return nil
		}
		action := sub.Options[0]

		var friend *discordgo.User
		for _, opt := range action.Options {
			if opt.Name == "member" {
				friend = opt.UserValue(session)
			}
		}
		if friend == nil {
			return bot.RespondEphemeral(session, event, "Could not resolve that member.")
		}
		if friend.ID == ownerID {
			return bot.RespondEphemeral(session, event, "That's you. You already have access.")
		}
		if friend.Bot {
			return bot.RespondEphemeral(session, event, "Bots can't be channel friends.")
		}

		if action.Name == "add" {
			err := session.ChannelPermissionSet(pc.ChannelID, friend.ID,
				discordgo.PermissionOverwriteTypeMember, friendPerms, 0)
			if err != nil {
				return bot.RespondEphemeral(session, event,
					"Couldn't set the channel permissions. I may be missing Manage Roles on that channel.")
			}
			if err := store.AddPersonalFriend(guildID, ownerID, friend.ID); err != nil {
				return fmt.Errorf("record friend: %w", err)
			}
			return bot.RespondEphemeral(session, event,
				fmt.Sprintf("<@%s> can now view and talk in <#%s>.", friend.ID, pc.ChannelID))
		}

		if err := session.ChannelPermissionDelete(pc.ChannelID, friend.ID); err != nil {
			return bot.RespondEphemeral(session, event,
				"Couldn't clear the channel permissions. I may be missing Manage Roles on that channel.")
		}
		if err := store.RemovePersonalFriend(guildID, ownerID, friend.ID); err != nil {
			return fmt.Errorf("remove friend: %w", err)
		}
		return bot.RespondEphemeral(session, event,
			fmt.Sprintf("<@%s> no longer has access to <#%s>.", friend.ID, pc.ChannelID))
	}
	return nil
}

func init() {
	command.RegisterCommand(
		&MyChannelCommand{},
		middleware.WithCogAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
