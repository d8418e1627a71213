package antilinks

import (
	"fmt"
	"strings"
	"time"

	"seina-bot/internal/bot"
	"seina-bot/internal/command"
	"seina-bot/internal/middleware"

	"github.com/bwmarrin/discordgo"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/rs/zerolog/log"
)

// noticeLifetime is how long the "links are not allowed" notice stays up.
const noticeLifetime = 5 * time.Second

// AntiLinksCommand is both the configuration surface (/antilinks) and the
// message watcher that enforces it.
type AntiLinksCommand struct{}

func (c *AntiLinksCommand) Name() string        { return "antilinks" }
func (c *AntiLinksCommand) Description() string { return "Remove links in watched channels" }
func (c *AntiLinksCommand) Cog() string         { return CogName }
func (c *AntiLinksCommand) Category() string    { return "🛡️ Moderation" }
func (c *AntiLinksCommand) UserPermissions() []int64 {
	return []int64{
		discordgo.PermissionManageGuild,
	}
}

func (c *AntiLinksCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
				Name:        "watch",
				Description: "Manage watched channels",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "add",
						Description: "Start removing links in a channel",
						Options: []*discordgo.ApplicationCommandOption{
							{
								Type:        discordgo.ApplicationCommandOptionChannel,
								Name:        "channel",
								Description: "Channel to watch",
								Required:    true,
								ChannelTypes: []discordgo.ChannelType{
									discordgo.ChannelTypeGuildText,
								},
							},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "remove",
						Description: "Stop removing links in a channel",
						Options: []*discordgo.ApplicationCommandOption{
							{
								Type:        discordgo.ApplicationCommandOptionChannel,
								Name:        "channel",
								Description: "Channel to unwatch",
								Required:    true,
							},
						},
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
				Name:        "whitelist",
				Description: "Manage roles allowed to post links",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "add",
						Description: "Allow a role to post links in watched channels",
						Options: []*discordgo.ApplicationCommandOption{
							{
								Type:        discordgo.ApplicationCommandOptionRole,
								Name:        "role",
								Description: "Role to whitelist",
								Required:    true,
							},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "remove",
						Description: "Remove a role from the whitelist",
						Options: []*discordgo.ApplicationCommandOption{
							{
								Type:        discordgo.ApplicationCommandOptionRole,
								Name:        "role",
								Description: "Role to remove",
								Required:    true,
							},
						},
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "settings",
				Description: "Show watched channels and whitelisted roles",
			},
		},
	}
}

func (c *AntiLinksCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event
	storage := context.Storage
	guildID := event.GuildID

	data := event.ApplicationCommandData()
	if len(data.Options) == 0 {
		return nil
	}
	top := data.Options[0]

	switch top.Name {
	case "watch":
		if len(top.Options) == 0 {
			return nil
		}
		sub := top.Options[0]
		channelID := ""
		for _, opt := range sub.Options {
			if opt.Name == "channel" {
				if ch := opt.ChannelValue(session); ch != nil {
					channelID = ch.ID
				}
			}
		}
		if channelID == "" {
			return bot.RespondEphemeral(session, event, "Could not resolve the channel.")
		}
		if sub.Name == "add" {
			if err := storage.AddAntiLinksChannel(guildID, channelID); err != nil {
				return err
			}
			return bot.RespondEmbedEphemeral(session, event, &discordgo.MessageEmbed{
				Description: fmt.Sprintf("Links posted in <#%s> will now be removed.", channelID),
			})
		}
		if err := storage.RemoveAntiLinksChannel(guildID, channelID); err != nil {
			return err
		}
		return bot.RespondEmbedEphemeral(session, event, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("<#%s> is no longer watched.", channelID),
		})

	case "whitelist":
		if len(top.Options) == 0 {
			return nil
		}
		sub := top.Options[0]
		roleID := ""
		for _, opt := range sub.Options {
			if opt.Name == "role" {
				if r := opt.RoleValue(session, guildID); r != nil {
					roleID = r.ID
				}
			}
		}
		if roleID == "" {
			return bot.RespondEphemeral(session, event, "Could not resolve the role.")
		}
		if sub.Name == "add" {
			if err := storage.AddAntiLinksRole(guildID, roleID); err != nil {
				return err
			}
			return bot.RespondEmbedEphemeral(session, event, &discordgo.MessageEmbed{
				Description: fmt.Sprintf("Members with <@&%s> may now post links in watched channels.", roleID),
			})
		}
		if err := storage.RemoveAntiLinksRole(guildID, roleID); err != nil {
			return err
		}
		return bot.RespondEmbedEphemeral(session, event, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("<@&%s> removed from the link whitelist.", roleID),
		})

	default:
		cfg, err := storage.AntiLinks(guildID)
		if err != nil {
			return err
		}
		channels := "none"
		if len(cfg.Channels) > 0 {
			refs := make([]string, 0, len(cfg.Channels))
			for _, id := range cfg.Channels {
				refs = append(refs, "<#"+id+">")
			}
			channels = strings.Join(refs, ", ")
		}
		roles := "none"
		if len(cfg.AllowedRoles) > 0 {
			refs := make([]string, 0, len(cfg.AllowedRoles))
			for _, id := range cfg.AllowedRoles {
				refs = append(refs, "<@&"+id+">")
			}
			roles = strings.Join(refs, ", ")
		}
		return bot.RespondEmbedEphemeral(session, event, &discordgo.MessageEmbed{
			Title:       "AntiLinks settings",
			Description: fmt.Sprintf("**Watched channels:** %s\n**Whitelisted roles:** %s", channels, roles),
			Color:       bot.EmbedColor,
		})
	}
}

// WatchMessage deletes link messages in watched channels. Bots, admins and
// whitelisted roles are exempt.
func (c *AntiLinksCommand) WatchMessage(ctx *command.MessageContext) error {
	session := ctx.Session
	event := ctx.Event

	if event.Author == nil || event.Author.Bot || event.GuildID == "" {
		return nil
	}
	if !HasLink(event.Content) {
		return nil
	}

	cfg, err := ctx.Storage.AntiLinks(event.GuildID)
	if err != nil || len(cfg.Channels) == 0 {
		return err
	}

	watched := mapset.NewThreadUnsafeSet(cfg.Channels...)
	if !watched.Contains(event.ChannelID) {
		return nil
	}

	if event.Member != nil {
		allowed := mapset.NewThreadUnsafeSet(cfg.AllowedRoles...)
		for _, roleID := range event.Member.Roles {
			if allowed.Contains(roleID) {
				return nil
			}
		}
		if bot.IsAdministrator(session, event.GuildID, event.Member) {
			return nil
		}
	}

	if err := session.ChannelMessageDelete(event.ChannelID, event.ID); err != nil {
		log.Warn().Err(err).
			Str("guild", event.GuildID).
			Str("channel", event.ChannelID).
			Msg("failed to delete link message")
		return nil
	}

	notice, err := session.ChannelMessageSend(event.ChannelID,
		fmt.Sprintf("%s, links are not allowed in this channel.", event.Author.Mention()))
	if err != nil {
		return nil
	}
	time.AfterFunc(noticeLifetime, func() {
		if err := session.ChannelMessageDelete(notice.ChannelID, notice.ID); err != nil {
			log.Debug().Err(err).Msg("failed to delete antilinks notice")
		}
	})
	return nil
}

func init() {
	command.RegisterCommand(
		&AntiLinksCommand{},
		middleware.WithCogAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
