package core

import (
	"fmt"
	"strings"

	"seina-bot/internal/bot"
	"seina-bot/internal/cog"
	"seina-bot/internal/command"
	"seina-bot/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

type CogsCommand struct{}

func (c *CogsCommand) Name() string        { return "cogs" }
func (c *CogsCommand) Description() string { return "List, enable or disable cogs on this server" }
func (c *CogsCommand) Cog() string         { return CogName }
func (c *CogsCommand) Category() string    { return "⚙️ Settings" }
func (c *CogsCommand) UserPermissions() []int64 {
	return []int64{
		discordgo.PermissionManageGuild,
	}
}

func (c *CogsCommand) SlashDefinition() *discordgo.ApplicationCommand {
	cogChoices := []*discordgo.ApplicationCommandOptionChoice{}
	for _, name := range cog.Names() {
		if name == CogName {
			continue
		}
		cogChoices = append(cogChoices, &discordgo.ApplicationCommandOptionChoice{Name: name, Value: name})
	}

	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "Show installed cogs and their status on this server",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "enable",
				Description: "Enable a cog on this server",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "cog",
						Description: "Cog to enable",
						Required:    true,
						Choices:     cogChoices,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "disable",
				Description: "Disable a cog on this server",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "cog",
						Description: "Cog to disable",
						Required:    true,
						Choices:     cogChoices,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "refresh",
				Description: "Re-sync slash commands for this server",
			},
		},
	}
}

func (c *CogsCommand) Run(ctx interface{}) error {
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
	sub := data.Options[0]

	switch sub.Name {
	case "enable", "disable":
		var name string
		for _, opt := range sub.Options {
			if opt.Name == "cog" {
				name = opt.StringValue()
			}
		}
		if _, known := cog.Get(name); !known {
			return bot.RespondEmbedEphemeral(session, event, &discordgo.MessageEmbed{
				Description: fmt.Sprintf("Unknown cog `%s`.", name),
			})
		}
		if name == CogName {
			return bot.RespondEmbedEphemeral(session, event, &discordgo.MessageEmbed{
				Description: "You can't disable the `core` cog. It's the backbone of the bot.",
			})
		}

		var err error
		var verb string
		if sub.Name == "disable" {
			err = storage.DisableCog(guildID, name)
			verb = "disabled"
		} else {
			err = storage.EnableCog(guildID, name)
			verb = "enabled"
		}
		if err != nil {
			return bot.RespondEmbedEphemeral(session, event, &discordgo.MessageEmbed{
				Description: fmt.Sprintf("Failed to update cog `%s`.", name),
			})
		}

		bot.PublishSystemEvent(bot.SystemEvent{
			Type:    bot.SystemEventRefreshCommands,
			GuildID: guildID,
			Target:  "cog:" + name,
		})
		return bot.RespondEmbedEphemeral(session, event, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("Cog `%s` %s. Slash commands are being re-synced.", name, verb),
			Footer:      &discordgo.MessageEmbedFooter{Text: "Use /cogs list to check cog status."},
		})

	case "refresh":
		bot.PublishSystemEvent(bot.SystemEvent{
			Type:    bot.SystemEventRefreshCommands,
			GuildID: guildID,
			Target:  "all",
		})
		return bot.RespondEmbedEphemeral(session, event, &discordgo.MessageEmbed{
			Description: "Re-syncing slash commands for this server.",
		})

	default:
		return c.respondList(context)
	}
}

func (c *CogsCommand) respondList(context *command.SlashInteractionContext) error {
	disabled, err := context.Storage.DisabledCogs(context.Event.GuildID)
	if err != nil {
		return err
	}
	off := make(map[string]bool, len(disabled))
	for _, d := range disabled {
		off[d] = true
	}

	var sb strings.Builder
	for _, m := range cog.All() {
		mark := "🟢"
		if off[m.Name] {
			mark = "🔴"
		}
		sb.WriteString(fmt.Sprintf("%s **%s** `v%s` - %s\n", mark, m.Name, m.Version, m.Description))
	}

	return bot.RespondEmbedEphemeral(context.Session, context.Event, &discordgo.MessageEmbed{
		Title:       "Installed cogs",
		Description: sb.String(),
		Color:       bot.EmbedColor,
	})
}

func init() {
	command.RegisterCommand(
		&CogsCommand{},
		middleware.WithCogAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
