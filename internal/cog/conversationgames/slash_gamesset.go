package conversationgames

import (
	"fmt"

	"seina-bot/internal/bot"
	"seina-bot/internal/command"
	"seina-bot/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

type GamesSetCommand struct{}

func (c *GamesSetCommand) Name() string        { return "gamesset" }
func (c *GamesSetCommand) Description() string { return "Configure conversation games for this server" }
func (c *GamesSetCommand) Cog() string         { return CogName }
func (c *GamesSetCommand) Category() string    { return "⚙️ Settings" }
func (c *GamesSetCommand) UserPermissions() []int64 {
	return []int64{
		discordgo.PermissionManageGuild,
	}
}

func (c *GamesSetCommand) SlashDefinition() *discordgo.ApplicationCommand {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(Ratings))
	for _, r := range Ratings {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: r, Value: r})
	}
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "rating",
				Description: "Set the default question rating for this server",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "rating",
						Description: "Default rating",
						Required:    true,
						Choices:     choices,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "settings",
				Description: "Show the current conversation games settings",
			},
		},
	}
}

func (c *GamesSetCommand) Run(ctx interface{}) error {
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
	case "rating":
		rating := ""
		for _, opt := range sub.Options {
			if opt.Name == "rating" {
				rating = opt.StringValue()
			}
		}
		if !ValidRating(rating) {
			return bot.RespondEmbedEphemeral(session, event, &discordgo.MessageEmbed{
				Description: fmt.Sprintf("Unknown rating `%s`.", rating),
			})
		}
		if err := storage.SetGamesRating(guildID, rating); err != nil {
			return err
		}
		return bot.RespondEmbedEphemeral(session, event, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("Default question rating set to `%s`.", rating),
		})

	default:
		rating, err := storage.GamesRating(guildID)
		if err != nil {
			return err
		}
		if rating == "" {
			rating = DefaultRating
		}
		return bot.RespondEmbedEphemeral(session, event, &discordgo.MessageEmbed{
			Title:       "Conversation games settings",
			Description: fmt.Sprintf("**Default rating:** %s\nPlayers can still pick a rating per question.", rating),
			Color:       bot.EmbedColor,
		})
	}
}

func init() {
	command.RegisterCommand(
		&GamesSetCommand{},
		middleware.WithCogAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
