package animals

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"seina-bot/internal/bot"
	"seina-bot/internal/command"
	"seina-bot/internal/config"
	"seina-bot/internal/middleware"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

var (
	clientOnce sync.Once
	client     *Client
)

// apiClient builds the shared client on first use, after config is loaded.
func apiClient() *Client {
	clientOnce.Do(func() {
		baseURL := "https://some-random-api.com"
		timeout := 10 * time.Second
		if cfg, err := config.Get(); err == nil {
			baseURL = cfg.AnimalsBaseURL
			timeout = cfg.HTTPTimeout
		}
		client = NewClient(baseURL, timeout)
	})
	return client
}

type AnimalCommand struct{}

func (c *AnimalCommand) Name() string        { return "animal" }
func (c *AnimalCommand) Description() string { return "Get a random animal picture and fact" }
func (c *AnimalCommand) Cog() string         { return CogName }
func (c *AnimalCommand) Category() string    { return "🐾 Animals" }
func (c *AnimalCommand) UserPermissions() []int64 {
	return []int64{}
}

func (c *AnimalCommand) SlashDefinition() *discordgo.ApplicationCommand {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(Kinds))
	for _, k := range Kinds {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  strings.ToUpper(k[:1]) + k[1:],
			Value: k,
		})
	}
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "type",
				Description: "Which animal",
				Required:    true,
				Choices:     choices,
			},
		},
	}
}

func (c *AnimalCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := slash.Session
	event := slash.Event

	kind := ""
	for _, opt := range event.ApplicationCommandData().Options {
		if opt.Name == "type" {
			kind = opt.StringValue()
		}
	}

	if err := bot.RespondDeferred(session, event); err != nil {
		return err
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := apiClient().Animal(reqCtx, kind)
	if err != nil {
		log.Warn().Err(err).Str("kind", kind).Msg("animal fetch failed")
		return bot.FollowupEphemeral(session, event, "The animal API is not answering right now. Try again in a bit.")
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Here's your %s!", kind),
		Color: bot.EmbedColor,
		Image: &discordgo.MessageEmbedImage{URL: res.Image},
	}
	if res.Fact != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: res.Fact}
	}
	return bot.FollowupEmbed(session, event, embed)
}

func init() {
	command.RegisterCommand(
		&AnimalCommand{},
		middleware.WithCogAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
