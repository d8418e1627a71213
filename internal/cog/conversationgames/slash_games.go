package conversationgames

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
		baseURL := "https://api.truthordarebot.xyz/v1"
		timeout := 10 * time.Second
		if cfg, err := config.Get(); err == nil {
			baseURL = cfg.GamesBaseURL
			timeout = cfg.HTTPTimeout
		}
		client = NewClient(baseURL, timeout)
	})
	return client
}

// GameCommand is one conversation game backed by an API endpoint. Five
// instances are registered, one per game.
type GameCommand struct {
	name     string
	desc     string
	endpoint string
	title    string
}

func (c *GameCommand) Name() string        { return c.name }
func (c *GameCommand) Description() string { return c.desc }
func (c *GameCommand) Cog() string         { return CogName }
func (c *GameCommand) Category() string    { return "🎲 Games" }
func (c *GameCommand) UserPermissions() []int64 {
	return []int64{}
}

func (c *GameCommand) SlashDefinition() *discordgo.ApplicationCommand {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(Ratings))
	for _, r := range Ratings {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: r, Value: r})
	}
	return &discordgo.ApplicationCommand{
		Name:        c.name,
		Description: c.desc,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "rating",
				Description: "Question rating (defaults to the server setting)",
				Choices:     choices,
			},
		},
	}
}

func (c *GameCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := slash.Session
	event := slash.Event

	rating := ""
	for _, opt := range event.ApplicationCommandData().Options {
		if opt.Name == "rating" {
			rating = opt.StringValue()
		}
	}
	if rating == "" {
		if stored, err := slash.Storage.GamesRating(event.GuildID); err == nil && stored != "" {
			rating = stored
		}
	}
	if !ValidRating(rating) {
		rating = DefaultRating
	}

	if err := bot.RespondDeferred(session, event); err != nil {
		return err
	}

	q, err := c.fetch(rating)
	if err != nil {
		log.Warn().Err(err).Str("game", c.name).Msg("question fetch failed")
		return bot.FollowupEphemeral(session, event, "The question API is not answering right now. Try again in a bit.")
	}

	_, err = session.FollowupMessageCreate(event.Interaction, false, &discordgo.WebhookParams{
		Embeds:     []*discordgo.MessageEmbed{c.embed(q)},
		Components: c.components(rating),
	})
	return err
}

// Component re-rolls the question in place. The rating rides in the custom
// ID so the button works for anyone without storage lookups.
func (c *GameCommand) Component(ctx *command.ComponentInteractionContext) error {
	session := ctx.Session
	event := ctx.Event

	customID := event.MessageComponentData().CustomID
	parts := strings.Split(customID, ":")
	if len(parts) != 3 || parts[1] != "again" {
		return nil
	}
	rating := parts[2]
	if !ValidRating(rating) {
		rating = DefaultRating
	}

	q, err := c.fetch(rating)
	if err != nil {
		log.Warn().Err(err).Str("game", c.name).Msg("question re-roll failed")
		return bot.RespondEphemeral(session, event, "Could not fetch a new question. Try again in a bit.")
	}

	return bot.UpdateComponentMessage(session, event, c.embed(q), c.components(rating))
}

func (c *GameCommand) fetch(rating string) (*Question, error) {
	reqCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return apiClient().Question(reqCtx, c.endpoint, rating)
}

func (c *GameCommand) embed(q *Question) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       c.title,
		Description: q.Question,
		Color:       bot.EmbedColor,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("ID: %s • Rating: %s", q.ID, q.Rating),
		},
	}
}

func (c *GameCommand) components(rating string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "🔁 New question",
					Style:    discordgo.SecondaryButton,
					CustomID: fmt.Sprintf("%s:again:%s", c.name, rating),
				},
			},
		},
	}
}

func init() {
	games := []*GameCommand{
		{
			name:     "wouldyourather",
			desc:     "Get a would-you-rather question",
			endpoint: "wyr",
			title:    "Would You Rather…",
		},
		{
			name:     "neverhaveiever",
			desc:     "Get a never-have-i-ever question",
			endpoint: "nhie",
			title:    "Never Have I Ever…",
		},
		{
			name:     "truth",
			desc:     "Get a truth question",
			endpoint: "truth",
			title:    "Truth",
		},
		{
			name:     "dare",
			desc:     "Get a dare",
			endpoint: "dare",
			title:    "Dare",
		},
		{
			name:     "paranoia",
			desc:     "Get a paranoia question",
			endpoint: "paranoia",
			title:    "Paranoia",
		},
	}
	for _, g := range games {
		command.RegisterCommand(
			g,
			middleware.WithCogAccessCheck(),
			middleware.WithGuildOnly(),
			middleware.WithUserPermissionCheck(),
			middleware.WithCommandLogger(),
		)
	}
}
