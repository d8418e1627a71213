package core

import (
	"fmt"
	"sort"
	"strings"

	"seina-bot/internal/bot"
	"seina-bot/internal/cog"
	"seina-bot/internal/command"
	"seina-bot/internal/config"
	"seina-bot/internal/middleware"
	"seina-bot/internal/version"
	"seina-bot/pkg/cmdkit"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

type HelpCommand struct{}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "Get a list of available commands" }
func (c *HelpCommand) Cog() string         { return CogName }
func (c *HelpCommand) Category() string    { return "🕯️ Information" }
func (c *HelpCommand) UserPermissions() []int64 {
	return []int64{}
}

func (c *HelpCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "category",
				Description: "View commands grouped by category",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "cog",
				Description: "View commands grouped by cog",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "flat",
				Description: "View all commands as a flat list",
			},
		},
	}
}

func (c *HelpCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event

	if err := bot.RespondDeferredEphemeral(session, event); err != nil {
		log.Error().Err(err).Msg("failed to defer help interaction")
		return err
	}

	data := event.ApplicationCommandData()
	var output string
	if len(data.Options) > 0 {
		switch data.Options[0].Name {
		case "cog":
			output = buildHelpByCog()
		case "flat":
			output = buildHelpFlat()
		default:
			output = buildHelpByCategory()
		}
	} else {
		output = buildHelpByCategory()
	}

	embed := &discordgo.MessageEmbed{
		Title:       version.AppName + " Help",
		Description: output,
		Color:       bot.EmbedColor,
	}

	return bot.FollowupEmbedEphemeral(session, event, embed)
}

func buildHelpByCategory() string {
	all := command.AllCommands()

	categoryMap := make(map[string][]cmdkit.Command)
	for _, c := range all {
		meta, ok := command.Meta(c)
		if !ok {
			continue
		}
		categoryMap[meta.Category()] = append(categoryMap[meta.Category()], c)
	}

	cats := make([]string, 0, len(categoryMap))
	for cat := range categoryMap {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool {
		wi, wj := config.CategoryWeights[cats[i]], config.CategoryWeights[cats[j]]
		if wi != wj {
			return wi < wj
		}
		return cats[i] < cats[j]
	})

	var sb strings.Builder
	for _, cat := range cats {
		sb.WriteString(fmt.Sprintf("**%s**\n", cat))
		for _, c := range categoryMap[cat] {
			sb.WriteString(fmt.Sprintf("`%s` - %s\n", c.Name(), c.Description()))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func buildHelpByCog() string {
	all := command.AllCommands()

	cogMap := make(map[string][]cmdkit.Command)
	for _, c := range all {
		meta, ok := command.Meta(c)
		if !ok {
			continue
		}
		cogMap[meta.Cog()] = append(cogMap[meta.Cog()], c)
	}

	var sb strings.Builder
	for _, name := range cog.Names() {
		cmds := cogMap[name]
		if len(cmds) == 0 {
			continue
		}
		m, _ := cog.Get(name)
		sb.WriteString(fmt.Sprintf("**%s** `v%s`\n", m.Name, m.Version))
		for _, c := range cmds {
			sb.WriteString(fmt.Sprintf("`%s` - %s\n", c.Name(), c.Description()))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func buildHelpFlat() string {
	var sb strings.Builder
	for _, c := range command.AllCommands() {
		sb.WriteString(fmt.Sprintf("`%s` - %s\n", c.Name(), c.Description()))
	}
	return sb.String()
}

func init() {
	command.RegisterCommand(
		&HelpCommand{},
		middleware.WithCogAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
