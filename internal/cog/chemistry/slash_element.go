package chemistry

import (
	"fmt"

	"seina-bot/internal/bot"
	"seina-bot/internal/command"
	"seina-bot/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

type ElementCommand struct{}

func (c *ElementCommand) Name() string        { return "element" }
func (c *ElementCommand) Description() string { return "Look up a periodic table element" }
func (c *ElementCommand) Cog() string         { return CogName }
func (c *ElementCommand) Category() string    { return "🧰 Utilities" }
func (c *ElementCommand) UserPermissions() []int64 {
	return []int64{}
}

func (c *ElementCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "query",
				Description: "Symbol, name or atomic number (e.g. Fe, iron, 26)",
				Required:    true,
			},
		},
	}
}

func (c *ElementCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event

	query := ""
	for _, opt := range event.ApplicationCommandData().Options {
		if opt.Name == "query" {
			query = opt.StringValue()
		}
	}

	e, found := LookupElement(query)
	if !found {
		return bot.RespondEphemeral(session, event, fmt.Sprintf("No element matches `%s`. Try a symbol, a name or an atomic number.", query))
	}

	group := fmt.Sprintf("%d", e.Group)
	if e.Group == 0 {
		group = "f-block"
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s (%s)", e.Name, e.Symbol),
		Color: bot.EmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Atomic Number", Value: fmt.Sprintf("%d", e.Number), Inline: true},
			{Name: "Atomic Mass", Value: fmt.Sprintf("%.3f g/mol", e.Mass), Inline: true},
			{Name: "Category", Value: e.Category, Inline: true},
			{Name: "Period", Value: fmt.Sprintf("%d", e.Period), Inline: true},
			{Name: "Group", Value: group, Inline: true},
			{Name: "Electron Configuration", Value: "`" + ElectronConfig(e.Number) + "`", Inline: false},
		},
	}
	return bot.RespondEmbed(session, event, embed)
}

func init() {
	command.RegisterCommand(
		&ElementCommand{},
		middleware.WithCogAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
