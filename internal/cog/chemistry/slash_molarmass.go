package chemistry

import (
	"fmt"
	"strings"

	"seina-bot/internal/bot"
	"seina-bot/internal/command"
	"seina-bot/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

type MolarMassCommand struct{}

func (c *MolarMassCommand) Name() string        { return "molarmass" }
func (c *MolarMassCommand) Description() string { return "Compute the molar mass of a chemical formula" }
func (c *MolarMassCommand) Cog() string         { return CogName }
func (c *MolarMassCommand) Category() string    { return "🧰 Utilities" }
func (c *MolarMassCommand) UserPermissions() []int64 {
	return []int64{}
}

func (c *MolarMassCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "formula",
				Description: "Chemical formula, e.g. H2O, Ca(OH)2, CuSO4·5H2O",
				Required:    true,
			},
		},
	}
}

func (c *MolarMassCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event

	formula := ""
	for _, opt := range event.ApplicationCommandData().Options {
		if opt.Name == "formula" {
			formula = strings.TrimSpace(opt.StringValue())
		}
	}

	counts, err := ParseFormula(formula)
	if err != nil {
		return bot.RespondEphemeral(session, event, fmt.Sprintf("Could not parse `%s`: %v", formula, err))
	}

	total, err := MolarMass(counts)
	if err != nil {
		return bot.RespondEphemeral(session, event, fmt.Sprintf("Could not compute `%s`: %v", formula, err))
	}

	var sb strings.Builder
	for _, sym := range SortedSymbols(counts) {
		e := bySymbol[sym]
		n := counts[sym]
		sb.WriteString(fmt.Sprintf("`%-3s` x%-4d %.3f g/mol\n", sym, n, e.Mass*float64(n)))
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Molar mass of %s", formula),
		Description: sb.String(),
		Color:       bot.EmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Total", Value: fmt.Sprintf("**%.3f g/mol**", total)},
		},
	}
	return bot.RespondEmbed(session, event, embed)
}

func init() {
	command.RegisterCommand(
		&MolarMassCommand{},
		middleware.WithCogAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
