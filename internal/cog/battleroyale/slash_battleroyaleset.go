package battleroyale

import (
	"fmt"
	"strings"

	"seina-bot/internal/bot"
	"seina-bot/internal/command"
	"seina-bot/internal/domain"
	"seina-bot/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

const (
	minPrize    = 10
	maxPrize    = 1 << 30
	minWait     = 10
	maxWait     = 200
	minCooldown = 60
)

var (
	prizeMin    = float64(minPrize)
	prizeMax    = float64(maxPrize)
	waitMin     = float64(minWait)
	waitMax     = float64(maxWait)
	cooldownMin = float64(minCooldown)
)

type BattleRoyaleSetCommand struct{}

func (c *BattleRoyaleSetCommand) Name() string        { return "battleroyaleset" }
func (c *BattleRoyaleSetCommand) Description() string { return "Configure battle royale for this server" }
func (c *BattleRoyaleSetCommand) Cog() string         { return CogName }
func (c *BattleRoyaleSetCommand) Category() string    { return "⚙️ Settings" }
func (c *BattleRoyaleSetCommand) UserPermissions() []int64 {
	return []int64{
		discordgo.PermissionManageGuild,
	}
}

func (c *BattleRoyaleSetCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "prize",
				Description: "Set the champions pot paid to the winner",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "amount",
						Description: fmt.Sprintf("Pot amount (default %d)", defaultPrize),
						Required:    true,
						MinValue:    &prizeMin,
						MaxValue:    prizeMax,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "wait",
				Description: "Set how long the join lobby stays open",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "seconds",
						Description: fmt.Sprintf("Lobby time in seconds (default %d)", defaultWait),
						Required:    true,
						MinValue:    &waitMin,
						MaxValue:    waitMax,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "emoji",
				Description: "Set the join button emoji",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "emoji",
						Description: "Emoji shown on the Join Game button; leave empty to reset",
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "cooldown",
				Description: "Set the per-channel cooldown between games",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "seconds",
						Description: fmt.Sprintf("Cooldown in seconds (default %d)", defaultCooldown),
						Required:    true,
						MinValue:    &cooldownMin,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "settings",
				Description: "Show the current battle royale settings",
			},
		},
	}
}

func (c *BattleRoyaleSetCommand) Run(ctx interface{}) error {
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
	case "prize":
		amount := defaultPrize
		for _, opt := range sub.Options {
			if opt.Name == "amount" {
				amount = int(opt.IntValue())
			}
		}
		if err := storage.UpdateBattleConfig(guildID, func(cfg domain.BattleConfig) domain.BattleConfig {
			cfg.Prize = amount
			return cfg
		}); err != nil {
			return err
		}
		return bot.RespondEphemeral(session, event, fmt.Sprintf("Champions pot set to %d dollars.", amount))

	case "wait":
		seconds := defaultWait
		for _, opt := range sub.Options {
			if opt.Name == "seconds" {
				seconds = int(opt.IntValue())
			}
		}
		if err := storage.UpdateBattleConfig(guildID, func(cfg domain.BattleConfig) domain.BattleConfig {
			cfg.WaitSec = seconds
			return cfg
		}); err != nil {
			return err
		}
		return bot.RespondEphemeral(session, event, fmt.Sprintf("Wait time set to %d seconds.", seconds))

	case "emoji":
		emoji := ""
		for _, opt := range sub.Options {
			if opt.Name == "emoji" {
				emoji = strings.TrimSpace(opt.StringValue())
			}
		}
		if len(emoji) > 64 {
			return bot.RespondEphemeral(session, event, "That does not look like an emoji.")
		}
		if err := storage.UpdateBattleConfig(guildID, func(cfg domain.BattleConfig) domain.BattleConfig {
			cfg.Emoji = emoji
			return cfg
		}); err != nil {
			return err
		}
		if emoji == "" {
			return bot.RespondEphemeral(session, event, "I have reset the join emoji to "+defaultEmoji+".")
		}
		return bot.RespondEphemeral(session, event, "Set the join emoji to "+emoji+".")

	case "cooldown":
		seconds := defaultCooldown
		for _, opt := range sub.Options {
			if opt.Name == "seconds" {
				seconds = int(opt.IntValue())
			}
		}
		if err := storage.UpdateBattleConfig(guildID, func(cfg domain.BattleConfig) domain.BattleConfig {
			cfg.Cooldown = seconds
			return cfg
		}); err != nil {
			return err
		}
		return bot.RespondEphemeral(session, event, fmt.Sprintf("Cooldown set to %d seconds.", seconds))

	default:
		cfg, err := storage.BattleConfig(guildID)
		if err != nil {
			return err
		}
		cfg = effectiveConfig(cfg)
		return bot.RespondEmbedEphemeral(session, event, &discordgo.MessageEmbed{
			Title: "Roman Colosseum Games Settings",
			Color: bot.EmbedColor,
			Description: fmt.Sprintf(
				"**Gladiator Champions Pot Amount:** %d\n**Wait:** %d seconds\n**Emoji:** %s\n**Cooldown:** %d seconds",
				cfg.Prize, cfg.WaitSec, cfg.Emoji, cfg.Cooldown),
		})
	}
}

func init() {
	command.RegisterCommand(
		&BattleRoyaleSetCommand{},
		middleware.WithCogAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
