package rainbowrole

import (
	"fmt"

	"seina-bot/internal/bot"
	"seina-bot/internal/command"
	"seina-bot/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

type RainbowRoleCommand struct{}

func (c *RainbowRoleCommand) Name() string        { return "rainbowrole" }
func (c *RainbowRoleCommand) Description() string { return "Cycle a role's color through the rainbow" }
func (c *RainbowRoleCommand) Cog() string         { return CogName }
func (c *RainbowRoleCommand) Category() string    { return "🎨 Roles" }
func (c *RainbowRoleCommand) UserPermissions() []int64 {
	return []int64{
		discordgo.PermissionManageRoles,
	}
}

func (c *RainbowRoleCommand) SlashDefinition() *discordgo.ApplicationCommand {
	minInterval := float64(MinInterval)
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "set",
				Description: "Pick the cycled role and the tick interval",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionRole,
						Name:        "role",
						Description: "Role whose color is cycled",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "interval",
						Description: fmt.Sprintf("Seconds between color steps (default %d)", DefaultInterval),
						MinValue:    &minInterval,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "enable",
				Description: "Start the color loop",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "disable",
				Description: "Stop the color loop",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "settings",
				Description: "Show the current rainbow role configuration",
			},
		},
	}
}

func (c *RainbowRoleCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event
	store := context.Storage
	guildID := event.GuildID

	data := event.ApplicationCommandData()
	if len(data.Options) == 0 {
		return nil
	}
	sub := data.Options[0]

	switch sub.Name {
	case "set":
		var role *discordgo.Role
		interval := DefaultInterval
		for _, opt := range sub.Options {
			switch opt.Name {
			case "role":
				role = opt.RoleValue(session, guildID)
			case "interval":
				interval = int(opt.IntValue())
			}
		}
		if role == nil {
			return bot.RespondEphemeral(session, event, "Could not resolve the role.")
		}
		if role.Managed {
			return bot.RespondEphemeral(session, event, "That role is managed by an integration and can't be recolored.")
		}
		if !bot.CanManageRole(session, guildID, role.ID) {
			return bot.RespondEphemeral(session, event,
				fmt.Sprintf("I can't edit <@&%s>. Check my Manage Roles permission and the role order.", role.ID))
		}
		if interval < MinInterval {
			interval = MinInterval
		}

		cfg, _, err := store.RainbowRole(guildID)
		if err != nil {
			return fmt.Errorf("load rainbow config: %w", err)
		}
		cfg.RoleID = role.ID
		cfg.Interval = interval
		if err := store.SetRainbowRole(guildID, cfg); err != nil {
			return fmt.Errorf("save rainbow config: %w", err)
		}

		// A running loop keeps its old role and interval until restarted.
		if Running(guildID) {
			StopLoop(guildID)
			if err := StartLoop(session, store, guildID); err != nil {
				return bot.RespondEphemeral(session, event, "Saved, but the loop failed to restart: "+err.Error())
			}
			return bot.RespondEphemeral(session, event,
				fmt.Sprintf("Cycling <@&%s> every %ds. The loop was restarted with the new settings.", role.ID, interval))
		}
		return bot.RespondEphemeral(session, event,
			fmt.Sprintf("Cycling <@&%s> every %ds. Start it with `/rainbowrole enable`.", role.ID, interval))

	case "enable":
		cfg, ok, err := store.RainbowRole(guildID)
		if err != nil {
			return fmt.Errorf("load rainbow config: %w", err)
		}
		if !ok || cfg.RoleID == "" {
			return bot.RespondEphemeral(session, event, "Pick a role first with `/rainbowrole set`.")
		}
		if Running(guildID) {
			return bot.RespondEphemeral(session, event, "The color loop is already running.")
		}

		cfg.Enabled = true
		if err := store.SetRainbowRole(guildID, cfg); err != nil {
			return fmt.Errorf("save rainbow config: %w", err)
		}
		if err := StartLoop(session, store, guildID); err != nil {
			return bot.RespondEphemeral(session, event, "Could not start the loop: "+err.Error())
		}
		return bot.RespondEphemeral(session, event, fmt.Sprintf("🌈 Cycling <@&%s>.", cfg.RoleID))

	case "disable":
		cfg, ok, err := store.RainbowRole(guildID)
		if err != nil {
			return fmt.Errorf("load rainbow config: %w", err)
		}
		if ok {
			cfg.Enabled = false
			if err := store.SetRainbowRole(guildID, cfg); err != nil {
				return fmt.Errorf("save rainbow config: %w", err)
			}
		}
		if StopLoop(guildID) {
			return bot.RespondEphemeral(session, event, "Color loop stopped.")
		}
		return bot.RespondEphemeral(session, event, "No loop was running.")

	default:
		return c.respondSettings(context)
	}
}

func (c *RainbowRoleCommand) respondSettings(context *command.SlashInteractionContext) error {
	session := context.Session
	event := context.Event
	guildID := event.GuildID

	cfg, ok, err := context.Storage.RainbowRole(guildID)
	if err != nil {
		return fmt.Errorf("load rainbow config: %w", err)
	}
	if !ok || cfg.RoleID == "" {
		return bot.RespondEphemeral(session, event, "No rainbow role configured. Use `/rainbowrole set`.")
	}

	interval := cfg.Interval
	if interval < MinInterval {
		interval = DefaultInterval
	}

	state := "🔴 stopped"
	if Running(guildID) {
		state = "🟢 running"
	}

	embedColor := bot.EmbedColor
	hueLine := "unknown"
	if role, _ := session.State.Role(guildID, cfg.RoleID); role != nil {
		embedColor = role.Color
		hueLine = fmt.Sprintf("%.0f° (#%06X)", colorHue(role.Color), role.Color)
	}

	return bot.RespondEmbedEphemeral(session, event, &discordgo.MessageEmbed{
		Title: "Rainbow role settings",
		Color: embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Role", Value: fmt.Sprintf("<@&%s>", cfg.RoleID), Inline: true},
			{Name: "Interval", Value: fmt.Sprintf("%ds", interval), Inline: true},
			{Name: "Loop", Value: state, Inline: true},
			{Name: "Current hue", Value: hueLine, Inline: true},
		},
	})
}

func init() {
	command.RegisterCommand(
		&RainbowRoleCommand{},
		middleware.WithCogAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
