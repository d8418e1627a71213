package statusrole

import (
	"fmt"
	"strings"
	"time"

	"seina-bot/internal/bot"
	"seina-bot/internal/command"
	"seina-bot/internal/domain"
	"seina-bot/internal/middleware"
	"seina-bot/internal/storage"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

const sweepInterval = 10 * time.Minute

type StatusRoleCommand struct{}

func (c *StatusRoleCommand) Name() string        { return "statusrole" }
func (c *StatusRoleCommand) Description() string { return "Grant roles while a custom status matches" }
func (c *StatusRoleCommand) Cog() string         { return CogName }
func (c *StatusRoleCommand) Category() string    { return "🎨 Roles" }
func (c *StatusRoleCommand) UserPermissions() []int64 {
	return []int64{
		discordgo.PermissionManageRoles,
	}
}

func (c *StatusRoleCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "add",
				Description: "Add or replace a status role rule",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "name",
						Description: "Rule name",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionRole,
						Name:        "role",
						Description: "Role to grant",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "text",
						Description: "Status text to match, or a single emoji",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "remove",
				Description: "Remove a status role rule",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "name",
						Description: "Rule name",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "Show the configured rules",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "toggle",
				Description: "Pause or resume status role matching",
			},
		},
	}
}

func (c *StatusRoleCommand) Run(ctx interface{}) error {
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
	case "add":
		var name, pattern string
		var role *discordgo.Role
		for _, opt := range sub.Options {
			switch opt.Name {
			case "name":
				name = strings.TrimSpace(opt.StringValue())
			case "role":
				role = opt.RoleValue(session, guildID)
			case "text":
				pattern = strings.TrimSpace(opt.StringValue())
			}
		}
		if name == "" || pattern == "" || role == nil {
			return bot.RespondEphemeral(session, event, "Rule name, role and text are all required.")
		}
		if !bot.CanManageRole(session, guildID, role.ID) {
			return bot.RespondEphemeral(session, event,
				fmt.Sprintf("I can't manage <@&%s>. Check my Manage Roles permission and the role order.", role.ID))
		}

		err := store.SetStatusRole(guildID, domain.StatusRoleRule{
			Name:    name,
			RoleID:  role.ID,
			Pattern: pattern,
		})
		if err != nil {
			return fmt.Errorf("save status role rule: %w", err)
		}
		return bot.RespondEphemeral(session, event,
			fmt.Sprintf("Rule **%s** saved: members whose custom status matches `%s` get <@&%s>.", name, pattern, role.ID))

	case "remove":
		var name string
		for _, opt := range sub.Options {
			if opt.Name == "name" {
				name = strings.TrimSpace(opt.StringValue())
			}
		}
		removed, err := store.RemoveStatusRole(guildID, name)
		if err != nil {
			return fmt.Errorf("remove status role rule: %w", err)
		}
		if !removed {
			return bot.RespondEphemeral(session, event, fmt.Sprintf("No rule named **%s**.", name))
		}
		return bot.RespondEphemeral(session, event, fmt.Sprintf("Rule **%s** removed.", name))

	case "toggle":
		cfg, err := store.StatusRoles(guildID)
		if err != nil {
			return fmt.Errorf("load status role config: %w", err)
		}
		if err := store.SetStatusRoleEnabled(guildID, !cfg.Enabled); err != nil {
			return fmt.Errorf("toggle status roles: %w", err)
		}
		if cfg.Enabled {
			return bot.RespondEphemeral(session, event, "Status role matching paused. Existing roles are kept.")
		}
		return bot.RespondEphemeral(session, event, "Status role matching resumed.")

	default:
		return c.respondList(context)
	}
}

func (c *StatusRoleCommand) respondList(context *command.SlashInteractionContext) error {
	cfg, err := context.Storage.StatusRoles(context.Event.GuildID)
	if err != nil {
		return fmt.Errorf("load status role config: %w", err)
	}
	if len(cfg.Rules) == 0 {
		return bot.RespondEphemeral(context.Session, context.Event,
			"No rules configured. Add one with `/statusrole add`.")
	}

	state := "🟢 active"
	if !cfg.Enabled {
		state = "🔴 paused"
	}

	var sb strings.Builder
	for _, r := range cfg.Rules {
		sb.WriteString(fmt.Sprintf("**%s** → <@&%s> when status matches `%s`\n", r.Name, r.RoleID, r.Pattern))
	}

	return bot.RespondEmbedEphemeral(context.Session, context.Event, &discordgo.MessageEmbed{
		Title:       "Status role rules",
		Description: sb.String(),
		Color:       bot.EmbedColor,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Matching is " + state},
	})
}

// WatchPresence reconciles one member as soon as their presence changes.
func (c *StatusRoleCommand) WatchPresence(ctx *command.PresenceContext) error {
	e := ctx.Event
	if e.User == nil || e.GuildID == "" {
		return nil
	}

	cfg, err := ctx.Storage.StatusRoles(e.GuildID)
	if err != nil || !cfg.Enabled || len(cfg.Rules) == 0 {
		return nil
	}

	member, err := ctx.Session.State.Member(e.GuildID, e.User.ID)
	if err != nil || member == nil {
		member, err = ctx.Session.GuildMember(e.GuildID, e.User.ID)
		if err != nil || member == nil {
			return nil
		}
	}
	if member.User != nil && member.User.Bot {
		return nil
	}

	applyRules(ctx.Session, e.GuildID, member, e.Activities, cfg.Rules)
	return nil
}

// applyRules adds or removes rule roles for one member and returns the number
// of edits made. Roles the bot cannot manage are skipped with a log entry.
func applyRules(s *discordgo.Session, guildID string, m *discordgo.Member, activities []*discordgo.Activity, rules []domain.StatusRoleRule) int {
	if m.User == nil {
		return 0
	}

	edits := 0
	for _, rule := range rules {
		want := Matches(rule, activities)
		has := memberHasRole(m, rule.RoleID)
		if want == has {
			continue
		}
		if !bot.CanManageRole(s, guildID, rule.RoleID) {
			log.Warn().
				Str("guild", guildID).
				Str("rule", rule.Name).
				Str("role", rule.RoleID).
				Msg("cannot manage status role, skipping rule")
			continue
		}

		var err error
		if want {
			err = s.GuildMemberRoleAdd(guildID, m.User.ID, rule.RoleID)
		} else {
			err = s.GuildMemberRoleRemove(guildID, m.User.ID, rule.RoleID)
		}
		if err != nil {
			log.Warn().Err(err).
				Str("guild", guildID).
				Str("user", m.User.ID).
				Str("rule", rule.Name).
				Msg("status role edit failed")
			continue
		}
		edits++
	}
	return edits
}

func memberHasRole(m *discordgo.Member, roleID string) bool {
	for _, r := range m.Roles {
		if r == roleID {
			return true
		}
	}
	return false
}

// Sweep walks every guild with rules and reconciles all cached members,
// catching drift from presence updates the gateway never delivered.
func Sweep(s *discordgo.Session, store *storage.Storage) {
	for _, guildID := range store.StatusRoleGuilds() {
		cfg, err := store.StatusRoles(guildID)
		if err != nil || !cfg.Enabled || len(cfg.Rules) == 0 {
			continue
		}

		guild, err := s.State.Guild(guildID)
		if err != nil || guild == nil {
			continue
		}

		activities := make(map[string][]*discordgo.Activity, len(guild.Presences))
		for _, p := range guild.Presences {
			if p.User != nil {
				activities[p.User.ID] = p.Activities
			}
		}

		edits := 0
		for _, m := range guild.Members {
			if m.User == nil || m.User.Bot {
				continue
			}
			edits += applyRules(s, guildID, m, activities[m.User.ID], cfg.Rules)
		}
		if edits > 0 {
			log.Info().Str("guild", guildID).Int("edits", edits).Msg("status role sweep reconciled members")
		}
	}
}

func init() {
	command.RegisterCommand(
		&StatusRoleCommand{},
		middleware.WithCogAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
	bot.AddMaintenanceTask(bot.MaintenanceTask{
		Name:     "statusrole-sweep",
		Interval: sweepInterval,
		Run:      Sweep,
	})
}
