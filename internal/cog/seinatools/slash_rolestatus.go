package seinatools

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"seina-bot/internal/bot"
	"seina-bot/internal/command"
	"seina-bot/internal/middleware"
	"seina-bot/pkg/util"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

type RoleStatusCommand struct{}

func (c *RoleStatusCommand) Name() string        { return "rolestatus" }
func (c *RoleStatusCommand) Description() string { return "Count a role's members by status and export them to CSV" }
func (c *RoleStatusCommand) Cog() string         { return CogName }
func (c *RoleStatusCommand) Category() string    { return "🧰 Utilities" }
func (c *RoleStatusCommand) UserPermissions() []int64 {
	return []int64{
		discordgo.PermissionManageGuild,
	}
}

func (c *RoleStatusCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionRole,
				Name:        "role",
				Description: "Role to summarize",
				Required:    true,
			},
		},
	}
}

func (c *RoleStatusCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event
	guildID := event.GuildID

	var role *discordgo.Role
	for _, opt := range event.ApplicationCommandData().Options {
		if opt.Name == "role" {
			role = opt.RoleValue(session, guildID)
		}
	}
	if role == nil {
		return bot.RespondEphemeral(session, event, "Could not resolve the role.")
	}

	// Large guilds need member paging; defer before collecting.
	if err := bot.RespondDeferred(session, event); err != nil {
		return err
	}

	members, err := collectMembers(session, guildID)
	if err != nil {
		log.Error().Err(err).Str("guild", guildID).Msg("failed to collect members")
		return bot.FollowupEphemeral(session, event, "Failed to fetch the member list.")
	}

	roleNames := make(map[string]string, len(members))
	if guild, err := session.State.Guild(guildID); err == nil && guild != nil {
		for _, r := range guild.Roles {
			roleNames[r.ID] = r.Name
		}
	}

	counts := map[string]int{"online": 0, "idle": 0, "dnd": 0, "offline": 0}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{
		"Member ID", "Username", "Display Name", "Status",
		"Account Created", "Joined Server", "Roles",
	})

	total := 0
	for _, m := range members {
		if m.User == nil || !hasRole(m, role.ID) {
			continue
		}
		total++

		status := memberStatus(session, guildID, m.User.ID)
		if _, known := counts[status]; !known {
			status = "offline"
		}
		counts[status]++

		created, _ := discordgo.SnowflakeTimestamp(m.User.ID)
		joined := "N/A"
		if !m.JoinedAt.IsZero() {
			joined = util.FormatTimeTpl(m.JoinedAt, "YYYY-MM-DD hh:mm:ss")
		}

		var names []string
		for _, rid := range m.Roles {
			if name := roleNames[rid]; name != "" {
				names = append(names, name)
			}
		}

		display := m.Nick
		if display == "" {
			display = m.User.Username
		}

		_ = w.Write([]string{
			m.User.ID,
			m.User.Username,
			display,
			status,
			util.FormatTimeTpl(created, "YYYY-MM-DD hh:mm:ss"),
			joined,
			strings.Join(names, ", "),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	invoker := "unknown"
	if event.Member != nil && event.Member.User != nil {
		invoker = event.Member.User.Username
	}

	embed := &discordgo.MessageEmbed{
		Title: "Role Status Summary: " + role.Name,
		Color: role.Color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Total Members", Value: fmt.Sprintf("%d", total), Inline: true},
			{Name: "Online", Value: fmt.Sprintf("%d", counts["online"]), Inline: true},
			{Name: "Idle", Value: fmt.Sprintf("%d", counts["idle"]), Inline: true},
			{Name: "Do Not Disturb", Value: fmt.Sprintf("%d", counts["dnd"]), Inline: true},
			{Name: "Offline/Invisible", Value: fmt.Sprintf("%d", counts["offline"]), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Exported by " + invoker},
	}

	fileName := role.Name + "_members.csv"
	return bot.FollowupEmbedWithFile(session, event, embed, fileName, &buf)
}

// collectMembers returns the guild's members, preferring the gateway state and
// paging over REST when the cache is cold.
func collectMembers(s *discordgo.Session, guildID string) ([]*discordgo.Member, error) {
	if guild, err := s.State.Guild(guildID); err == nil && guild != nil {
		if len(guild.Members) >= guild.MemberCount && len(guild.Members) > 0 {
			return guild.Members, nil
		}
	}

	var all []*discordgo.Member
	after := ""
	for {
		page, err := s.GuildMembers(guildID, after, 1000)
		if err != nil {
			return nil, fmt.Errorf("page members after %q: %w", after, err)
		}
		all = append(all, page...)
		if len(page) < 1000 {
			return all, nil
		}
		after = page[len(page)-1].User.ID
	}
}

func hasRole(m *discordgo.Member, roleID string) bool {
	for _, r := range m.Roles {
		if r == roleID {
			return true
		}
	}
	return false
}

// memberStatus reads the cached presence; members without one count as offline.
func memberStatus(s *discordgo.Session, guildID, userID string) string {
	p, err := s.State.Presence(guildID, userID)
	if err != nil || p == nil {
		return "offline"
	}
	switch p.Status {
	case discordgo.StatusOnline:
		return "online"
	case discordgo.StatusIdle:
		return "idle"
	case discordgo.StatusDoNotDisturb:
		return "dnd"
	default:
		return "offline"
	}
}

func init() {
	command.RegisterCommand(
		&RoleStatusCommand{},
		middleware.WithCogAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
