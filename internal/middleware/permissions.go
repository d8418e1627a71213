package middleware

import (
	"context"
	"fmt"
	"strings"

	"seina-bot/internal/bot"
	"seina-bot/internal/command"
	"seina-bot/pkg/cmdkit"

	"github.com/bwmarrin/discordgo"
)

var PermissionNames = map[int64]string{
	discordgo.PermissionCreateInstantInvite:    "Create Instant Invite",
	discordgo.PermissionKickMembers:            "Kick Members",
	discordgo.PermissionBanMembers:             "Ban Members",
	discordgo.PermissionAdministrator:          "Administrator",
	discordgo.PermissionManageChannels:         "Manage Channels",
	discordgo.PermissionManageGuild:            "Manage Server",
	discordgo.PermissionAddReactions:           "Add Reactions",
	discordgo.PermissionViewAuditLogs:          "View Audit Logs",
	discordgo.PermissionViewChannel:            "View Channel",
	discordgo.PermissionSendMessages:           "Send Messages",
	discordgo.PermissionManageMessages:         "Manage Messages",
	discordgo.PermissionEmbedLinks:             "Embed Links",
	discordgo.PermissionAttachFiles:            "Attach Files",
	discordgo.PermissionReadMessageHistory:     "Read Message History",
	discordgo.PermissionMentionEveryone:        "Mention Everyone",
	discordgo.PermissionUseExternalEmojis:      "Use External Emojis",
	discordgo.PermissionUseApplicationCommands: "Use Application Commands",
	discordgo.PermissionManageThreads:          "Manage Threads",
	discordgo.PermissionSendMessagesInThreads:  "Send Messages in Threads",
	discordgo.PermissionChangeNickname:         "Change Nickname",
	discordgo.PermissionManageNicknames:        "Manage Nicknames",
	discordgo.PermissionManageRoles:            "Manage Roles",
	discordgo.PermissionManageWebhooks:         "Manage Webhooks",
	discordgo.PermissionManageEvents:           "Manage Events",
	discordgo.PermissionModerateMembers:        "Moderate Members",
}

// WithUserPermissionCheck wraps a command to require at least one of the
// permissions declared by the command's UserPermissions. Administrators
// always pass.
func WithUserPermissionCheck() cmdkit.Middleware {
	return func(c cmdkit.Command) cmdkit.Command {
		return cmdkit.Wrap(c, func(ctx context.Context, inv *cmdkit.Invocation) error {
			var s *discordgo.Session
			var m *discordgo.Member
			var guildID, channelID string

			switch v := inv.Data.(type) {
			case *command.SlashInteractionContext:
				s, m, guildID, channelID = v.Session, v.Event.Member, v.Event.GuildID, v.Event.ChannelID
			case *command.ComponentInteractionContext:
				s, m, guildID, channelID = v.Session, v.Event.Member, v.Event.GuildID, v.Event.ChannelID
			case *command.MessageApplicationCommandContext:
				s, m, guildID, channelID = v.Session, v.Event.Member, v.Event.GuildID, v.Event.ChannelID
			case *command.UserApplicationCommandContext:
				s, m, guildID, channelID = v.Session, v.Event.Member, v.Event.GuildID, v.Event.ChannelID
			default:
				return c.Run(ctx, inv)
			}

			if guildID == "" || m == nil || m.User == nil {
				return c.Run(ctx, inv)
			}

			memberPerms, err := s.UserChannelPermissions(m.User.ID, channelID)
			if err != nil {
				return fmt.Errorf("failed to get user permissions: %w", err)
			}
			if memberPerms&discordgo.PermissionAdministrator != 0 {
				return c.Run(ctx, inv)
			}

			meta, ok := command.Meta(c)
			if !ok {
				return c.Run(ctx, inv)
			}
			required := meta.UserPermissions()
			if len(required) == 0 {
				return c.Run(ctx, inv)
			}

			for _, p := range required {
				if memberPerms&p != 0 {
					return c.Run(ctx, inv)
				}
			}

			var allowed []string
			for _, p := range required {
				name := PermissionNames[p]
				if name == "" {
					name = fmt.Sprintf("0x%x", p)
				}
				allowed = append(allowed, name)
			}
			msg := fmt.Sprintf(
				"You need at least one of the following permissions to run this command:\n`%s`",
				strings.Join(allowed, "`, `"),
			)
			switch v := inv.Data.(type) {
			case *command.SlashInteractionContext:
				bot.RespondEmbedEphemeral(s, v.Event, &discordgo.MessageEmbed{Description: msg})
			case *command.ComponentInteractionContext:
				bot.RespondEmbedEphemeral(s, v.Event, &discordgo.MessageEmbed{Description: msg})
			case *command.MessageApplicationCommandContext:
				bot.RespondEmbedEphemeral(s, v.Event, &discordgo.MessageEmbed{Description: msg})
			case *command.UserApplicationCommandContext:
				bot.RespondEmbedEphemeral(s, v.Event, &discordgo.MessageEmbed{Description: msg})
			}
			return nil
		})
	}
}
