package bot

import (
	"github.com/bwmarrin/discordgo"
)

// IsAdministrator reports whether a member owns the guild or carries a role
// with administrator privileges.
func IsAdministrator(s *discordgo.Session, guildID string, member *discordgo.Member) bool {
	if member == nil || member.User == nil {
		return false
	}

	guild, err := s.State.Guild(guildID)
	if err != nil || guild == nil {
		guild, err = s.Guild(guildID)
		if err != nil || guild == nil {
			return false
		}
	}

	if member.User.ID == guild.OwnerID {
		return true
	}
	for _, roleID := range member.Roles {
		if role, _ := s.State.Role(guild.ID, roleID); role != nil {
			if role.Permissions&discordgo.PermissionAdministrator != 0 {
				return true
			}
		}
	}
	return false
}

// HasChannelPermissions reports whether the bot holds all of perms in a channel.
func HasChannelPermissions(s *discordgo.Session, channelID string, perms int64) bool {
	actual, err := s.UserChannelPermissions(s.State.User.ID, channelID)
	if err != nil {
		return false
	}
	return actual&perms == perms
}

// CanManageRole reports whether the bot may edit or assign the role: it needs
// Manage Roles and its highest role must sit above the target in the hierarchy.
func CanManageRole(s *discordgo.Session, guildID, roleID string) bool {
	guild, err := s.State.Guild(guildID)
	if err != nil || guild == nil {
		guild, err = s.Guild(guildID)
		if err != nil || guild == nil {
			return false
		}
	}

	target, err := s.State.Role(guildID, roleID)
	if err != nil || target == nil {
		return false
	}

	me, err := s.State.Member(guildID, s.State.User.ID)
	if err != nil || me == nil {
		me, err = s.GuildMember(guildID, s.State.User.ID)
		if err != nil || me == nil {
			return false
		}
	}

	var manageRoles bool
	top := -1
	for _, rid := range me.Roles {
		role, _ := s.State.Role(guildID, rid)
		if role == nil {
			continue
		}
		if role.Permissions&(discordgo.PermissionAdministrator|discordgo.PermissionManageRoles) != 0 {
			manageRoles = true
		}
		if role.Position > top {
			top = role.Position
		}
	}
	return manageRoles && top > target.Position
}
