package statusrole

import (
	"testing"

	"seina-bot/internal/domain"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func custom(state string, emoji discordgo.Emoji) []*discordgo.Activity {
	return []*discordgo.Activity{
		{Type: discordgo.ActivityTypeGame, Name: "Doom"},
		{Type: discordgo.ActivityTypeCustom, Name: "Custom Status", State: state, Emoji: emoji},
	}
}

func TestMatchesText(t *testing.T) {
	rule := domain.StatusRoleRule{Name: "vanity", RoleID: "1", Pattern: "discord.gg/seina"}

	assert.True(t, Matches(rule, custom("join discord.gg/seina today", discordgo.Emoji{})))
	assert.True(t, Matches(rule, custom("JOIN DISCORD.GG/SEINA", discordgo.Emoji{})), "match is case-insensitive")
	assert.False(t, Matches(rule, custom("no link here", discordgo.Emoji{})))
	assert.False(t, Matches(rule, nil), "no presence, no match")
	assert.False(t, Matches(rule, []*discordgo.Activity{{Type: discordgo.ActivityTypeGame, Name: "discord.gg/seina"}}),
		"game activity is not a custom status")
}

func TestMatchesEmoji(t *testing.T) {
	glyph := domain.StatusRoleRule{Name: "fire", RoleID: "1", Pattern: "🔥"}
	assert.True(t, Matches(glyph, custom("", discordgo.Emoji{Name: "🔥"})))
	assert.False(t, Matches(glyph, custom("", discordgo.Emoji{Name: "💧"})))

	byID := domain.StatusRoleRule{Name: "blob", RoleID: "1", Pattern: "123456789012345678"}
	assert.True(t, Matches(byID, custom("", discordgo.Emoji{Name: "blobheart", ID: "123456789012345678"})))
	assert.False(t, Matches(byID, custom("", discordgo.Emoji{Name: "blobheart", ID: "9"})))
}

func TestMatchesEmptyPattern(t *testing.T) {
	rule := domain.StatusRoleRule{Name: "empty", RoleID: "1", Pattern: "   "}
	assert.False(t, Matches(rule, custom("anything", discordgo.Emoji{})))
}

func TestApplyRulesRespectsCurrentRoles(t *testing.T) {
	member := &discordgo.Member{
		User:  &discordgo.User{ID: "42"},
		Roles: []string{"1", "2"},
	}
	assert.True(t, memberHasRole(member, "2"))
	assert.False(t, memberHasRole(member, "3"))
}
